package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"nova/internal/diag"
	"nova/internal/token"
	"nova/internal/version"
)

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	TokenKinds int    `json:"token_kinds"`
	DiagCodes  int    `json:"diag_codes"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show nova build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")
			payload := versionPayload{
				Tool:       "nova",
				Version:    version.Version,
				GitCommit:  version.GitCommit,
				BuildDate:  version.BuildDate,
				TokenKinds: token.Count(),
				DiagCodes:  diag.CodeCount(),
			}
			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			case "pretty":
				colorMode, _ := cmd.Root().PersistentFlags().GetString("color")
				name := color.New(color.FgYellow, color.Bold)
				if useColor(colorMode, os.Stdout) {
					name.EnableColor()
				} else {
					name.DisableColor()
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%d token kinds, %d diagnostic codes)\n",
					name.Sprint(version.String()), payload.TokenKinds, payload.DiagCodes)
				return err
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}
