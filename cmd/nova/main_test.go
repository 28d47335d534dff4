package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTokenizePretty(t *testing.T) {
	p := writeSource(t, "main.nv", "let x = 1;\n")
	out, errOut, err := runCLI(t, "--color", "off", "tokenize", p)
	if err != nil {
		t.Fatalf("err = %v, stderr = %s", err, errOut)
	}
	if !strings.Contains(out, "let") || !strings.Contains(out, "eof") {
		t.Fatalf("stdout:\n%s", out)
	}
}

func TestTokenizeJSON(t *testing.T) {
	p := writeSource(t, "main.nv", "func f()")
	out, _, err := runCLI(t, "tokenize", "--format", "json", p)
	if err != nil {
		t.Fatal(err)
	}
	var toks []map[string]any
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("bad json: %v\n%s", err, out)
	}
	if len(toks) != 5 || toks[0]["kind"] != "func" {
		t.Fatalf("tokens = %v", toks)
	}
}

func TestTokenizeReportsErrors(t *testing.T) {
	p := writeSource(t, "bad.nv", "let x = @ ;\n")
	_, errOut, err := runCLI(t, "--color", "off", "tokenize", "--format", "none", p)
	if err == nil || !strings.Contains(err.Error(), "1 error") {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(errOut, "Error E0100: ") || !strings.Contains(errOut, "invalid character '@' at 1:9") {
		t.Fatalf("stderr:\n%s", errOut)
	}
}

func TestTokenizeShortDiagnostics(t *testing.T) {
	p := writeSource(t, "bad.nv", "\"open\n")
	_, errOut, err := runCLI(t, "tokenize", "--format", "none", "--diag-format", "short", p)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(errOut, "error E0101 ") || !strings.Contains(errOut, "bad.nv:1:1 unterminated string literal") {
		t.Fatalf("stderr:\n%s", errOut)
	}
}

func TestTokenizeShortDiagnosticsRespectErrorLimit(t *testing.T) {
	p := writeSource(t, "bad.nv", "@ @ @ @ @\n")
	_, errOut, err := runCLI(t, "--error-limit", "2", "tokenize", "--format", "none", "--diag-format", "short", p)
	if err == nil {
		t.Fatal("expected failure")
	}
	if got := strings.Count(errOut, "error E0100 "); got != 2 {
		t.Fatalf("got %d errors before the cutoff:\n%s", got, errOut)
	}
	if !strings.Contains(errOut, "fatal F0992 ") {
		t.Fatalf("stderr:\n%s", errOut)
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	_, errOut, err := runCLI(t, "--color", "off", "tokenize", filepath.Join(t.TempDir(), "missing.nv"))
	if err == nil || !strings.Contains(errOut, "Fatal Error F0990") {
		t.Fatalf("err = %v, stderr = %s", err, errOut)
	}
}

func TestTokenizeConfigFile(t *testing.T) {
	cfg := writeSource(t, "nova.toml", "[diagnostics]\nerror_limit = 1\ncolor = \"off\"\n")
	a := writeSource(t, "a.nv", "@ @ @\n")
	b := writeSource(t, "b.nv", "let b;\n")
	_, errOut, err := runCLI(t, "--config", cfg, "tokenize", "--format", "none", a, b)
	if err == nil || !strings.Contains(errOut, "F0992") {
		t.Fatalf("err = %v, stderr = %s", err, errOut)
	}

	bad := writeSource(t, "bad.toml", "[diagnostics]\nnope = 1\n")
	if _, _, err := runCLI(t, "--config", bad, "tokenize", a); err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("err = %v", err)
	}
}

func TestTokenizeTraceNDJSON(t *testing.T) {
	p := writeSource(t, "main.nv", "let x = 1;\n")
	tracePath := filepath.Join(t.TempDir(), "trace.ndjson")
	if _, errOut, err := runCLI(t, "--trace", tracePath, "--trace-level", "file", "tokenize", "--format", "none", p); err != nil {
		t.Fatalf("err = %v, stderr = %s", err, errOut)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"name":"lex-file"`) {
		t.Fatalf("trace:\n%s", data)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := runCLI(t, "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "nova" || payload.TokenKinds == 0 || payload.DiagCodes == 0 {
		t.Fatalf("payload = %+v", payload)
	}
}
