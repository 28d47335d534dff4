package fuzztests

import (
	"testing"
)

const maxFuzzInput = 1 << 16 // 64 KiB

var seeds = []string{
	"",
	"func main() { return 0; }\n",
	"let x: i32 = 0x1F + 0b101 - 0o17 * 1.5e-3;",
	"\"unterminated",
	"'a",
	"'\\''",
	"/* never closed",
	"// line\n\r\n\t x",
	"a===b!=!c<<=>>->=>::",
	"\xef\xbb\xbf\xff\xfe@#$",
	"0x 1e 1. 0o9 ..",
}

func addSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
