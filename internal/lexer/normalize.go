package lexer

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a leading UTF-8 BOM and applies Unicode NFC
// normalization, so that visually identical source text lexes to the same
// token stream regardless of how it was encoded. Done once at the lexer
// boundary so every later pass can assume normalized input.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}
