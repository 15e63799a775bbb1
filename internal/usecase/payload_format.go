package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// formatStoredPayload pretty-prints raw with four-space indentation and writes
// every string with non-ASCII text unescaped and '/' escaped, the layout the
// suggestion table has always held.
func formatStoredPayload(raw string) (string, error) {
	var indented bytes.Buffer
	if err := json.Indent(&indented, []byte(raw), "", "    "); err != nil {
		return "", err
	}

	src := indented.Bytes()
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		if src[i] != '"' {
			out = append(out, src[i])
			continue
		}
		end := stringEnd(src, i)
		var s string
		if err := json.Unmarshal(src[i:end], &s); err != nil {
			return "", fmt.Errorf("decode string at %d: %w", i, err)
		}
		out = appendStoredString(out, s)
		i = end - 1
	}
	return string(out), nil
}

// stringEnd returns the index just past the closing quote of the string
// literal opening at start.
func stringEnd(src []byte, start int) int {
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(src)
}

const hexDigits = "0123456789abcdef"

func appendStoredString(out []byte, s string) []byte {
	out = append(out, '"')
	for _, r := range s {
		switch r {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '/':
			out = append(out, '\\', '/')
		case '\b':
			out = append(out, '\\', 'b')
		case '\f':
			out = append(out, '\\', 'f')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		case '\u2028', '\u2029':
			out = append(out, '\\', 'u', '2', '0', '2', hexDigits[r&0xf])
		default:
			if r < 0x20 {
				out = append(out, '\\', 'u', '0', '0', hexDigits[r>>4], hexDigits[r&0xf])
				continue
			}
			out = utf8.AppendRune(out, r)
		}
	}
	return append(out, '"')
}
