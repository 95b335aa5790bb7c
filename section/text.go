package section

import "strings"

// decodeText converts a fixed-width text field to a Go string using the
// recording's declared text encoding. Revisions before R400B wrote text in
// Latin-1 (code point == byte value, so a simple byte-to-rune widening is
// the entire decode — there's no ecosystem library to reach for when the
// transform is this close to the identity function). Later revisions wrote
// UTF-8 but occasionally leave a truncated multi-byte sequence at the end
// of a fixed-width field; strings.ToValidUTF8 drops every invalid byte
// sequence (such a broken tail included) instead of rejecting the whole
// field.
func decodeText(raw []byte, latin1 bool) string {
	trimmed := trimCString(raw)
	if latin1 {
		runes := make([]rune, len(trimmed))
		for i := 0; i < len(trimmed); i++ {
			runes[i] = rune(trimmed[i])
		}
		return string(runes)
	}
	return strings.ToValidUTF8(string(trimmed), "")
}

// DecodeMarkerText decodes a variable-length marker or journal text blob
// using the same encoding rule as header text fields.
func DecodeMarkerText(raw []byte, latin1 bool) string {
	return decodeText(raw, latin1)
}
