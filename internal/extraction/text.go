package extraction

import "strings"

// extractText reads a plain-text upload, dropping invalid UTF-8 byte
// sequences rather than raising. Line endings are normalized to \n.
func extractText(data []byte) string {
	s := strings.ToValidUTF8(string(data), "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}
