package vectorstore

import (
	"crypto/md5"
	"encoding/hex"
)

// maxContentChars is the per-document content cap. Documents are truncated to
// this many characters before fingerprinting, so two documents that differ
// only beyond the cap are duplicates of each other.
const maxContentChars = 500

// Fingerprint returns the 16-character hex digest identifying document
// content. Callers hash the already-truncated content.
func Fingerprint(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])[:16]
}

// truncateContent caps content at maxContentChars characters.
func truncateContent(s string) string {
	runes := []rune(s)
	if len(runes) <= maxContentChars {
		return s
	}
	return string(runes[:maxContentChars])
}
