package storage

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// fallbackName is used when nothing of the original name survives sanitization.
const fallbackName = "upload"

// SanitizeFilename reduces a client-supplied filename to a safe base name.
// Accents are folded to ASCII, path separators split words, words are joined with '_',
// only [A-Za-z0-9_.-] is kept and leading/trailing dots and underscores are trimmed.
// "../../etc/passwd" becomes "etc_passwd"; "Mé photo.JPG" becomes "Me_photo.JPG".
func SanitizeFilename(name string) string {
	var ascii strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < unicode.MaxASCII {
			ascii.WriteRune(r)
		}
	}
	s := strings.NewReplacer("/", " ", "\\", " ").Replace(ascii.String())
	s = strings.Join(strings.Fields(s), "_")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	s = strings.Trim(b.String(), "._")
	if s == "" {
		return fallbackName
	}
	return s
}
