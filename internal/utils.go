package internal

import (
	"strings"
	"unicode"
)

// Version is the pdftranslate release version
const Version = "0.3.0"

// DefaultSourceURL is translated when no source is given
const DefaultSourceURL = "https://arxiv.org/pdf/2106.14881.pdf"

// DefaultOutputFile is the default JSON output path
const DefaultOutputFile = "translated_output.json"

// DefaultLanguage is the default target language
const DefaultLanguage = "Chinese"

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is a letter or digit in any script
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
