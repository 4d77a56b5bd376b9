// Package ingestion normalizes extracted text and describes the files it came from.
package ingestion

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// three or more newlines, possibly separated by other whitespace
	reBlankRun = regexp.MustCompile(`\n\s*\n\s*\n`)
	reSpaces   = regexp.MustCompile(` +`)
)

// CleanExtractedText collapses blank-line runs to a single blank line,
// squeezes runs of spaces and trims the result.
// Applying it twice yields the same text as applying it once.
func CleanExtractedText(content string) string {
	return cleanWith(content, "\n\n")
}

// CleanExtractedTextCompact behaves like CleanExtractedText but collapses
// blank-line runs to a single newline.
func CleanExtractedTextCompact(content string) string {
	return cleanWith(content, "\n")
}

func cleanWith(content, blank string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	content = reBlankRun.ReplaceAllString(content, blank)
	content = reSpaces.ReplaceAllString(content, " ")
	return strings.TrimSpace(content)
}

// CountWords returns the number of whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountChars returns the number of characters (runes) in text.
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}
