// Package sanitize strips untrusted characters from resume text while keeping
// bullet glyphs and the punctuation resumes actually use.
package sanitize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// punctuation kept by Clean: . , ; : ( ) - / % + & ' "
const punctuation = `.,;:()-/%+&'"`

// Clean removes every character that is not an ASCII letter or digit,
// whitespace, a glyph from bullets, or one of the punctuation marks
// . , ; : ( ) - / % + & ' ". Accented and non-Latin letters are removed.
// Kept characters stay in place; whitespace is never collapsed. Invalid UTF-8
// is dropped. Clean is idempotent.
func Clean(text string, bullets BulletSet) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		if allowed(r, bullets) {
			result.WriteRune(r)
		}
	}

	return result.String()
}

func allowed(r rune, bullets BulletSet) bool {
	switch {
	case r == unicode.ReplacementChar:
		return false
	case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)):
		return true
	case unicode.IsSpace(r), r == '\uFEFF':
		return true
	case strings.ContainsRune(punctuation, r):
		return true
	default:
		return bullets.Contains(r)
	}
}

// CleanAll cleans each element of texts. Input that is not a sequence
// ([]string or []any) yields an empty slice; non-string elements of an []any
// become "".
func CleanAll(texts any, bullets BulletSet) []string {
	switch v := texts.(type) {
	case []string:
		out := make([]string, len(v))
		for i, t := range v {
			out[i] = Clean(t, bullets)
		}
		return out
	case []any:
		out := make([]string, len(v))
		for i, t := range v {
			if s, ok := t.(string); ok {
				out[i] = Clean(s, bullets)
			}
		}
		return out
	default:
		return []string{}
	}
}

// CleanPages cleans every line of every page, keeping the page structure.
func CleanPages(pages [][]string, bullets BulletSet) [][]string {
	out := make([][]string, len(pages))
	for i, lines := range pages {
		out[i] = CleanAll(lines, bullets)
	}
	return out
}
