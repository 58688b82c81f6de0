// Package stringutil provides small string helpers shared by the analyzers:
// snake_case splitting, humanization of field names into readable labels, and
// lightweight format validation.
package stringutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser is shared; cases.Caser values are safe for concurrent use.
var titleCaser = cases.Title(language.English)

// Humanize converts a snake_case or dot.path field name into a readable label.
// Only the final path segment is used: "user.billing_address" -> "Billing address".
func Humanize(field string) string {
	if field == "" {
		return ""
	}
	if idx := strings.LastIndexByte(field, '.'); idx >= 0 {
		field = field[idx+1:]
	}
	// Wildcard segments carry no label information.
	field = strings.TrimSuffix(field, ".*")
	if field == "" || field == "*" {
		return ""
	}
	words := SplitSnake(field)
	if len(words) == 0 {
		return ""
	}
	words[0] = titleCaser.String(words[0])
	return strings.Join(words, " ")
}

// SplitSnake splits a snake_case identifier into its lowercase words.
func SplitSnake(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

// TitleWords title-cases every word: "user profile" -> "User Profile".
func TitleWords(s string) string {
	return titleCaser.String(s)
}
