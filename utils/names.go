package utils

import (
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeGameType canonicalizes caller-supplied game type labels so that
// "Memory Match" and "memory-match" group together in analytics and garden
// leaf tags.
func NormalizeGameType(gameType string) string {
	if gameType == "" {
		return ""
	}
	return slug.Make(gameType)
}

// DisplayTitle renders a normalized label for the parent dashboard
// ("memory-match" → "Memory Match").
func DisplayTitle(label string) string {
	if label == "" {
		return ""
	}
	return titleCaser.String(strings.ReplaceAll(label, "-", " "))
}
