// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for category names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches anything that isn't an ASCII word character or a space.
	nonWord = regexp.MustCompile(`[^\w ]+`)
	// spaces collapses runs of spaces into a single hyphen.
	spaces = regexp.MustCompile(` +`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// Hyphens in the input are treated like punctuation and dropped, so
// "Well-Known Facts" becomes "wellknown-facts". Hyphens left at either end
// once punctuation is gone are trimmed, so "a !" becomes "a".
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonWord.ReplaceAllString(result, "")
	result = spaces.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
