// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize cleans user-submitted HTML before it is stored. Post
// bodies keep a safe subset of formatting markup; comments are reduced to
// plain text.
package sanitize

import (
	"html"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// highlightClass matches the class lists emitted by syntax highlighting.
var highlightClass = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// Sanitizer holds the compiled bluemonday policies. A Sanitizer is safe
// for concurrent use.
type Sanitizer struct {
	content *bluemonday.Policy
	comment *bluemonday.Policy
}

// New builds the content and comment policies.
func New() *Sanitizer {
	content := bluemonday.UGCPolicy()
	content.RequireNoFollowOnLinks(true)
	content.AddTargetBlankToFullyQualifiedLinks(true)
	content.AllowAttrs("class").Matching(highlightClass).OnElements("pre", "code", "span")

	return &Sanitizer{
		content: content,
		comment: bluemonday.StrictPolicy(),
	}
}

// Content strips scripts, event handlers and unsafe URLs from a post body
// while keeping formatting such as paragraphs, lists, links and images.
func (s *Sanitizer) Content(html string) string {
	return s.content.Sanitize(html)
}

// Comment removes all markup from a comment and returns plain text.
// Entities produced by the policy are decoded so "Tom & Jerry's" is stored
// as typed; clients escape comments on output.
func (s *Sanitizer) Comment(text string) string {
	return html.UnescapeString(s.comment.Sanitize(text))
}
