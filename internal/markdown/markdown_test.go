// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "heading gets an id",
			input: "# Hello World",
			want:  []string{`<h1 id="hello-world">Hello World</h1>`},
		},
		{
			name:  "emphasis and links",
			input: "Some *emphasis* and a [link](https://example.com).",
			want:  []string{"<em>emphasis</em>", `<a href="https://example.com">link</a>`},
		},
		{
			name:  "gfm strikethrough",
			input: "~~gone~~",
			want:  []string{"<del>gone</del>"},
		},
		{
			name:  "gfm table",
			input: "| a | b |\n|---|---|\n| 1 | 2 |",
			want:  []string{"<table>", "<td>1</td>"},
		},
		{
			name:  "fenced code is highlighted with classes",
			input: "```go\nfunc main() {}\n```",
			want:  []string{`class="chroma"`, "main"},
		},
		{
			name:  "raw html passes through",
			input: "<span>inline</span>",
			want:  []string{"<span>inline</span>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output %q does not contain %q", got, w)
				}
			}
		})
	}
}

func TestToHTML_Empty(t *testing.T) {
	got, err := ToHTML("")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
