// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips anything outside bluemonday's user-generated-content
// policy from rendered notes.
var htmlSanitizer = bluemonday.UGCPolicy()

// renderNotesHTML converts markdown notes to sanitized HTML for API clients.
// The raw markdown is always returned alongside it; rendering failures
// degrade to an empty string rather than an error.
func renderNotesHTML(notes string) string {
	if notes == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(notes), &buf); err != nil {
		return ""
	}
	return htmlSanitizer.Sanitize(buf.String())
}
