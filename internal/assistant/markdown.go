// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package assistant

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	htmlPolicy = bluemonday.UGCPolicy()
)

// renderMarkdown converts model output to sanitized HTML. The model is told
// to answer in Markdown; the sanitizer strips anything beyond ordinary
// user-generated content markup.
func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlPolicy.Sanitize(buf.String()), nil
}
