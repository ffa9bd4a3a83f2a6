// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package assistant

import "strings"

// searchKeywords marks questions about requirements and procedures. Only
// those benefit from a web lookup; greetings and tracking questions are
// answered from the site configuration alone.
var searchKeywords = []string{
	"syarat",
	"persyaratan",
	"prosedur",
	"cara",
	"bagaimana",
	"biaya",
	"dokumen",
	"berkas",
	"ketentuan",
	"aturan",
}

// needsSearch reports whether the question should trigger a web lookup.
func needsSearch(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range searchKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
