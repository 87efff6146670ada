// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package knowledge

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// substringScore is awarded when one normalized string contains the other.
const substringScore = 0.85

// StringSimilarity scores two strings in [0, 1] after trimming and
// lowercasing: 1 for equal strings, 0.85 when one contains the other,
// otherwise the SequenceMatcher ratio over characters. Empty input scores 0.
func StringSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	if strings.Contains(b, a) || strings.Contains(a, b) {
		return substringScore
	}
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
