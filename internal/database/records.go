// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package database

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tomtom215/coursegraph/internal/models"
)

// Record value helpers. Missing keys and nulls read as zero values.

func stringValue(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

func boolValue(rec *neo4j.Record, key string) bool {
	v, _ := rec.Get(key)
	b, _ := v.(bool)
	return b
}

// stringsValue reads a list property. Scalars stored by older clients are
// returned as a one-element list.
func stringsValue(rec *neo4j.Record, key string) []string {
	v, _ := rec.Get(key)
	return toStrings(v)
}

func toStrings(v any) []string {
	out := []string{}
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range val {
			if s != "" {
				out = append(out, s)
			}
		}
	case string:
		if val != "" {
			out = append(out, val)
		}
	}
	return out
}

// resourceLinks reads a list of {title, url} maps, skipping entries
// without a title (produced by OPTIONAL MATCH misses).
func resourceLinks(rec *neo4j.Record, key string) []models.ResourceLink {
	v, _ := rec.Get(key)
	items, _ := v.([]any)
	out := []models.ResourceLink{}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title, _ := m["title"].(string)
		if title == "" {
			continue
		}
		url, _ := m["url"].(string)
		out = append(out, models.ResourceLink{Title: title, URL: url})
	}
	return out
}
