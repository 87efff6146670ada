// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package knowledge

import (
	"regexp"
	"strings"

	"github.com/tomtom215/coursegraph/internal/models"
)

// FirstLiteral returns the lexical value of the first literal object of
// (s, p, ?). IRI objects resolve to their own schema:name; blank nodes are
// skipped. Returns "" when nothing matches.
func (g *Graph) FirstLiteral(s, p Term) string {
	return g.firstLiteral(s, p, nil)
}

func (g *Graph) firstLiteral(s, p Term, path []Term) string {
	for _, seen := range path {
		if seen == s {
			return ""
		}
	}
	for _, o := range g.Objects(s, p) {
		switch o.Kind {
		case KindLiteral:
			return o.Value
		case KindIRI:
			if name := g.firstLiteral(o, schemaName, append(path, s)); name != "" {
				return name
			}
		}
	}
	return ""
}

// nameOf returns schema:name of t, or t's value when unnamed.
func (g *Graph) nameOf(t Term) string {
	if name := g.FirstLiteral(t, schemaName); name != "" {
		return name
	}
	return t.Value
}

// BoolValue interprets the literal objects of (s, p, ?) as a boolean.
// xsd:boolean literals are true for "true" or "1"; untyped literals accept
// true/1 and false/0. Unrecognized literals are skipped. nil means unknown.
func (g *Graph) BoolValue(s, p Term) *bool {
	for _, o := range g.Objects(s, p) {
		if !o.IsLiteral() {
			continue
		}
		val := strings.ToLower(strings.TrimSpace(o.Value))
		if o.Datatype == xsdBoolean {
			b := val == "true" || val == "1"
			return &b
		}
		switch val {
		case "true", "1":
			b := true
			return &b
		case "false", "0":
			b := false
			return &b
		}
	}
	return nil
}

// LevelValue returns a readable schema:educationalLevel of s: a literal as
// is, an IRI's schema:name, or the IRI itself.
func (g *Graph) LevelValue(s Term) string {
	for _, o := range g.Objects(s, schemaEducationalLevel) {
		switch o.Kind {
		case KindLiteral:
			return o.Value
		case KindIRI:
			return g.nameOf(o)
		}
	}
	return ""
}

// providerType classifies a provider by its rdf:type.
func (g *Graph) providerType(p Term) string {
	switch {
	case g.Has(p, rdfType, schemaEducationalOrganization), g.Has(p, rdfType, schemaCollegeOrUniversity):
		return models.ProviderOrganization
	case g.Has(p, rdfType, schemaPerson):
		return models.ProviderPerson
	default:
		return ""
	}
}

var levelBuckets = []struct {
	label    string
	keywords []string
}{
	{"PhD", []string{"phd", "doctoral", "doctorate", "dphil"}},
	{"Master", []string{"master", "msc", "m.sc", "gradua"}},
	{"Bachelor", []string{"bachelor", "undergrad", "bsc", "b.sc", "ba"}},
	{"HS", []string{"high", "secondary"}},
	{"Cert", []string{"diploma", "certificate", "cert"}},
	{"Associate", []string{"associate"}},
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

const (
	maxLevelLabel   = 13
	truncLevelLabel = 12
)

// ShortLevelLabel condenses an educational level (literal or IRI) into a
// short badge label such as "PhD", "Master" or "Cert".
func ShortLevelLabel(val string) string {
	if val == "" {
		return ""
	}
	s := val
	if strings.ContainsAny(s, "/#") {
		parts := strings.Split(s, "#")
		s = parts[len(parts)-1]
		parts = strings.Split(s, "/")
		s = parts[len(parts)-1]
	}

	low := strings.ToLower(s)
	for _, bucket := range levelBuckets {
		for _, kw := range bucket.keywords {
			if strings.Contains(low, kw) {
				return bucket.label
			}
		}
	}

	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	if r := []rune(s); len(r) > maxLevelLabel {
		return string(r[:truncLevelLabel]) + "…"
	}
	return s
}
