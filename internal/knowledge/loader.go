// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package knowledge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knakk/rdf"
)

// ErrNotLoaded is returned when the knowledge graph file is absent.
var ErrNotLoaded = errors.New("knowledge graph not loaded")

// LoadFile parses an N-Triples file into a Graph.
// A missing file yields ErrNotLoaded (wrapped) so callers can run degraded.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrNotLoaded, path)
		}
		return nil, fmt.Errorf("open rdf file: %w", err)
	}
	defer f.Close()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

// Load decodes N-Triples from r.
func Load(r io.Reader) (*Graph, error) {
	g := NewGraph()
	dec := rdf.NewTripleDecoder(r, rdf.NTriples)
	for {
		tr, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return g, nil
		}
		if err != nil {
			return nil, err
		}
		g.Add(Triple{
			S: fromRDF(tr.Subj),
			P: fromRDF(tr.Pred),
			O: fromRDF(tr.Obj),
		})
	}
}

func fromRDF(t rdf.Term) Term {
	switch v := t.(type) {
	case rdf.IRI:
		return IRI(v.String())
	case rdf.Blank:
		return Blank(strings.TrimPrefix(v.String(), "_:"))
	case rdf.Literal:
		return Term{
			Kind:     KindLiteral,
			Value:    v.String(),
			Datatype: v.DataType.String(),
			Lang:     v.Lang(),
		}
	default:
		return Literal(t.String())
	}
}
