// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package models

// Overall status values.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// RDFStatus describes the knowledge graph file.
type RDFStatus struct {
	File        string `json:"file"`
	FileExists  bool   `json:"file_exists"`
	TripleCount int    `json:"triple_count"`
	CourseCount int    `json:"course_count"`
}

// Neo4jStatus describes the graph database connection.
type Neo4jStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Error      string `json:"error,omitempty"`
}

// StatusReport is returned by /status.
type StatusReport struct {
	Status string      `json:"status"`
	RDF    RDFStatus   `json:"rdf"`
	Neo4j  Neo4jStatus `json:"neo4j"`
}
