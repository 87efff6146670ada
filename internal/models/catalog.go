// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package models

// Provider types derived from rdf:type statements.
const (
	ProviderOrganization = "Organization"
	ProviderPerson       = "Person"
)

// Provider is an organization or person offering a course.
type Provider struct {
	URI      string `json:"uri"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"` // Organization, Person or empty
	Location string `json:"location,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Topic is an object of schema:teaches.
// Theoretical and Main are tri-state: nil when the graph says nothing.
type Topic struct {
	URI              string `json:"uri"`
	Name             string `json:"name"`
	Theoretical      *bool  `json:"theoretical"`
	Main             *bool  `json:"main"`
	EducationalLevel string `json:"educationalLevel,omitempty"`
}

// Skill is a skill required by subjects that teach or require a course topic.
type Skill struct {
	URI              string `json:"uri"`
	Name             string `json:"name"`
	EducationalLevel string `json:"educationalLevel,omitempty"`
}

// CourseSummary is a course list entry.
type CourseSummary struct {
	URI         string     `json:"uri"`
	Name        string     `json:"name"`
	URL         string     `json:"url,omitempty"`
	Providers   []Provider `json:"providers"`
	TopicCount  int        `json:"topic_count"`
	SkillsCount int        `json:"skills_count"`
}

// CourseStats aggregates topic flags and levels of one course.
type CourseStats struct {
	TopicCount       int            `json:"topic_count"`
	TheoreticalCount int            `json:"theoretical_count"`
	PracticalCount   int            `json:"practical_count"`
	Levels           map[string]int `json:"levels"`
	SkillsCount      int            `json:"skills_count,omitempty"`
}

// CourseDetail is the full view of one course.
type CourseDetail struct {
	URI       string      `json:"uri"`
	Name      string      `json:"name"`
	URL       string      `json:"url,omitempty"`
	Providers []Provider  `json:"providers"`
	Topics    []Topic     `json:"topics"`
	Summary   CourseStats `json:"summary"`
	Skills    []Skill     `json:"skills"`
}

// Graph node groups.
const (
	GroupCourse   = "Course"
	GroupProvider = "Provider"
	GroupTopic    = "Topic"
	GroupSkill    = "Skill"
)

// GraphNode is a node of the course network view.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Group string `json:"group"`
}

// GraphEdge connects two GraphNode IDs.
type GraphEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// CourseGraph is the node/edge network rendered next to search results.
type CourseGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// SearchMatch explains why a course matched a query.
type SearchMatch struct {
	Title              string  `json:"title"`
	DescriptionPresent bool    `json:"description_present"`
	Score              float64 `json:"score"`
}

// SearchResult is a course summary returned by similarity search.
type SearchResult struct {
	URI       string      `json:"uri"`
	Name      string      `json:"name"`
	URL       string      `json:"url,omitempty"`
	Providers []Provider  `json:"providers"`
	Topics    []Topic     `json:"topics"`
	Summary   CourseStats `json:"summary"`
	Skills    []Skill     `json:"skills"`
	Graph     CourseGraph `json:"graph"`
	Match     SearchMatch `json:"match"`
}
