// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package models

// Facilitator is a person running a submitted course.
type Facilitator struct {
	Name        string   `json:"name" validate:"max=200"`
	Affiliation string   `json:"affiliation" validate:"max=200"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Roles       []string `json:"roles"`
}

// CourseData holds the descriptive fields of a submitted course.
type CourseData struct {
	Title             string   `json:"title" validate:"required,max=500"`
	Description       string   `json:"description"`
	NotionalHours     string   `json:"notional_hours"`
	Topics            string   `json:"course_topics"`
	LearningOutcomes  string   `json:"learning_outcomes"`
	TargetedSkills    string   `json:"targeted_skills"`
	EducationalLevel  []string `json:"educational_level"`
	Language          []string `json:"language"`
	EntryRequirements string   `json:"entry_requirements"`
	RequiredSoftware  string   `json:"required_software"`
}

// EducationalResource is a titled resource included in a course.
type EducationalResource struct {
	Title string   `json:"title"`
	URL   string   `json:"url" validate:"omitempty,url"`
	Type  []string `json:"type"`
}

// AdditionalResource is a supplementary link attached to a course.
type AdditionalResource struct {
	URL  string   `json:"url" validate:"omitempty,url"`
	Type []string `json:"type"`
}

// CourseSubmission is everything a user submits through the course form.
type CourseSubmission struct {
	Facilitators         []Facilitator         `json:"facilitators" validate:"dive"`
	Course               CourseData            `json:"course"`
	EducationalResources []EducationalResource `json:"educational_resources" validate:"dive"`
	AdditionalResources  []AdditionalResource  `json:"additional_resources" validate:"dive"`
}

// ResourceLink is a title/url pair read back from Neo4j.
type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// StoredCourseMatch is a stored course whose title matched a search.
type StoredCourseMatch struct {
	Title                string         `json:"title"`
	Topics               string         `json:"topics,omitempty"`
	Facilitators         []string       `json:"facilitators"`
	EducationalLevel     []string       `json:"educational_level"`
	Language             []string       `json:"language"`
	EducationalResources []ResourceLink `json:"educational_resources"`
}

// SubmissionResult is returned after storing a course.
type SubmissionResult struct {
	Title         string   `json:"title"`
	Stored        bool     `json:"stored"`
	MissingFields []string `json:"missing_fields"`
}
