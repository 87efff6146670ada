// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package database

import (
	"context"
	"strings"

	"github.com/tomtom215/coursegraph/internal/models"
)

// StoreCourse writes a submission in a single transaction: the course node,
// the creator link (when username is set), then facilitators, educational
// resources and additional resources, each merged and linked to the course.
func (s *Store) StoreCourse(ctx context.Context, username string, sub *models.CourseSubmission) error {
	if strings.TrimSpace(sub.Course.Title) == "" {
		return ErrMissingTitle
	}
	return s.write(ctx, "store_course", courseStatements(username, sub))
}

func courseStatements(username string, sub *models.CourseSubmission) []statement {
	c := sub.Course
	title := c.Title

	stmts := []statement{{
		cypher: mergeCourseCypher,
		params: map[string]any{
			"course_title":       title,
			"course_description": c.Description,
			"notional_hours":     c.NotionalHours,
			"course_topics":      c.Topics,
			"learning_outcomes":  c.LearningOutcomes,
			"targeted_skills":    c.TargetedSkills,
			"educational_level":  nonNil(c.EducationalLevel),
			"language":           nonNil(c.Language),
			"entry_requirements": c.EntryRequirements,
			"required_software":  c.RequiredSoftware,
		},
	}}

	if username != "" {
		stmts = append(stmts, statement{
			cypher: linkCreatorCypher,
			params: map[string]any{"username": username, "course_title": title},
		})
	}

	for _, f := range sub.Facilitators {
		stmts = append(stmts, statement{
			cypher: mergeFacilitatorCypher,
			params: map[string]any{
				"facilitator_name": f.Name,
				"affiliation":      f.Affiliation,
				"email":            f.Email,
				"roles":            nonNil(f.Roles),
				"course_title":     title,
			},
		})
	}

	for _, r := range sub.EducationalResources {
		stmts = append(stmts, statement{
			cypher: mergeResourceCypher,
			params: map[string]any{
				"resource_title": r.Title,
				"resource_url":   r.URL,
				"resource_type":  nonNil(r.Type),
				"course_title":   title,
			},
		})
	}

	for _, r := range sub.AdditionalResources {
		stmts = append(stmts, statement{
			cypher: mergeAdditionalCypher,
			params: map[string]any{
				"additional_url":  r.URL,
				"additional_type": nonNil(r.Type),
				"course_title":    title,
			},
		})
	}

	return stmts
}

// SearchSimilarCourses returns stored courses whose title contains title.
func (s *Store) SearchSimilarCourses(ctx context.Context, title string) ([]models.StoredCourseMatch, error) {
	records, err := s.query(ctx, "search_similar", similarCoursesCypher, map[string]any{"course_title": title})
	if err != nil {
		return nil, err
	}
	out := make([]models.StoredCourseMatch, 0, len(records))
	for _, rec := range records {
		out = append(out, models.StoredCourseMatch{
			Title:                stringValue(rec, "course_title"),
			Topics:               stringValue(rec, "course_topics"),
			Facilitators:         stringsValue(rec, "facilitators"),
			EducationalLevel:     stringsValue(rec, "educational_level"),
			Language:             stringsValue(rec, "language"),
			EducationalResources: resourceLinks(rec, "educational_resources"),
		})
	}
	return out, nil
}

// FindComplementaryContent returns distinct educational resources of
// courses matching title whose titles are not already in existingTitles.
func (s *Store) FindComplementaryContent(ctx context.Context, title string, existingTitles []string) ([]models.ResourceLink, error) {
	records, err := s.query(ctx, "find_complementary", complementaryCypher, map[string]any{
		"course_title":    title,
		"existing_titles": nonNil(existingTitles),
	})
	if err != nil {
		return nil, err
	}
	out := make([]models.ResourceLink, 0, len(records))
	for _, rec := range records {
		out = append(out, models.ResourceLink{
			Title: stringValue(rec, "title"),
			URL:   stringValue(rec, "url"),
		})
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
