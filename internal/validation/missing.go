// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package validation

import (
	"fmt"
	"strings"

	"github.com/tomtom215/coursegraph/internal/models"
)

// MissingFields lists the human-readable labels of every empty field of a
// course submission, in form order. Facilitators and resources are numbered
// from 1. An empty result means the submission is complete.
func MissingFields(sub *models.CourseSubmission) []string {
	missing := []string{}
	add := func(empty bool, label string) {
		if empty {
			missing = append(missing, label)
		}
	}

	for i, f := range sub.Facilitators {
		n := i + 1
		add(blank(f.Name), fmt.Sprintf("Facilitator %d Name", n))
		add(blank(f.Affiliation), fmt.Sprintf("Facilitator %d Affiliation", n))
		add(blank(f.Email), fmt.Sprintf("Facilitator %d Email", n))
		add(len(f.Roles) == 0, fmt.Sprintf("Facilitator %d Roles", n))
	}

	c := sub.Course
	add(blank(c.Title), "Course Title")
	add(blank(c.Description), "Course Description")
	add(blank(c.NotionalHours), "Notional Hours")
	add(blank(c.Topics), "Course Topics")
	add(blank(c.LearningOutcomes), "Course Learning Outcomes")
	add(blank(c.TargetedSkills), "Targeted Skills")
	add(len(c.EducationalLevel) == 0, "Educational Level")
	add(len(c.Language) == 0, "Language")
	add(blank(c.EntryRequirements), "Entry Requirements")
	add(blank(c.RequiredSoftware), "Required Software")

	for i, r := range sub.EducationalResources {
		n := i + 1
		add(blank(r.Title), fmt.Sprintf("Educational Resource %d Title", n))
		add(blank(r.URL), fmt.Sprintf("Educational Resource %d URL", n))
		add(len(r.Type) == 0, fmt.Sprintf("Educational Resource %d Type", n))
	}

	for i, r := range sub.AdditionalResources {
		n := i + 1
		add(len(r.Type) == 0, fmt.Sprintf("Additional Resource %d Type", n))
		add(blank(r.URL), fmt.Sprintf("Additional Resource %d URL", n))
	}

	return missing
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
