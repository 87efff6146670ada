// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/coursegraph/internal/models"
)

// maxFormEntries bounds each indexed list in the course form.
const maxFormEntries = 100

// parseSubmission reads the course form. Indexed groups
// (facilitator_name_0, resource_title_0, additional_url_0, ...) are read
// from index 0 until the first missing key field.
func parseSubmission(form url.Values) models.CourseSubmission {
	get := func(key string) string { return strings.TrimSpace(form.Get(key)) }
	list := func(key string) []string {
		var out []string
		for _, v := range form[key] {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	indexed := func(prefix string, i int) string { return prefix + strconv.Itoa(i) }

	var sub models.CourseSubmission

	for i := 0; i < maxFormEntries; i++ {
		name := get(indexed("facilitator_name_", i))
		if name == "" {
			break
		}
		sub.Facilitators = append(sub.Facilitators, models.Facilitator{
			Name:        name,
			Affiliation: get(indexed("facilitator_affiliation_", i)),
			Email:       get(indexed("facilitator_email_", i)),
			Roles:       list(indexed("facilitator_roles_", i)),
		})
	}

	sub.Course = models.CourseData{
		Title:             get("course_title"),
		Description:       get("course_description"),
		NotionalHours:     get("notional_hours"),
		Topics:            get("course_topics"),
		LearningOutcomes:  get("learning_outcomes"),
		TargetedSkills:    get("targeted_skills"),
		EducationalLevel:  list("educational_level"),
		Language:          list("language"),
		EntryRequirements: get("entry_requirements"),
		RequiredSoftware:  get("required_software"),
	}

	for i := 0; i < maxFormEntries; i++ {
		title := get(indexed("resource_title_", i))
		if title == "" {
			break
		}
		sub.EducationalResources = append(sub.EducationalResources, models.EducationalResource{
			Title: title,
			URL:   get(indexed("resource_url_", i)),
			Type:  list(indexed("resource_type_", i)),
		})
	}

	for i := 0; i < maxFormEntries; i++ {
		u := get(indexed("additional_url_", i))
		if u == "" {
			break
		}
		sub.AdditionalResources = append(sub.AdditionalResources, models.AdditionalResource{
			URL:  u,
			Type: list(indexed("additional_type_", i)),
		})
	}

	return sub
}
