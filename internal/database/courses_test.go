// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/tomtom215/coursegraph/internal/models"
)

func sampleSubmission() *models.CourseSubmission {
	return &models.CourseSubmission{
		Facilitators: []models.Facilitator{
			{Name: "Ada", Affiliation: "TIB", Email: "ada@example.org", Roles: []string{"Lecturer"}},
			{Name: "Grace"},
		},
		Course: models.CourseData{
			Title:            "Intro to Data Science",
			Description:      "Basics",
			EducationalLevel: []string{"Bachelor"},
		},
		EducationalResources: []models.EducationalResource{
			{Title: "Slides", URL: "https://example.org/slides", Type: []string{"Slides"}},
		},
		AdditionalResources: []models.AdditionalResource{
			{URL: "https://example.org/video"},
		},
	}
}

func TestStoreCourse_SingleTransaction(t *testing.T) {
	t.Parallel()

	r := newFakeRunner()
	s := testStore(r)
	if err := s.StoreCourse(context.Background(), "alice", sampleSubmission()); err != nil {
		t.Fatalf("StoreCourse() error = %v", err)
	}

	if len(r.writes) != 1 {
		t.Fatalf("got %d transactions, want 1", len(r.writes))
	}
	var got []string
	for _, stmt := range r.writes[0] {
		got = append(got, stmt.cypher)
		if stmt.params["course_title"] != "Intro to Data Science" {
			t.Errorf("statement missing course_title: %v", stmt.params)
		}
	}
	want := []string{
		mergeCourseCypher,
		linkCreatorCypher,
		mergeFacilitatorCypher,
		mergeFacilitatorCypher,
		mergeResourceCypher,
		mergeAdditionalCypher,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("statement order mismatch:\n got %d statements\nwant %d", len(got), len(want))
	}

	grace := r.writes[0][3].params
	if roles, ok := grace["roles"].([]string); !ok || roles == nil || len(roles) != 0 {
		t.Errorf("roles for facilitator without roles = %#v, want empty list", grace["roles"])
	}
	course := r.writes[0][0].params
	if lang, ok := course["language"].([]string); !ok || len(lang) != 0 {
		t.Errorf("language = %#v, want empty list", course["language"])
	}
}

func TestStoreCourse_Anonymous(t *testing.T) {
	t.Parallel()

	r := newFakeRunner()
	sub := sampleSubmission()
	sub.Facilitators = nil
	sub.EducationalResources = nil
	sub.AdditionalResources = nil

	if err := testStore(r).StoreCourse(context.Background(), "", sub); err != nil {
		t.Fatal(err)
	}
	if n := len(r.writes[0]); n != 1 {
		t.Errorf("got %d statements, want only the course merge", n)
	}
}

func TestStoreCourse_MissingTitle(t *testing.T) {
	t.Parallel()

	r := newFakeRunner()
	sub := sampleSubmission()
	sub.Course.Title = "   "

	err := testStore(r).StoreCourse(context.Background(), "alice", sub)
	if !errors.Is(err, ErrMissingTitle) {
		t.Errorf("error = %v, want ErrMissingTitle", err)
	}
	if len(r.writes) != 0 {
		t.Error("nothing should be written without a title")
	}
}

func TestSearchSimilarCourses(t *testing.T) {
	t.Parallel()

	r := newFakeRunner()
	r.results[similarCoursesCypher] = []*neo4j.Record{
		record(
			[]string{"course_title", "course_topics", "facilitators", "educational_level", "language", "educational_resources"},
			"Intro to Data Science",
			"statistics",
			[]any{"Ada", "Grace"},
			[]any{"Bachelor"},
			"English",
			[]any{
				map[string]any{"title": "Slides", "url": "https://example.org/slides"},
				map[string]any{"title": nil, "url": nil},
			},
		),
		record(
			[]string{"course_title", "course_topics", "facilitators", "educational_level", "language", "educational_resources"},
			"Data Science II", nil, []any{}, nil, nil, []any{map[string]any{"title": nil, "url": nil}},
		),
	}
	s := testStore(r)

	got, err := s.SearchSimilarCourses(context.Background(), "Data Science")
	if err != nil {
		t.Fatalf("SearchSimilarCourses() error = %v", err)
	}
	want := []models.StoredCourseMatch{
		{
			Title:                "Intro to Data Science",
			Topics:               "statistics",
			Facilitators:         []string{"Ada", "Grace"},
			EducationalLevel:     []string{"Bachelor"},
			Language:             []string{"English"},
			EducationalResources: []models.ResourceLink{{Title: "Slides", URL: "https://example.org/slides"}},
		},
		{
			Title:                "Data Science II",
			Facilitators:         []string{},
			EducationalLevel:     []string{},
			Language:             []string{},
			EducationalResources: []models.ResourceLink{},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchSimilarCourses() =\n%+v\nwant\n%+v", got, want)
	}
	if r.queries[0].params["course_title"] != "Data Science" {
		t.Errorf("params = %v", r.queries[0].params)
	}
}

func TestFindComplementaryContent(t *testing.T) {
	t.Parallel()

	r := newFakeRunner()
	r.results[complementaryCypher] = []*neo4j.Record{
		record([]string{"title", "url"}, "Notebook", "https://example.org/nb"),
	}
	s := testStore(r)

	got, err := s.FindComplementaryContent(context.Background(), "Data", nil)
	if err != nil {
		t.Fatalf("FindComplementaryContent() error = %v", err)
	}
	want := []models.ResourceLink{{Title: "Notebook", URL: "https://example.org/nb"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if existing, ok := r.queries[0].params["existing_titles"].([]string); !ok || existing == nil {
		t.Errorf("existing_titles = %#v, want empty list", r.queries[0].params["existing_titles"])
	}
}

func TestToStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"scalar", "English", []string{"English"}},
		{"empty scalar", "", []string{}},
		{"any list", []any{"a", nil, "", "b"}, []string{"a", "b"}},
		{"string list", []string{"a", ""}, []string{"a"}},
		{"number", int64(3), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := toStrings(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("toStrings(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
