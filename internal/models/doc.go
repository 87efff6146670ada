// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

/*
Package models defines data structures shared across Coursegraph.

Model Categories:

1. Knowledge graph views (read-only, built from the RDF catalog):
  - CourseSummary: list entry with providers and topic/skill counts
  - CourseDetail: providers, topics, statistics and related skills
  - SearchResult: course summary plus a node/edge network and match score

2. Course submissions (authored by users, stored in Neo4j):
  - CourseSubmission: facilitators, course data and resources
  - StoredCourseMatch: a stored course returned by title search

3. Accounts and service status:
  - User, StatusReport
*/
package models
