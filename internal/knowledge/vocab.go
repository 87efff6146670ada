// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package knowledge

// Namespaces used by the course knowledge graph.
const (
	NSSchema  = "http://schema.org/"
	NSCourses = "https://w3id.org/def/courses#"
	NSEduCOR  = "https://github.com/tibonto/educor#"
	NSRDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSXSD     = "http://www.w3.org/2001/XMLSchema#"
)

var (
	rdfType    = IRI(NSRDF + "type")
	xsdBoolean = NSXSD + "boolean"

	schemaCourse                  = IRI(NSSchema + "Course")
	schemaName                    = IRI(NSSchema + "name")
	schemaURL                     = IRI(NSSchema + "url")
	schemaDescription             = IRI(NSSchema + "description")
	schemaProvider                = IRI(NSSchema + "provider")
	schemaTeaches                 = IRI(NSSchema + "teaches")
	schemaEducationalLevel        = IRI(NSSchema + "educationalLevel")
	schemaLocation                = IRI(NSSchema + "location")
	schemaEmail                   = IRI(NSSchema + "email")
	schemaPerson                  = IRI(NSSchema + "Person")
	schemaEducationalOrganization = IRI(NSSchema + "EducationalOrganization")
	schemaCollegeOrUniversity     = IRI(NSSchema + "CollegeOrUniversity")

	coursesResponsibleEntity = IRI(NSCourses + "responsibleEntity")
	coursesSkillRequired     = IRI(NSCourses + "skillRequired")
	coursesTheoreticalTopic  = IRI(NSCourses + "theoreticalTopic")
	coursesMainTopic         = IRI(NSCourses + "mainTopic")

	educorRequiresKnowledge = IRI(NSEduCOR + "requiresKnowledge")
)

// providerPredicates link a course to its providers, in lookup order.
var providerPredicates = []Term{schemaProvider, coursesResponsibleEntity}

// skillSourcePredicates link a subject to a topic it depends on or teaches.
var skillSourcePredicates = []Term{educorRequiresKnowledge, schemaTeaches}
