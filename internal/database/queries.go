// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package database

const pingCypher = `RETURN 1 AS ok`

var schemaCypher = []string{
	`CREATE CONSTRAINT user_username IF NOT EXISTS FOR (u:User) REQUIRE u.username IS UNIQUE`,
	`CREATE CONSTRAINT course_title IF NOT EXISTS FOR (c:Course) REQUIRE c.title IS UNIQUE`,
}

// User queries

// created comes from the MERGE itself; _new is set only on the creating
// write and removed before returning.
const createUserCypher = `
MERGE (u:User {username: $username})
ON CREATE SET u._new = true, u.email = $email, u.password_hash = $password_hash, u.created_at = datetime()
WITH u, coalesce(u._new, false) AS created
REMOVE u._new
RETURN created`

const getUserCypher = `
MATCH (u:User {username: $username})
RETURN u.username AS username, u.email AS email`

const passwordHashCypher = `
MATCH (u:User {username: $username})
RETURN u.password_hash AS password_hash`

// Course submission statements, run in order within one transaction

const mergeCourseCypher = `
MERGE (c:Course {title: $course_title})
SET c.description = $course_description,
    c.notional_hours = $notional_hours,
    c.course_topics = $course_topics,
    c.learning_outcomes = $learning_outcomes,
    c.targeted_skills = $targeted_skills,
    c.educational_level = $educational_level,
    c.language = $language,
    c.entry_requirements = $entry_requirements,
    c.required_software = $required_software`

const linkCreatorCypher = `
MATCH (u:User {username: $username}), (c:Course {title: $course_title})
MERGE (u)-[:CREATED]->(c)`

const mergeFacilitatorCypher = `
MERGE (f:Facilitator {name: $facilitator_name, affiliation: $affiliation, email: $email})
SET f.roles = $roles
MERGE (c:Course {title: $course_title})
MERGE (f)-[:FACILITATES]->(c)`

const mergeResourceCypher = `
MERGE (e:EducationalResource {title: $resource_title, url: $resource_url})
SET e.type = $resource_type
MERGE (c:Course {title: $course_title})
MERGE (c)-[:INCLUDES_RESOURCE]->(e)`

const mergeAdditionalCypher = `
MERGE (a:AdditionalResource {url: $additional_url})
SET a.type = $additional_type
MERGE (c:Course {title: $course_title})
MERGE (c)-[:HAS_ADDITIONAL_RESOURCE]->(a)`

// Search queries

const similarCoursesCypher = `
MATCH (c:Course)
WHERE c.title CONTAINS $course_title
OPTIONAL MATCH (c)-[:FACILITATES]-(f:Facilitator)
OPTIONAL MATCH (c)-[:INCLUDES_RESOURCE]->(e:EducationalResource)
RETURN c.title AS course_title,
       c.course_topics AS course_topics,
       collect(DISTINCT f.name) AS facilitators,
       c.educational_level AS educational_level,
       c.language AS language,
       collect(DISTINCT {title: e.title, url: e.url}) AS educational_resources
ORDER BY course_title`

const complementaryCypher = `
MATCH (c:Course)-[:INCLUDES_RESOURCE]->(e:EducationalResource)
WHERE c.title CONTAINS $course_title AND NOT e.title IN $existing_titles
RETURN DISTINCT e.title AS title, e.url AS url`
