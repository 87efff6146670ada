// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package knowledge

import (
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/coursegraph/internal/metrics"
	"github.com/tomtom215/coursegraph/internal/models"
)

const (
	// DefaultSimilarityThreshold drops search candidates scoring below it.
	DefaultSimilarityThreshold = 0.4
	// DefaultSearchLimit caps the number of search results.
	DefaultSearchLimit = 10

	maxGraphProviders = 6
	maxGraphTopics    = 12
)

// Options tunes catalog search. Non-positive values select the defaults.
type Options struct {
	SimilarityThreshold float64
	SearchLimit         int
}

// Catalog answers course queries against a loaded knowledge graph.
type Catalog struct {
	graph     *Graph
	threshold float64
	limit     int
}

// NewCatalog wraps g. A nil graph yields an empty catalog.
func NewCatalog(g *Graph, opts Options) *Catalog {
	if opts.SimilarityThreshold <= 0 {
		opts.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	c := &Catalog{
		graph:     g,
		threshold: opts.SimilarityThreshold,
		limit:     opts.SearchLimit,
	}
	metrics.KnowledgeGraphTriples.Set(float64(c.TripleCount()))
	metrics.KnowledgeGraphCourses.Set(float64(c.CourseCount()))
	return c
}

// Loaded reports whether a non-empty graph backs the catalog.
func (c *Catalog) Loaded() bool {
	return c != nil && c.graph.Len() > 0
}

// TripleCount returns the number of triples in the graph.
func (c *Catalog) TripleCount() int {
	if c == nil {
		return 0
	}
	return c.graph.Len()
}

// CourseCount returns the number of schema:Course subjects.
func (c *Catalog) CourseCount() int {
	if c == nil {
		return 0
	}
	return len(c.courses())
}

// SearchLimit returns the configured default result limit.
func (c *Catalog) SearchLimit() int {
	return c.limit
}

func (c *Catalog) courses() []Term {
	return c.graph.Subjects(rdfType, schemaCourse)
}

// ListCourses returns every course sorted by case-insensitive name.
func (c *Catalog) ListCourses() []models.CourseSummary {
	if !c.Loaded() {
		return []models.CourseSummary{}
	}
	g := c.graph
	courses := c.courses()
	out := make([]models.CourseSummary, 0, len(courses))
	for _, course := range courses {
		out = append(out, models.CourseSummary{
			URI:         course.Value,
			Name:        g.FirstLiteral(course, schemaName),
			URL:         g.FirstLiteral(course, schemaURL),
			Providers:   c.providers(course, false),
			TopicCount:  len(g.Objects(course, schemaTeaches)),
			SkillsCount: len(c.relatedSkillTerms(course)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// CourseDetail resolves a course by IRI (raw or percent-encoded) or by
// exact name and returns its detail view.
func (c *Catalog) CourseDetail(idOrName string) (*models.CourseDetail, bool) {
	if !c.Loaded() || idOrName == "" {
		return nil, false
	}
	course, ok := c.resolve(idOrName)
	if !ok {
		return nil, false
	}

	g := c.graph
	topics, stats := c.topics(course)
	return &models.CourseDetail{
		URI:       course.Value,
		Name:      g.FirstLiteral(course, schemaName),
		URL:       g.FirstLiteral(course, schemaURL),
		Providers: c.providers(course, true),
		Topics:    topics,
		Summary:   stats,
		Skills:    c.relatedSkills(course, true),
	}, true
}

func (c *Catalog) resolve(id string) (Term, bool) {
	g := c.graph
	if !looksLikeURI(id) {
		for _, s := range c.courses() {
			if g.FirstLiteral(s, schemaName) == id {
				return s, true
			}
		}
		return Term{}, false
	}

	variants := uriVariants(id)
	for _, v := range variants {
		for _, cand := range []string{v, normalizeURI(v)} {
			if t := IRI(cand); g.Has(t, rdfType, schemaCourse) {
				return t, true
			}
		}
	}
	for _, s := range c.courses() {
		decoded := unquote(s.Value)
		for _, v := range variants {
			if s.Value == v || decoded == v {
				return s, true
			}
		}
	}
	return Term{}, false
}

func (c *Catalog) providers(course Term, withContact bool) []models.Provider {
	g := c.graph
	out := []models.Provider{}
	seen := make(map[string]struct{})
	for _, pred := range providerPredicates {
		for _, p := range g.Objects(course, pred) {
			if _, dup := seen[p.Value]; dup {
				continue
			}
			seen[p.Value] = struct{}{}
			prov := models.Provider{URI: p.Value, Name: g.nameOf(p), Type: g.providerType(p)}
			if withContact {
				switch prov.Type {
				case models.ProviderOrganization:
					prov.Location = g.FirstLiteral(p, schemaLocation)
				case models.ProviderPerson:
					prov.Email = g.FirstLiteral(p, schemaEmail)
				}
			}
			out = append(out, prov)
		}
	}
	return out
}

func (c *Catalog) topics(course Term) ([]models.Topic, models.CourseStats) {
	g := c.graph
	stats := models.CourseStats{Levels: map[string]int{}}
	topics := []models.Topic{}
	for _, t := range g.Objects(course, schemaTeaches) {
		topic := models.Topic{
			URI:         t.Value,
			Name:        g.nameOf(t),
			Theoretical: g.BoolValue(t, coursesTheoreticalTopic),
			Main:        g.BoolValue(t, coursesMainTopic),
		}
		if raw := g.LevelValue(t); raw != "" {
			topic.EducationalLevel = ShortLevelLabel(raw)
		}
		if topic.Theoretical != nil {
			if *topic.Theoretical {
				stats.TheoreticalCount++
			} else {
				stats.PracticalCount++
			}
		}
		if topic.EducationalLevel != "" {
			stats.Levels[topic.EducationalLevel]++
		}
		topics = append(topics, topic)
	}
	stats.TopicCount = len(topics)
	return topics, stats
}

// relatedSkillTerms returns, in discovery order, the distinct skills
// required by any subject that requires knowledge of or teaches one of the
// course topics.
func (c *Catalog) relatedSkillTerms(course Term) []Term {
	g := c.graph
	var out []Term
	seen := make(map[string]struct{})
	for _, topic := range g.Objects(course, schemaTeaches) {
		for _, pred := range skillSourcePredicates {
			for _, s := range g.Subjects(pred, topic) {
				for _, skill := range g.Objects(s, coursesSkillRequired) {
					if _, dup := seen[skill.Value]; dup {
						continue
					}
					seen[skill.Value] = struct{}{}
					out = append(out, skill)
				}
			}
		}
	}
	return out
}

func (c *Catalog) relatedSkills(course Term, withLevel bool) []models.Skill {
	g := c.graph
	terms := c.relatedSkillTerms(course)
	out := make([]models.Skill, 0, len(terms))
	for _, t := range terms {
		skill := models.Skill{URI: t.Value, Name: g.nameOf(t)}
		if withLevel {
			skill.EducationalLevel = g.FirstLiteral(t, schemaEducationalLevel)
		}
		out = append(out, skill)
	}
	return out
}

// Summarize builds the search view of a course including a small network
// of provider, topic and skill nodes.
func (c *Catalog) Summarize(course Term) models.SearchResult {
	g := c.graph
	name := g.FirstLiteral(course, schemaName)
	providers := c.providers(course, false)
	topics, stats := c.topics(course)
	skills := c.relatedSkills(course, false)

	label := name
	if label == "" {
		label = models.GroupCourse
	}
	graph := models.CourseGraph{
		Nodes: []models.GraphNode{{ID: course.Value, Label: label, Group: models.GroupCourse}},
		Edges: []models.GraphEdge{},
	}
	ids := map[string]struct{}{course.Value: {}}
	addNode := func(n models.GraphNode) {
		ids[n.ID] = struct{}{}
		graph.Nodes = append(graph.Nodes, n)
	}
	addEdge := func(to, label string) {
		graph.Edges = append(graph.Edges, models.GraphEdge{From: course.Value, To: to, Label: label})
	}

	for i, p := range providers {
		if i == maxGraphProviders {
			break
		}
		group := p.Type
		if group == "" {
			group = models.GroupProvider
		}
		addNode(models.GraphNode{ID: p.URI, Label: p.Name, Group: group})
		addEdge(p.URI, "provider")
	}
	for i, t := range topics {
		if i == maxGraphTopics {
			break
		}
		addNode(models.GraphNode{ID: t.URI, Label: t.Name, Group: models.GroupTopic})
		addEdge(t.URI, "teaches")
	}
	for _, s := range skills {
		if _, exists := ids[s.URI]; !exists {
			addNode(models.GraphNode{ID: s.URI, Label: s.Name, Group: models.GroupSkill})
		}
		addEdge(s.URI, "skill")
	}

	for _, n := range graph.Nodes {
		if n.Group == models.GroupSkill {
			stats.SkillsCount++
		}
	}

	return models.SearchResult{
		URI:       course.Value,
		Name:      name,
		URL:       g.FirstLiteral(course, schemaURL),
		Providers: providers,
		Topics:    topics,
		Summary:   stats,
		Skills:    skills,
		Graph:     graph,
	}
}

// SearchSimilar ranks courses by similarity of the title query to course
// names, or of the description query to course descriptions when no title
// is given. Results below the similarity threshold are dropped; limit <= 0
// uses the configured default.
func (c *Catalog) SearchSimilar(title, description string, limit int) []models.SearchResult {
	if c == nil {
		return []models.SearchResult{}
	}
	start := time.Now()
	results := c.searchSimilar(title, description, limit)
	metrics.RecordCatalogSearch(time.Since(start), len(results))
	return results
}

func (c *Catalog) searchSimilar(title, description string, limit int) []models.SearchResult {
	if !c.Loaded() {
		return []models.SearchResult{}
	}
	if limit <= 0 {
		limit = c.limit
	}
	query := title
	if query == "" {
		query = description
	}
	if query == "" {
		return []models.SearchResult{}
	}

	g := c.graph
	results := []models.SearchResult{}
	for _, course := range c.courses() {
		name := g.FirstLiteral(course, schemaName)
		desc := g.FirstLiteral(course, schemaDescription)

		var score float64
		if title != "" {
			score = StringSimilarity(query, name)
		} else {
			score = StringSimilarity(query, desc)
		}
		if score < c.threshold {
			continue
		}

		res := c.Summarize(course)
		res.Match = models.SearchMatch{
			Title:              name,
			DescriptionPresent: desc != "",
			Score:              round3(score),
		}
		results = append(results, res)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Match.Score > results[j].Match.Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
