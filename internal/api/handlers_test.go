// Coursegraph - Course Metadata Authoring and Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursegraph

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/coursegraph/internal/audit"
	"github.com/tomtom215/coursegraph/internal/auth"
	"github.com/tomtom215/coursegraph/internal/config"
	"github.com/tomtom215/coursegraph/internal/database"
	"github.com/tomtom215/coursegraph/internal/knowledge"
	"github.com/tomtom215/coursegraph/internal/models"
)

const (
	testdataNT = "../knowledge/testdata/courses.nt"
	testSecret = "api-test-secret-with-at-least-32-chars"
)

type fakeStore struct {
	mu        sync.Mutex
	pingErr   error
	storeErr  error
	searchErr error
	stored    []string // "username:title"
	similar   []models.StoredCourseMatch
	links     []models.ResourceLink
	excluded  []string
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) StoreCourse(_ context.Context, username string, sub *models.CourseSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.storeErr != nil {
		return s.storeErr
	}
	s.stored = append(s.stored, username+":"+sub.Course.Title)
	return nil
}

func (s *fakeStore) SearchSimilarCourses(context.Context, string) ([]models.StoredCourseMatch, error) {
	return s.similar, s.searchErr
}

func (s *fakeStore) FindComplementaryContent(_ context.Context, _ string, existing []string) ([]models.ResourceLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excluded = existing
	return s.links, s.searchErr
}

type memoryUsers struct {
	mu     sync.Mutex
	hashes map[string]string
}

func (u *memoryUsers) CreateUser(_ context.Context, username, _, hash string) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.hashes[username]; ok {
		return false, nil
	}
	u.hashes[username] = hash
	return true, nil
}

func (u *memoryUsers) PasswordHash(_ context.Context, username string) (string, bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	h, ok := u.hashes[username]
	return h, ok, nil
}

type testAPI struct {
	handler http.Handler
	store   *fakeStore
	jwt     *auth.JWTManager
	users   *memoryUsers
	audit   *audit.Logger
}

type apiOptions struct {
	noStore   bool
	noGraph   bool
	rdfFile   string
	storeFunc func(*fakeStore)
}

func newTestAPI(t *testing.T, opts apiOptions) *testAPI {
	t.Helper()

	var catalog *knowledge.Catalog
	if !opts.noGraph {
		g, err := knowledge.LoadFile(testdataNT)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		catalog = knowledge.NewCatalog(g, knowledge.Options{})
	}

	rdfFile := opts.rdfFile
	if rdfFile == "" {
		rdfFile = testdataNT
	}
	cfg := &config.Config{
		Knowledge: config.KnowledgeConfig{RDFFile: rdfFile},
		Neo4j:     config.Neo4jConfig{URI: "bolt://localhost:7687", Username: "neo4j", Password: "pw"},
	}

	jwtManager, err := auth.NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	users := &memoryUsers{hashes: map[string]string{}}
	store := &fakeStore{}
	if opts.storeFunc != nil {
		opts.storeFunc(store)
	}

	auditLog := audit.NewLogger(audit.NewMemoryStore(0), nil)
	hc := HandlerConfig{
		Config:   cfg,
		Catalog:  catalog,
		Accounts: auth.NewAccounts(users),
		JWT:      jwtManager,
		Audit:    auditLog,
	}
	if !opts.noStore {
		hc.Store = store
	}

	cm := DefaultChiMiddlewareConfig()
	cm.RateLimitDisabled = true
	router := NewRouter(NewHandler(hc), NewChiMiddleware(cm), auth.NewTokenMiddleware(jwtManager, nil), nil)
	return &testAPI{handler: router.SetupChi(), store: store, jwt: jwtManager, users: users, audit: auditLog}
}

func (a *testAPI) do(t *testing.T, method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) token(t *testing.T, username string) string {
	t.Helper()
	tok, _, err := a.jwt.GenerateToken(username)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return tok
}

// flushAudit writes every queued audit event to the store.
func (a *testAPI) flushAudit(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.audit.Serve(ctx) }()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit logger did not drain")
	}
}

// decodeData unmarshals the envelope's data field into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) APIResponse {
	t.Helper()
	var raw struct {
		APIResponse
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	if dst != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, dst); err != nil {
			t.Fatalf("unmarshal data %s: %v", raw.Data, err)
		}
	}
	return raw.APIResponse
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, status, rec.Body.String())
	}
}

func wantErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	wantStatus(t, rec, status)
	resp := decodeData(t, rec, nil)
	if resp.Error == nil || resp.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", resp.Error, code)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		opts          apiOptions
		wantStatus    string
		wantFile      bool
		wantConnected bool
		wantNeo4jErr  bool
	}{
		{"healthy", apiOptions{}, models.StatusOK, true, true, false},
		{"rdf file missing", apiOptions{rdfFile: "does/not/exist.nt", noGraph: true}, models.StatusDegraded, false, true, false},
		{"neo4j ping fails", apiOptions{storeFunc: func(s *fakeStore) { s.pingErr = errors.New("refused") }}, models.StatusOK, true, false, true},
		{"no store", apiOptions{noStore: true}, models.StatusOK, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := newTestAPI(t, tt.opts)
			for _, path := range []string{"/status", "/api/v1/status"} {
				rec := api.do(t, http.MethodGet, path, nil, "")
				wantStatus(t, rec, http.StatusOK)

				report := decodeStatus(t, path, rec)
				if report.Status != tt.wantStatus {
					t.Errorf("%s: status = %q, want %q", path, report.Status, tt.wantStatus)
				}
				if report.RDF.FileExists != tt.wantFile {
					t.Errorf("%s: file_exists = %v", path, report.RDF.FileExists)
				}
				if !report.Neo4j.Configured {
					t.Errorf("%s: neo4j not configured", path)
				}
				if report.Neo4j.Connected != tt.wantConnected {
					t.Errorf("%s: connected = %v", path, report.Neo4j.Connected)
				}
				if (report.Neo4j.Error != "") != tt.wantNeo4jErr {
					t.Errorf("%s: neo4j error = %q", path, report.Neo4j.Error)
				}
			}
		})
	}
}

// decodeStatus reads the bare report from /status and the enveloped one
// from /api/v1/status.
func decodeStatus(t *testing.T, path string, rec *httptest.ResponseRecorder) models.StatusReport {
	t.Helper()
	var report models.StatusReport
	if path != "/status" {
		decodeData(t, rec, &report)
		return report
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &top); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	for _, key := range []string{"status", "rdf", "neo4j"} {
		if _, ok := top[key]; !ok {
			t.Errorf("/status body has no top-level %q key: %s", key, rec.Body.String())
		}
	}
	if _, wrapped := top["success"]; wrapped {
		t.Errorf("/status body is wrapped in the API envelope: %s", rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	return report
}

func TestStatus_Counts(t *testing.T) {
	t.Parallel()
	rec := newTestAPI(t, apiOptions{}).do(t, http.MethodGet, "/status", nil, "")
	report := decodeStatus(t, "/status", rec)
	if report.RDF.CourseCount != 3 {
		t.Errorf("course_count = %d, want 3", report.RDF.CourseCount)
	}
	if report.RDF.TripleCount == 0 {
		t.Error("triple_count = 0")
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	wantStatus(t, newTestAPI(t, apiOptions{}).do(t, http.MethodGet, "/api/v1/health/live", nil, ""), http.StatusOK)
	wantStatus(t, newTestAPI(t, apiOptions{noGraph: true}).do(t, http.MethodGet, "/api/v1/health/live", nil, ""), http.StatusOK)

	wantStatus(t, newTestAPI(t, apiOptions{}).do(t, http.MethodGet, "/api/v1/health/ready", nil, ""), http.StatusOK)

	rec := newTestAPI(t, apiOptions{noGraph: true}).do(t, http.MethodGet, "/api/v1/health/ready", nil, "")
	wantStatus(t, rec, http.StatusServiceUnavailable)
	var data map[string]interface{}
	if resp := decodeData(t, rec, &data); resp.Success {
		t.Error("success = true for unready service")
	}
	if data["ready"] != false {
		t.Errorf("ready = %v", data["ready"])
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})

	creds := map[string]string{"username": "dana", "email": "dana@example.org", "password": "s3cret"}
	wantStatus(t, api.do(t, http.MethodPost, "/api/v1/auth/register", creds, ""), http.StatusCreated)
	wantErrorCode(t, api.do(t, http.MethodPost, "/api/v1/auth/register", creds, ""), http.StatusConflict, ErrCodeConflict)

	rec := api.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "dana", "password": "s3cret"}, "")
	wantStatus(t, rec, http.StatusOK)
	var tok models.TokenResponse
	decodeData(t, rec, &tok)
	if tok.Token == "" || tok.Username != "dana" || tok.ExpiresAt <= time.Now().Unix() {
		t.Fatalf("token response = %+v", tok)
	}
	claims, err := api.jwt.ValidateToken(tok.Token)
	if err != nil || claims.Username != "dana" {
		t.Fatalf("issued token invalid: %v", err)
	}

	wantErrorCode(t, api.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "dana", "password": "wrong"}, ""), http.StatusUnauthorized, ErrCodeUnauthorized)
	wantErrorCode(t, api.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "nobody", "password": "x"}, ""), http.StatusUnauthorized, ErrCodeUnauthorized)
}

func TestRegister_BadInput(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})

	tests := []struct {
		name string
		body interface{}
		code string
	}{
		{"malformed json", "{not json", ErrCodeBadRequest},
		{"empty body", "", ErrCodeBadRequest},
		{"missing password", map[string]string{"username": "x"}, "VALIDATION_ERROR"},
		{"bad email", map[string]string{"username": "x", "password": "y", "email": "nope"}, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wantErrorCode(t, api.do(t, http.MethodPost, "/api/v1/auth/register", tt.body, ""), http.StatusBadRequest, tt.code)
		})
	}
}

func TestCatalogCourses_Pagination(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})

	rec := api.do(t, http.MethodGet, "/api/v1/catalog/courses?limit=2", nil, "")
	wantStatus(t, rec, http.StatusOK)
	var page []models.CourseSummary
	resp := decodeData(t, rec, &page)
	if len(page) != 2 {
		t.Fatalf("page size = %d, want 2", len(page))
	}
	if resp.Meta == nil || resp.Meta.Pagination == nil {
		t.Fatalf("missing pagination meta: %+v", resp)
	}
	p := resp.Meta.Pagination
	if p.Total != 3 || !p.HasMore {
		t.Fatalf("pagination = %+v", p)
	}
	if page[0].Name != "Advanced Machine Learning" {
		t.Errorf("first course = %q, want sorted by name", page[0].Name)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/catalog/courses?limit=2&offset=2", nil, "")
	resp = decodeData(t, rec, &page)
	if len(page) != 1 || resp.Meta.Pagination.HasMore {
		t.Fatalf("second page = %d items, pagination %+v", len(page), resp.Meta.Pagination)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/catalog/courses?offset=50", nil, "")
	decodeData(t, rec, &page)
	if len(page) != 0 {
		t.Errorf("offset past end returned %d items", len(page))
	}

	wantErrorCode(t, api.do(t, http.MethodGet, "/api/v1/catalog/courses?limit=1000", nil, ""), http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestCatalogCourses_NotLoaded(t *testing.T) {
	t.Parallel()
	rec := newTestAPI(t, apiOptions{noGraph: true}).do(t, http.MethodGet, "/api/v1/catalog/courses", nil, "")
	wantStatus(t, rec, http.StatusOK)
	var page []models.CourseSummary
	decodeData(t, rec, &page)
	if page == nil || len(page) != 0 {
		t.Errorf("page = %#v, want empty list", page)
	}
}

func TestCatalogCourseDetail(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})

	wantErrorCode(t, api.do(t, http.MethodGet, "/api/v1/catalog/courses/detail", nil, ""), http.StatusBadRequest, ErrCodeBadRequest)
	wantErrorCode(t, api.do(t, http.MethodGet, "/api/v1/catalog/courses/detail?id=nope", nil, ""), http.StatusNotFound, ErrCodeNotFound)

	id := url.QueryEscape("http://example.org/course/intro-data-science")
	rec := api.do(t, http.MethodGet, "/api/v1/catalog/courses/detail?id="+id, nil, "")
	wantStatus(t, rec, http.StatusOK)
	var detail models.CourseDetail
	decodeData(t, rec, &detail)
	if detail.Name != "Introduction to Data Science" || len(detail.Topics) != 3 {
		t.Errorf("detail = %+v", detail)
	}
}

func TestCatalogSearch(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})

	wantErrorCode(t, api.do(t, http.MethodGet, "/api/v1/catalog/search", nil, ""), http.StatusBadRequest, ErrCodeBadRequest)

	rec := api.do(t, http.MethodGet, "/api/v1/catalog/search?title="+url.QueryEscape("data science"), nil, "")
	wantStatus(t, rec, http.StatusOK)
	var results []models.SearchResult
	decodeData(t, rec, &results)
	if len(results) == 0 || results[0].Name != "Introduction to Data Science" {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Match.Score != 0.85 {
		t.Errorf("score = %v, want 0.85", results[0].Match.Score)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/catalog/search?description="+url.QueryEscape("learn data wrangling and statistics.")+"&limit=1", nil, "")
	decodeData(t, rec, &results)
	if len(results) != 1 || !results[0].Match.DescriptionPresent {
		t.Fatalf("description search = %+v", results)
	}

	unloaded := newTestAPI(t, apiOptions{noGraph: true})
	wantErrorCode(t, unloaded.do(t, http.MethodGet, "/api/v1/catalog/search?title=x", nil, ""), http.StatusServiceUnavailable, ErrCodeServiceUnavailable)
}

func TestCourses_RequireAuth(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})

	tests := []struct {
		method string
		path   string
		token  string
	}{
		{http.MethodPost, "/api/v1/courses", ""},
		{http.MethodGet, "/api/v1/courses/similar?title=x", ""},
		{http.MethodGet, "/api/v1/courses/complementary?title=x", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			t.Parallel()
			wantErrorCode(t, api.do(t, tt.method, tt.path, nil, tt.token), http.StatusUnauthorized, ErrCodeUnauthorized)
		})
	}
}

func TestSubmitCourse(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})
	token := api.token(t, "erin")

	sub := models.CourseSubmission{
		Course: models.CourseData{Title: "  Graph Databases  ", Description: "Cypher"},
		EducationalResources: []models.EducationalResource{
			{Title: "Slides", URL: "https://example.org/slides"},
		},
	}
	rec := api.do(t, http.MethodPost, "/api/v1/courses", sub, token)
	wantStatus(t, rec, http.StatusCreated)

	var result models.SubmissionResult
	decodeData(t, rec, &result)
	if !result.Stored || result.Title != "Graph Databases" {
		t.Errorf("result = %+v", result)
	}
	if len(result.MissingFields) == 0 || result.MissingFields[0] != "Notional Hours" {
		t.Errorf("missing_fields = %v", result.MissingFields)
	}
	if got := api.store.stored; len(got) != 1 || got[0] != "erin:Graph Databases" {
		t.Errorf("stored = %v", got)
	}
}

func TestSubmitCourse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   apiOptions
		body   interface{}
		status int
		code   string
	}{
		{"missing title", apiOptions{}, models.CourseSubmission{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"blank title", apiOptions{}, models.CourseSubmission{Course: models.CourseData{Title: "   "}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad facilitator email", apiOptions{}, models.CourseSubmission{
			Course:       models.CourseData{Title: "T"},
			Facilitators: []models.Facilitator{{Name: "A", Email: "nope"}},
		}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed", apiOptions{}, "[", http.StatusBadRequest, ErrCodeBadRequest},
		{"no store", apiOptions{noStore: true}, models.CourseSubmission{Course: models.CourseData{Title: "T"}}, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"circuit open", apiOptions{storeFunc: func(s *fakeStore) {
			s.storeErr = fmt.Errorf("%w: circuit breaker is open", database.ErrUnavailable)
		}}, models.CourseSubmission{Course: models.CourseData{Title: "T"}}, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"database failure", apiOptions{storeFunc: func(s *fakeStore) {
			s.storeErr = errors.New("neo4j op: boom")
		}}, models.CourseSubmission{Course: models.CourseData{Title: "T"}}, http.StatusInternalServerError, ErrCodeDatabaseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			api := newTestAPI(t, tt.opts)
			rec := api.do(t, http.MethodPost, "/api/v1/courses", tt.body, api.token(t, "erin"))
			wantErrorCode(t, rec, tt.status, tt.code)
		})
	}
}

func TestSimilarCourses(t *testing.T) {
	t.Parallel()
	match := models.StoredCourseMatch{Title: "Graph Databases", Facilitators: []string{"Ann"}}
	api := newTestAPI(t, apiOptions{storeFunc: func(s *fakeStore) { s.similar = []models.StoredCourseMatch{match} }})
	token := api.token(t, "erin")

	wantErrorCode(t, api.do(t, http.MethodGet, "/api/v1/courses/similar", nil, token), http.StatusBadRequest, ErrCodeBadRequest)

	rec := api.do(t, http.MethodGet, "/api/v1/courses/similar?title=graph", nil, token)
	wantStatus(t, rec, http.StatusOK)
	var got []models.StoredCourseMatch
	decodeData(t, rec, &got)
	if len(got) != 1 || got[0].Title != "Graph Databases" {
		t.Errorf("matches = %+v", got)
	}
}

func TestComplementaryContent(t *testing.T) {
	t.Parallel()
	links := []models.ResourceLink{{Title: "Notebook", URL: "https://example.org/nb"}}
	api := newTestAPI(t, apiOptions{storeFunc: func(s *fakeStore) { s.links = links }})

	rec := api.do(t, http.MethodGet, "/api/v1/courses/complementary?title=graph&exclude=Slides,%20,Video", nil, api.token(t, "erin"))
	wantStatus(t, rec, http.StatusOK)
	var got []models.ResourceLink
	decodeData(t, rec, &got)
	if len(got) != 1 || got[0].Title != "Notebook" {
		t.Errorf("links = %+v", got)
	}
	if strings.Join(api.store.excluded, "|") != "Slides|Video" {
		t.Errorf("excluded = %v", api.store.excluded)
	}
}

func TestUnknownAPIPath(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})
	wantErrorCode(t, api.do(t, http.MethodGet, "/api/v1/nope", nil, ""), http.StatusNotFound, ErrCodeNotFound)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})
	api.do(t, http.MethodGet, "/api/v1/health/live", nil, "")

	rec := api.do(t, http.MethodGet, "/metrics", nil, "")
	wantStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/courses/detail", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") != "trace-42" {
		t.Errorf("X-Request-ID = %q", rec.Header().Get("X-Request-ID"))
	}
	if resp := decodeData(t, rec, nil); resp.Error == nil || resp.Error.RequestID != "trace-42" {
		t.Errorf("error = %+v", resp.Error)
	}
}

func TestAccountActivity(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t, apiOptions{})

	creds := map[string]string{"username": "gail", "password": "pw"}
	wantStatus(t, api.do(t, http.MethodPost, "/api/v1/auth/register", creds, ""), http.StatusCreated)
	wantStatus(t, api.do(t, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "gail", "password": "bad"}, ""), http.StatusUnauthorized)
	wantStatus(t, api.do(t, http.MethodPost, "/api/v1/auth/login", creds, ""), http.StatusOK)
	token := api.token(t, "gail")
	wantStatus(t, api.do(t, http.MethodPost, "/api/v1/courses",
		models.CourseSubmission{Course: models.CourseData{Title: "Audit Basics"}}, token), http.StatusCreated)
	wantStatus(t, api.do(t, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"username": "hank", "password": "pw"}, ""), http.StatusCreated)
	api.flushAudit(t)

	wantErrorCode(t, api.do(t, http.MethodGet, "/api/v1/account/activity", nil, ""), http.StatusUnauthorized, ErrCodeUnauthorized)

	rec := api.do(t, http.MethodGet, "/api/v1/account/activity?limit=2", nil, token)
	wantStatus(t, rec, http.StatusOK)
	var events []audit.Event
	resp := decodeData(t, rec, &events)

	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Type != audit.EventTypeCourseSubmitted || events[1].Type != audit.EventTypeAuthSuccess {
		t.Errorf("event types = %s, %s", events[0].Type, events[1].Type)
	}
	if events[0].Source.Channel != "api" || events[1].Actor.AuthMethod != auth.MethodToken {
		t.Errorf("unexpected event details: %+v", events)
	}
	if resp.Meta == nil || resp.Meta.Pagination == nil {
		t.Fatalf("missing pagination meta: %+v", resp)
	}
	p := resp.Meta.Pagination
	if p.Total != 4 || p.Count != 2 || !p.HasMore {
		t.Errorf("pagination = %+v, want total 4, count 2, has_more", p)
	}

	rec = api.do(t, http.MethodGet, "/api/v1/account/activity?offset=3", nil, token)
	wantStatus(t, rec, http.StatusOK)
	decodeData(t, rec, &events)
	if len(events) != 1 || events[0].Type != audit.EventTypeUserCreated {
		t.Errorf("oldest event = %+v", events)
	}

	wantErrorCode(t, api.do(t, http.MethodGet, "/api/v1/account/activity?limit=0", nil, token),
		http.StatusBadRequest, "VALIDATION_ERROR")
}
