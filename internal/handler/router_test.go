package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/metrics"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

type testServer struct {
	*httptest.Server
	repo *repository.MemoryContactRepository
}

func newTestServer(t *testing.T, rules service.Rules) *testServer {
	t.Helper()
	repo := repository.NewMemoryContactRepository()
	m := metrics.New(prometheus.NewRegistry())
	router := NewRouter(RouterConfig{
		Handler:  New(repo, false),
		Contacts: NewContactHandler(service.NewContactService(repo, rules), m),
		Metrics:  m,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, repo: repo}
}

func (s *testServer) post(t *testing.T, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(s.URL+"/api/contact", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/contact: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (s *testServer) list(t *testing.T) []map[string]any {
	t.Helper()
	resp, err := http.Get(s.URL + "/api/contacts")
	if err != nil {
		t.Fatalf("GET /api/contacts: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Contacts []map[string]any `json:"contacts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out.Contacts
}

const testUserBody = `{"name":"Test User","email":"test@example.com","subject":"Test Subject","message":"hello"}`

func TestRouter_SubmitAndList(t *testing.T) {
	srv := newTestServer(t, service.Rules{})

	before := time.Now().UTC().Truncate(time.Microsecond)
	resp, body := srv.post(t, testUserBody)
	after := time.Now().UTC()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, body)
	}
	if len(body) != 7 {
		t.Errorf("expected seven fields, got %v", body)
	}
	if body["status"] != "new" || body["name"] != "Test User" || body["message"] != "hello" {
		t.Errorf("unexpected body %v", body)
	}
	if id, _ := body["id"].(string); id == "" {
		t.Error("expected non-empty id")
	}
	created, err := time.Parse(time.RFC3339Nano, body["created_at"].(string))
	if err != nil {
		t.Fatalf("created_at: %v", err)
	}
	if created.Before(before) || created.After(after) {
		t.Errorf("created_at %v outside [%v, %v]", created, before, after)
	}

	contacts := srv.list(t)
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	if _, ok := contacts[0]["id"]; ok {
		t.Error("list must omit id")
	}
	if contacts[0]["created_at"] != body["created_at"] {
		t.Error("list must return the stored created_at")
	}
}

func TestRouter_InvalidEmailPersistsNothing(t *testing.T) {
	srv := newTestServer(t, service.Rules{})

	resp, _ := srv.post(t, `{"name":"","email":"invalid-email","subject":"","message":""}`)

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if n := len(srv.list(t)); n != 0 {
		t.Errorf("expected no stored contacts, got %d", n)
	}
	if ids := srv.repo.IDs(); len(ids) != 0 {
		t.Errorf("expected empty store, got ids %v", ids)
	}
}

func TestRouter_DuplicateSubmissionsAreDistinct(t *testing.T) {
	srv := newTestServer(t, service.Rules{})

	_, a := srv.post(t, testUserBody)
	_, b := srv.post(t, testUserBody)

	if a["id"] == b["id"] {
		t.Errorf("expected distinct ids, got %v twice", a["id"])
	}
	if n := len(srv.list(t)); n != 2 {
		t.Errorf("expected 2 stored contacts, got %d", n)
	}
}

func TestRouter_RequireNonEmpty(t *testing.T) {
	srv := newTestServer(t, service.Rules{RequireNonEmpty: true})

	resp, _ := srv.post(t, `{"name":"","email":"a@example.com","subject":"s","message":"m"}`)

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 with non-empty rule, got %d", resp.StatusCode)
	}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t, service.Rules{})

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on responses")
	}
}

func TestRouter_CORSAllowsAnyOrigin(t *testing.T) {
	srv := newTestServer(t, service.Rules{})

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/contact", nil)
	req.Header.Set("Origin", "https://portfolio.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin=*, got %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "POST" {
		t.Errorf("expected POST to be allowed, got %q", got)
	}

	get, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	get.Header.Set("Origin", "https://anywhere.example")
	resp2, err := http.DefaultClient.Do(get)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected * on simple request, got %q", got)
	}
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	srv := newTestServer(t, service.Rules{})

	resp, err := http.Get(srv.URL + "/api/unknown")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/contact")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t, service.Rules{})
	srv.post(t, testUserBody)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `contact_submissions_total{outcome="accepted"} 1`) {
		t.Errorf("expected accepted submission in metrics, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `route="/api/contact"`) {
		t.Error("expected request metrics labelled with the route pattern")
	}
}

func TestRouter_HealthWithUnreachableMongo(t *testing.T) {
	repo, closeStore, err := repository.Open(context.Background(), config.StoreConfig{
		Driver:   config.DriverMongo,
		MongoURL: "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=300",
		DBName:   "contact_api",
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = closeStore(context.Background()) })

	router := NewRouter(RouterConfig{
		Handler:  New(repo, false),
		Contacts: NewContactHandler(service.NewContactService(repo, service.Rules{}), nil),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 while the store is down, got %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/contact", "application/json", strings.NewReader(testUserBody))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500 for a submission the store cannot take, got %d", resp.StatusCode)
	}
}
