package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/api/handler"
	"github.com/eventtune/web/internal/infrastructure/backend"
	"github.com/eventtune/web/internal/infrastructure/db/memory"
)

// fakeAPI is a minimal stand-in for the REST backend that records calls.
type fakeAPI struct {
	mu     sync.Mutex
	calls  map[string]int
	status string
	auth   []string
	token  string
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := r.Method + " " + r.URL.Path
	f.calls[key]++
	f.auth = append(f.auth, r.Header.Get("Authorization"))

	w.Header().Set("Content-Type", "application/json")
	switch key {
	case "POST /auth/login":
		_, _ = io.WriteString(w, `{"access_token":"`+f.token+`","token_type":"bearer"}`)
	case "GET /admin/applications":
		_, _ = io.WriteString(w, `[{"_id":"app1","user_id":"u2","email":"artist@x.io","stage_name":"Nova","genres":["Electronic"],"bio":"b","portfolio_links":[],"status":"`+f.status+`","created_at":"2024-01-02T03:04:05.123456","updated_at":"2024-01-02T03:04:05"}]`)
	case "GET /admin/stats":
		_, _ = io.WriteString(w, `{"total_users":3,"total_artists":1,"pending_applications":1,"approved_applications":0,"rejected_applications":0}`)
	case "POST /admin/applications/app1/approve":
		f.status = "approved"
		_, _ = io.WriteString(w, `{"message":"Application approved successfully"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not Found"}`)
	}
}

func adminToken(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin1", "email": "admin@x.io", "role": 0, "exp": exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newTestServer(t *testing.T, api *fakeAPI) (*httptest.Server, *http.Client) {
	t.Helper()
	backendSrv := httptest.NewServer(api)
	t.Cleanup(backendSrv.Close)

	transport, err := backend.NewTransport(backend.Config{BaseURL: backendSrv.URL, Timeout: 2 * time.Second}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTransport: %v", err)
	}
	store := memory.NewTokenStore(0)
	reg := prometheus.NewRegistry()

	router := NewRouter(Deps{
		Backend:    transport,
		Store:      store,
		Checks:     map[string]handler.Check{"memory": store.Ping},
		Log:        zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, _ := cookiejar.New(nil)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func TestRouter_AdminLoginApproveFlow(t *testing.T) {
	api := &fakeAPI{calls: map[string]int{}, status: "pending", token: adminToken(t, time.Now().Add(time.Hour))}
	srv, client := newTestServer(t, api)

	// Guard before login.
	resp, err := client.Get(srv.URL + "/admin/dashboard")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp, err = client.PostForm(srv.URL+"/login", url.Values{"email": {"admin@x.io"}, "password": {"secret"}})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/admin/dashboard" {
		t.Fatalf("expected redirect to admin dashboard, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp, err = client.Get(srv.URL + "/admin/dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "/admin/applications/app1/approve") {
		t.Fatalf("expected dashboard with pending application, got %d", resp.StatusCode)
	}
	if n := api.count("GET /admin/applications"); n != 1 {
		t.Fatalf("expected one list call on mount, got %d", n)
	}

	resp, err = client.PostForm(srv.URL+"/admin/applications/app1/approve", url.Values{})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	if n := api.count("POST /admin/applications/app1/approve"); n != 1 {
		t.Fatalf("expected one approve call, got %d", n)
	}
	if n := api.count("GET /admin/applications"); n != 2 {
		t.Fatalf("expected exactly one refetch after approve, got %d list calls", n)
	}
	if strings.Contains(string(body), "/admin/applications/app1/approve") {
		t.Fatal("expected approve control gone after approval")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if api.auth[0] != "" {
		t.Fatalf("expected login without bearer header, got %q", api.auth[0])
	}
	if api.auth[len(api.auth)-1] != "Bearer "+api.token {
		t.Fatalf("expected bearer header on later calls, got %q", api.auth[len(api.auth)-1])
	}
}

func TestRouter_SessionAPIAndLogout(t *testing.T) {
	api := &fakeAPI{calls: map[string]int{}, status: "pending", token: adminToken(t, time.Now().Add(time.Hour))}
	srv, client := newTestServer(t, api)

	resp, err := client.PostForm(srv.URL+"/login", url.Values{"email": {"admin@x.io"}, "password": {"secret"}})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()

	var session struct {
		Authenticated bool   `json:"authenticated"`
		Role          *int   `json:"role"`
		DashboardPath string `json:"dashboard_path"`
	}
	resp, err = client.Get(srv.URL + "/api/session")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	_ = json.NewDecoder(resp.Body).Decode(&session)
	resp.Body.Close()
	if !session.Authenticated || session.Role == nil || *session.Role != 0 || session.DashboardPath != "/admin/dashboard" {
		t.Fatalf("unexpected session %+v", session)
	}

	resp, err = client.PostForm(srv.URL+"/logout", url.Values{})
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	resp.Body.Close()

	resp, err = client.Get(srv.URL + "/admin/dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login after logout, got %d", resp.StatusCode)
	}
}

func TestRouter_ExpiredTokenTreatedAsSignedOut(t *testing.T) {
	api := &fakeAPI{calls: map[string]int{}, token: adminToken(t, time.Now().Add(-time.Minute))}
	srv, client := newTestServer(t, api)

	resp, err := client.PostForm(srv.URL+"/login", url.Values{"email": {"admin@x.io"}, "password": {"secret"}})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	resp.Body.Close()

	resp, err = client.Get(srv.URL + "/admin/dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login for expired credential, got %q", resp.Header.Get("Location"))
	}
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	srv, client := newTestServer(t, &fakeAPI{calls: map[string]int{}})

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
		for _, c := range resp.Cookies() {
			if c.Name == "eventtune_session" {
				t.Fatalf("%s: operational endpoint must not issue a session", path)
			}
		}
	}
}

func TestRouter_UnknownAPIRouteIsJSON(t *testing.T) {
	srv, client := newTestServer(t, &fakeAPI{calls: map[string]int{}})

	resp, err := client.Get(srv.URL + "/api/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON error, got %q", ct)
	}
}
