package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/v4tech/servicedesk/internal/api/handler"
	"github.com/v4tech/servicedesk/internal/api/middleware"
	"github.com/v4tech/servicedesk/internal/core/domain"
	"github.com/v4tech/servicedesk/internal/core/service"
	"github.com/v4tech/servicedesk/internal/infrastructure/db/memory"
	"github.com/v4tech/servicedesk/internal/infrastructure/oracle"
)

type testServer struct {
	t        *testing.T
	e        *echo.Echo
	sessions *memory.Collection[domain.Session]
}

// newTestServer wires the full router over in-memory stores. The identity
// oracle is an httptest server accepting the session id "good-session".
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()

	oracleSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Session-ID") != "good-session" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"id":"g-1","email":"gina@example.com","name":"Gina","session_token":"oracle-token"}`)
	}))
	t.Cleanup(oracleSrv.Close)

	sessions := memory.NewCollection[domain.Session]("session_token")
	identities := memory.NewCollection[domain.Identity]()
	requests := memory.NewCollection[domain.ServiceRequest]()
	reviews := memory.NewCollection[domain.Review]()
	complaints := memory.NewCollection[domain.Complaint]("complaint_id")
	contact := memory.NewCollection[domain.ContactMessage]()

	auth, err := service.NewAuthService(service.NewSessionStore(sessions), identities,
		oracle.NewClient(oracleSrv.URL, oracleSrv.Client(), log),
		service.AuthConfig{AdminUser: "admin", AdminPass: "s3cret", BcryptCost: bcrypt.MinCost}, log)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}

	e := NewRouter(Deps{
		Auth:            auth,
		ServiceRequests: service.NewServiceRequestService(requests, log),
		Reviews:         service.NewReviewService(reviews, log),
		Complaints:      service.NewComplaintService(complaints, log),
		Contact:         service.NewContactService(contact, log),
		Stats: service.NewStatsService(service.StatsStores{
			ServiceRequests: requests,
			Reviews:         reviews,
			Complaints:      complaints,
			Contact:         contact,
		}, nil, log),
	}, Options{
		Cookie: handler.CookieConfig{Secure: true, MaxAge: auth.SessionTTL()},
	}, log)

	return &testServer{t: t, e: e, sessions: sessions}
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login() string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/local-login", `{"username":"admin","password":"s3cret"}`, "")
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	s.t.Fatalf("login did not set a session cookie")
	return ""
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestRouter_LocalLoginMeLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	sess, err := service.NewSessionStore(s.sessions).FindByToken(t.Context(), token)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if ttl := sess.ExpiresAt.Sub(sess.CreatedAt); ttl != 7*24*time.Hour {
		t.Fatalf("expected 7-day session, got %v", ttl)
	}

	rec := s.do(http.MethodGet, "/api/auth/me", "", token)
	expectStatus(t, rec, http.StatusOK)
	if me := decode[domain.Identity](t, rec); me.ID != domain.AdminIdentityID {
		t.Fatalf("expected admin identity, got %+v", me)
	}

	expectStatus(t, s.do(http.MethodPost, "/api/auth/logout", "", token), http.StatusOK)

	rec = s.do(http.MethodGet, "/api/auth/me", "", "")
	expectStatus(t, rec, http.StatusUnauthorized)
	if body := decode[handler.ErrorResponse](t, rec); body.Error != "Not authenticated" || body.Detail != body.Error {
		t.Fatalf("unexpected error body: %+v", body)
	}

	rec = s.do(http.MethodGet, "/api/auth/me", "", token)
	expectStatus(t, rec, http.StatusUnauthorized)
	if body := decode[handler.ErrorResponse](t, rec); body.Error != "Invalid session" {
		t.Fatalf("stale cookie: unexpected error body: %+v", body)
	}
}

func TestRouter_LocalLoginWrongPassword(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodPost, "/api/auth/local-login", `{"username":"admin","password":"nope"}`, "")
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestRouter_BearerFallback(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)
}

func TestRouter_SessionExchange(t *testing.T) {
	s := newTestServer(t)

	expectStatus(t, s.do(http.MethodPost, "/api/auth/session?session_id=bad", "", ""), http.StatusBadRequest)

	rec := s.do(http.MethodPost, "/api/auth/session?session_id=good-session", "", "")
	expectStatus(t, rec, http.StatusOK)

	rec = s.do(http.MethodGet, "/api/auth/me", "", "oracle-token")
	expectStatus(t, rec, http.StatusOK)
	if me := decode[domain.Identity](t, rec); me.Email != "gina@example.com" {
		t.Fatalf("unexpected identity: %+v", me)
	}
}

// ---------------------------------------------------------------------------
// Complaints
// ---------------------------------------------------------------------------

func TestRouter_ComplaintSearch(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/complaints",
		`{"customer_name":"Dee","email":"dee@example.com","phone":"5551234","subject":"late","description":"very late"}`, "")
	expectStatus(t, rec, http.StatusOK)
	created := decode[domain.Complaint](t, rec)
	if !strings.HasPrefix(created.TicketCode, domain.TicketPrefix) {
		t.Fatalf("bad ticket code %q", created.TicketCode)
	}

	rec = s.do(http.MethodGet, "/api/complaints/search/5551234", "", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[domain.Complaint](t, rec); got.ID != created.ID {
		t.Fatalf("phone search returned %s", got.ID)
	}

	rec = s.do(http.MethodGet, "/api/complaints/search/"+created.TicketCode, "", "")
	expectStatus(t, rec, http.StatusOK)

	expectStatus(t, s.do(http.MethodGet, "/api/complaints/search/CMPDEADBEEF", "", ""), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodGet, "/api/complaints/search/%205551234%20", "", ""), http.StatusNotFound)
}

func TestRouter_ComplaintAdmin(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	created := decode[domain.Complaint](t, s.do(http.MethodPost, "/api/complaints",
		`{"customer_name":"Dee","email":"dee@example.com","phone":"1","subject":"s","description":"d"}`, ""))

	expectStatus(t, s.do(http.MethodGet, "/api/complaints", "", ""), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodPatch, "/api/complaints/"+created.TicketCode+"/status", `{"status":"In Progress"}`, ""), http.StatusUnauthorized)

	expectStatus(t, s.do(http.MethodPatch, "/api/complaints/"+created.TicketCode+"/status", `{"status":"In Progress"}`, token), http.StatusOK)
	expectStatus(t, s.do(http.MethodPatch, "/api/complaints/"+created.TicketCode+"/status", `{"status":"Archived"}`, token), http.StatusUnprocessableEntity)

	list := decode[[]domain.Complaint](t, s.do(http.MethodGet, "/api/complaints", "", token))
	if len(list) != 1 || list[0].Status != domain.ComplaintInProgress {
		t.Fatalf("unexpected list: %+v", list)
	}

	expectStatus(t, s.do(http.MethodDelete, "/api/complaints/"+created.TicketCode, "", token), http.StatusOK)
	expectStatus(t, s.do(http.MethodDelete, "/api/complaints/"+created.TicketCode, "", token), http.StatusNotFound)
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

func TestRouter_ReviewApproval(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	rec := s.do(http.MethodPost, "/api/reviews",
		`{"customer_name":"Bo","email":"bo@example.com","service_taken":"cleaning","rating":5,"review_text":"great"}`, "")
	expectStatus(t, rec, http.StatusOK)
	review := decode[domain.Review](t, rec)

	if public := decode[[]domain.Review](t, s.do(http.MethodGet, "/api/reviews", "", "")); len(public) != 0 {
		t.Fatalf("unapproved review is public: %+v", public)
	}
	if all := decode[[]domain.Review](t, s.do(http.MethodGet, "/api/reviews?approved_only=false", "", "")); len(all) != 1 {
		t.Fatalf("expected review with approved_only=false, got %d", len(all))
	}

	expectStatus(t, s.do(http.MethodPatch, "/api/reviews/"+review.ID+"/approve", "", ""), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodPatch, "/api/reviews/"+review.ID+"/approve", "", token), http.StatusOK)

	public := decode[[]domain.Review](t, s.do(http.MethodGet, "/api/reviews", "", ""))
	if len(public) != 1 || public[0].ID != review.ID {
		t.Fatalf("approved review missing: %+v", public)
	}
}

// ---------------------------------------------------------------------------
// Service requests, contact, stats
// ---------------------------------------------------------------------------

func TestRouter_ServiceRequestLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	body := `{"name":"Ann","address":"1 Main","email":"ann@example.com","phone":"555","service_needed":"plumbing","description":"leak"}`
	first := decode[domain.ServiceRequest](t, s.do(http.MethodPost, "/api/customer-details", body, ""))
	second := decode[domain.ServiceRequest](t, s.do(http.MethodPost, "/api/customer-details", body, ""))
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("ids must be fresh: %q %q", first.ID, second.ID)
	}

	expectStatus(t, s.do(http.MethodPatch, "/api/customer-details/"+first.ID+"/status?status=contacted", "", token), http.StatusOK)
	expectStatus(t, s.do(http.MethodPatch, "/api/customer-details/missing/status?status=contacted", "", token), http.StatusNotFound)

	stats := decode[domain.Stats](t, s.do(http.MethodGet, "/api/stats", "", token))
	if stats.TotalCustomers != 2 || stats.PendingCustomers != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	expectStatus(t, s.do(http.MethodDelete, "/api/customer-details/"+first.ID, "", token), http.StatusOK)
	rec := s.do(http.MethodDelete, "/api/customer-details/"+first.ID, "", token)
	expectStatus(t, rec, http.StatusNotFound)
	if body := decode[handler.ErrorResponse](t, rec); body.Error != "service_request not found" {
		t.Fatalf("unexpected error body: %+v", body)
	}

	list := decode[[]domain.ServiceRequest](t, s.do(http.MethodGet, "/api/customer-details", "", token))
	if len(list) != 1 || list[0].ID != second.ID {
		t.Fatalf("unexpected list after delete: %+v", list)
	}
}

func TestRouter_ContactValidationAndGuard(t *testing.T) {
	s := newTestServer(t)
	token := s.login()

	expectStatus(t, s.do(http.MethodPost, "/api/contact", `{"name":"Cy","email":"nope","message":"hi"}`, ""), http.StatusUnprocessableEntity)
	expectStatus(t, s.do(http.MethodPost, "/api/contact", `{"name":`, ""), http.StatusBadRequest)

	msg := decode[domain.ContactMessage](t, s.do(http.MethodPost, "/api/contact", `{"name":"Cy","email":"cy@example.com","message":"hi"}`, ""))

	expectStatus(t, s.do(http.MethodGet, "/api/contact", "", ""), http.StatusUnauthorized)
	expectStatus(t, s.do(http.MethodDelete, "/api/contact/"+msg.ID, "", token), http.StatusOK)
	expectStatus(t, s.do(http.MethodDelete, "/api/contact/"+msg.ID, "", token), http.StatusNotFound)
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	expectStatus(t, s.do(http.MethodGet, "/health", "", ""), http.StatusOK)
	expectStatus(t, s.do(http.MethodGet, "/health/ready", "", ""), http.StatusOK)
}
