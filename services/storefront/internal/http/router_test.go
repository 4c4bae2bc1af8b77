package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shopfront/services/storefront/internal/http/handlers"
	"shopfront/services/storefront/internal/repo"
	"shopfront/services/storefront/internal/service"
	"shopfront/services/storefront/internal/session"
	"shopfront/shared/pkg/notify"
)

type stubNotifier struct {
	outcome notify.Outcome
	err     error
	calls   int
}

func (s *stubNotifier) Notify(context.Context, string, string) (notify.Outcome, error) {
	s.calls++
	return s.outcome, s.err
}

type app struct {
	srv      *httptest.Server
	client   *http.Client
	users    *repo.UsersMemory
	orders   *repo.OrdersMemory
	notifier *stubNotifier
}

func newApp(t *testing.T) *app {
	t.Helper()
	log := zerolog.Nop()
	users, orders := repo.NewUsersMemory(), repo.NewOrdersMemory()
	n := &stubNotifier{outcome: notify.Delivered}

	sessions := &session.Manager{Store: session.NewMemoryStore(), Cookie: "shop_session", TTL: time.Hour, Log: log}
	auth := &handlers.AuthHandler{
		Accounts: &service.AccountsService{Repo: users, Hasher: service.BcryptHasher{Cost: bcrypt.MinCost}, Log: log},
		Sessions: sessions,
		Log:      log,
	}
	buy := &handlers.BuyNowHandler{
		Orders:   &service.OrdersService{Repo: orders, Notifier: n, Log: log},
		Sessions: sessions,
		Log:      log,
	}

	router := NewRouter(&Handlers{
		Health:   handlers.Health,
		Page:     func(name string) http.HandlerFunc { return handlers.Page(name, sessions, log) },
		Signup:   auth.Signup,
		Login:    auth.Login,
		Logout:   auth.Logout,
		BuyNow:   buy.ServeHTTP,
		Feedback: (&handlers.Feedback{Log: log}).ServeHTTP,
	}, Options{Service: "storefront-test", Log: log, RequestTimeout: 5 * time.Second})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &app{srv: srv, client: client, users: users, orders: orders, notifier: n}
}

func (a *app) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := a.client.PostForm(a.srv.URL+path, form)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

type page struct {
	Page    string          `json:"page"`
	User    string          `json:"user"`
	Flashes []session.Flash `json:"flashes"`
}

func (a *app) page(t *testing.T, path string) page {
	t.Helper()
	resp, err := a.client.Get(a.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return p
}

func TestEndToEndSignupLoginBuyNow(t *testing.T) {
	a := newApp(t)

	resp := a.post(t, "/signup", url.Values{"fullname": {"A"}, "email": {"a@x.com"}, "password": {"p1"}, "confirm": {"p1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Equal(t, []session.Flash{{Category: "success", Message: "Signup successful. Please login."}}, a.page(t, "/login").Flashes)

	resp = a.post(t, "/login", url.Values{"username": {"a@x.com"}, "password": {"p1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/shop", resp.Header.Get("Location"))
	shop := a.page(t, "/shop")
	assert.Equal(t, "a@x.com", shop.User)
	assert.Equal(t, []session.Flash{{Category: "success", Message: "Login successful"}}, shop.Flashes)

	resp = a.post(t, "/buynow", url.Values{"name": {"A"}, "phone": {"9999999999"}, "address": {"X"}, "total": {"100"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.OrderID)

	stored := a.orders.Orders()
	require.Len(t, stored, 1)
	assert.Equal(t, body.OrderID, stored[0].OrderID)
	assert.Equal(t, "a@x.com", stored[0].Email)
	assert.Equal(t, "9999999999", stored[0].Phone)
	assert.Equal(t, "100", stored[0].Total)
	assert.Equal(t, 1, a.notifier.calls)
}

func TestBuyNowWithoutLoginRedirects(t *testing.T) {
	a := newApp(t)

	resp := a.post(t, "/buynow", url.Values{"name": {"A"}, "phone": {"9999999999"}, "address": {"X"}, "total": {"100"}})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Empty(t, a.orders.Orders())
	assert.Equal(t, []session.Flash{{Category: "error", Message: "Please login to place an order."}}, a.page(t, "/login").Flashes)
}

func TestBuyNowInvalidPhoneRedirectsBack(t *testing.T) {
	a := newApp(t)
	a.post(t, "/signup", url.Values{"fullname": {"A"}, "email": {"a@x.com"}, "password": {"p1"}, "confirm": {"p1"}})
	a.post(t, "/login", url.Values{"username": {"a@x.com"}, "password": {"p1"}})

	resp := a.post(t, "/buynow", url.Values{"name": {"A"}, "phone": {"12345"}, "address": {"X"}, "total": {"100"}})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/buynow", resp.Header.Get("Location"))
	assert.Empty(t, a.orders.Orders())
	flashes := a.page(t, "/buynow").Flashes
	assert.Contains(t, flashes, session.Flash{Category: "error", Message: "Invalid phone number."})
}

func TestBuyNowMissingFieldIsBadRequest(t *testing.T) {
	a := newApp(t)
	a.post(t, "/signup", url.Values{"fullname": {"A"}, "email": {"a@x.com"}, "password": {"p1"}, "confirm": {"p1"}})
	a.post(t, "/login", url.Values{"username": {"a@x.com"}, "password": {"p1"}})

	resp := a.post(t, "/buynow", url.Values{"name": {"A"}, "phone": {"9999999999"}, "address": {"X"}})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, a.orders.Orders())
}

func TestBuyNowNotifierFailureStillSucceeds(t *testing.T) {
	a := newApp(t)
	a.notifier.outcome, a.notifier.err = notify.Failed, errors.New("sns down")
	a.post(t, "/signup", url.Values{"fullname": {"A"}, "email": {"a@x.com"}, "password": {"p1"}, "confirm": {"p1"}})
	a.post(t, "/login", url.Values{"username": {"a@x.com"}, "password": {"p1"}})

	resp := a.post(t, "/buynow", url.Values{"name": {"A"}, "phone": {"9999999999"}, "address": {"X"}, "total": {"100"}})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, a.orders.Orders(), 1)
}

func TestSignupErrors(t *testing.T) {
	a := newApp(t)

	resp := a.post(t, "/signup", url.Values{"fullname": {"A"}, "email": {"a@x.com"}, "password": {"p1"}, "confirm": {"p2"}})
	assert.Equal(t, "/signup", resp.Header.Get("Location"))
	assert.Equal(t, []session.Flash{{Category: "error", Message: "Passwords do not match."}}, a.page(t, "/signup").Flashes)

	a.post(t, "/signup", url.Values{"fullname": {"A"}, "email": {"a@x.com"}, "password": {"p1"}, "confirm": {"p1"}})
	a.page(t, "/login")

	resp = a.post(t, "/signup", url.Values{"fullname": {"Other"}, "email": {"a@x.com"}, "password": {"p9"}, "confirm": {"p9"}})
	assert.Equal(t, "/signup", resp.Header.Get("Location"))
	assert.Equal(t, []session.Flash{{Category: "error", Message: "Email already registered"}}, a.page(t, "/signup").Flashes)

	u, _, _ := a.users.Find(context.Background(), "a@x.com")
	assert.Equal(t, "A", u.FullName)
}

func TestSignupWithoutEmailCannotLogIn(t *testing.T) {
	a := newApp(t)

	resp := a.post(t, "/signup", url.Values{"fullname": {"A"}, "email": {""}, "password": {"p1"}, "confirm": {"p1"}})
	assert.Equal(t, "/signup", resp.Header.Get("Location"))
	assert.Equal(t, []session.Flash{{Category: "error", Message: "Email is required."}}, a.page(t, "/signup").Flashes)

	resp = a.post(t, "/login", url.Values{"username": {""}, "password": {"p1"}})
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	p := a.page(t, "/login")
	assert.Empty(t, p.User)
	assert.Equal(t, []session.Flash{{Category: "error", Message: "Invalid credentials"}}, p.Flashes)
}

func TestLoginInvalidCredentials(t *testing.T) {
	a := newApp(t)

	resp := a.post(t, "/login", url.Values{"username": {"ghost@x.com"}, "password": {"nope"}})

	assert.Equal(t, "/login", resp.Header.Get("Location"))
	p := a.page(t, "/login")
	assert.Empty(t, p.User)
	assert.Equal(t, []session.Flash{{Category: "error", Message: "Invalid credentials"}}, p.Flashes)
}

func TestLogoutClearsIdentity(t *testing.T) {
	a := newApp(t)
	a.post(t, "/signup", url.Values{"fullname": {"A"}, "email": {"a@x.com"}, "password": {"p1"}, "confirm": {"p1"}})
	a.post(t, "/login", url.Values{"username": {"a@x.com"}, "password": {"p1"}})

	resp, err := a.client.Get(a.srv.URL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	index := a.page(t, "/")
	assert.Empty(t, index.User)
	assert.Equal(t, []session.Flash{{Category: "info", Message: "You have been logged out."}}, index.Flashes)

	resp = a.post(t, "/buynow", url.Values{"name": {"A"}, "phone": {"9999999999"}, "address": {"X"}, "total": {"100"}})
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestFeedbackRedirectsToThanks(t *testing.T) {
	a := newApp(t)
	resp := a.post(t, "/feedback", url.Values{"name": {"A"}, "email": {"a@x.com"}, "message": {"great"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/thanku", resp.Header.Get("Location"))
}

func TestSwaggerDoc(t *testing.T) {
	a := newApp(t)

	resp, err := a.client.Get(a.srv.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Contains(t, doc.Paths, "/buynow")
	assert.Contains(t, doc.Paths, "/signup")
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)

	resp, err := a.client.Get(a.srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = a.client.Get(a.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	buf := new(strings.Builder)
	_, _ = io.Copy(buf, resp.Body)
	assert.Contains(t, buf.String(), "http_requests_total")
}
