package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/trainmetrics/coaching-api/internal/api/metrics"
	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
)

type stubAuthService struct {
	registered *domain.User
	registerIn struct {
		email, password, name string
		role                  domain.Role
	}
	registerErr error

	pair     *ports.TokenPair
	loginErr error

	refreshAccess string
	refreshErr    error

	forgotErr error
	resetErr  error
}

func (s *stubAuthService) Register(_ context.Context, email, password, name string, role domain.Role) (*domain.User, error) {
	s.registerIn.email, s.registerIn.password, s.registerIn.name, s.registerIn.role = email, password, name, role
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registered, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if s.loginErr != nil {
		return nil, nil, s.loginErr
	}
	return s.pair, s.registered, nil
}

func (s *stubAuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	return s.refreshAccess, nil
}

func (s *stubAuthService) ForgotPassword(_ context.Context, email string) (string, error) {
	if s.forgotErr != nil {
		return "", s.forgotErr
	}
	return "reset-token", nil
}

func (s *stubAuthService) ResetPassword(_ context.Context, resetToken, newPassword string) error {
	return s.resetErr
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{registered: &domain.User{ID: "user_1", Email: "alice@example.com", Role: domain.RoleTrainer}}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/register",
		`{"email":"alice@example.com","password":"s3cret-pass","name":"Alice","role":"trainer"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.registerIn.role != domain.RoleTrainer {
		t.Fatalf("unexpected role passed through: %s", svc.registerIn.role)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if _, ok := resp["user"]; !ok {
		t.Fatalf("expected user in response, got %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not carry password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := []string{
		`{"password":"s3cret-pass","name":"Alice"}`,                                       // missing email
		`{"email":"not-an-email","password":"s3cret-pass","name":"Alice"}`,                // bad email
		`{"email":"alice@example.com","password":"short","name":"Alice"}`,                 // short password
		`{"email":"alice@example.com","password":"s3cret-pass","name":"A","role":"god"}`,  // bad role
		`{"email":"alice@example.com","password":"s3cret-pass"}`,                          // missing name
	}
	for _, body := range cases {
		c, _ := newJSONContext(t, http.MethodPost, "/v1/auth/register", body)
		err := h.Register(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists})

	c, _ := newJSONContext(t, http.MethodPost, "/v1/auth/register",
		`{"email":"alice@example.com","password":"s3cret-pass","name":"Alice"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		registered: &domain.User{ID: "user_1", Email: "alice@example.com"},
		pair:       &ports.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/login",
		`{"email":"alice@example.com","password":"s3cret-pass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.AccessToken != "access-jwt" || resp.RefreshToken != "refresh-jwt" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	c, _ := newJSONContext(t, http.MethodPost, "/v1/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{refreshAccess: "new-access-jwt"})

	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/refresh",
		`{"refresh_token":"refresh-jwt"}`)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "new-access-jwt") {
		t.Fatalf("expected new access token in body: %s", rec.Body.String())
	}
}

func TestAuthHandler_RefreshTypeMismatch(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{refreshErr: domain.ErrTokenTypeMismatch})

	c, _ := newJSONContext(t, http.MethodPost, "/v1/auth/refresh",
		`{"refresh_token":"access-jwt"}`)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrTokenTypeMismatch) {
		t.Fatalf("expected ErrTokenTypeMismatch to propagate, got %v", err)
	}
}

func TestAuthHandler_ForgotPasswordIsUniform(t *testing.T) {
	// The response must not reveal whether the account exists.
	for _, svc := range []*stubAuthService{
		{},
		{forgotErr: domain.ErrUserNotFound},
	} {
		h := NewAuthHandler(svc)
		c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/password/forgot",
			`{"email":"maybe@example.com"}`)

		if err := h.ForgotPassword(c); err != nil {
			t.Fatalf("ForgotPassword returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}

func TestAuthHandler_ForgotPasswordCountsIssuedTokensOnly(t *testing.T) {
	counter := metrics.TokensIssuedTotal.WithLabelValues(string(ports.TokenTypeReset))

	before := testutil.ToFloat64(counter)
	h := NewAuthHandler(&stubAuthService{forgotErr: domain.ErrUserNotFound})
	c, _ := newJSONContext(t, http.MethodPost, "/v1/auth/password/forgot",
		`{"email":"nobody@example.com"}`)
	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	if got := testutil.ToFloat64(counter) - before; got != 0 {
		t.Fatalf("reset counter moved by %v although no token was minted", got)
	}

	before = testutil.ToFloat64(counter)
	h = NewAuthHandler(&stubAuthService{})
	c, _ = newJSONContext(t, http.MethodPost, "/v1/auth/password/forgot",
		`{"email":"known@example.com"}`)
	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("reset counter moved by %v, want 1", got)
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newJSONContext(t, http.MethodPost, "/v1/auth/password/reset",
		`{"token":"reset-jwt","new_password":"new-password1"}`)

	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ResetPasswordReplay(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{resetErr: domain.ErrTokenInvalid})

	c, _ := newJSONContext(t, http.MethodPost, "/v1/auth/password/reset",
		`{"token":"used-jwt","new_password":"new-password1"}`)

	if err := h.ResetPassword(c); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid to propagate, got %v", err)
	}
}
