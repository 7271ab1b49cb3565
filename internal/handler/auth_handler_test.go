package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/futsala/futsala-backend/internal/models"
	"github.com/futsala/futsala-backend/internal/service"
	"github.com/futsala/futsala-backend/pkg/token"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock AuthService ---

type mockAuthService struct {
	registerFn func(ctx context.Context, fullName, email, password, phone, role string) (*models.User, error)
	loginFn    func(ctx context.Context, email, password string) (*models.User, string, string, error)
	refreshFn  func(ctx context.Context, refreshToken string) (string, error)
	forgotFn   func(ctx context.Context, email string) error
	listFn     func(ctx context.Context) ([]models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, fullName, email, password, phone, role string) (*models.User, error) {
	return m.registerFn(ctx, fullName, email, password, phone, role)
}
func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFn(ctx, refreshToken)
}
func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.forgotFn(ctx, email)
}
func (m *mockAuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listFn(ctx)
}

func testTokens() *token.Manager {
	return token.NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Tests ---

func TestRegister_Handler_Success(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, fullName, email, password, phone, role string) (*models.User, error) {
			return &models.User{ID: 1, FullName: fullName, Email: email, PhoneNumber: phone, Role: models.RoleCustomer}, nil
		},
	}

	e := echo.New()
	body := `{"fullName":"Sita Rai","email":"sita@example.com","password":"secret123","phoneNumber":"9800000001"}`
	c, rec := postJSON(e, "/api/v1/auth/register", body)

	h := NewAuthHandler(svc, testTokens())
	err := h.Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "sita@example.com", resp.Data.Email)
}

func TestRegister_Handler_MissingFields(t *testing.T) {
	e := echo.New()
	c, _ := postJSON(e, "/api/v1/auth/register", `{"email":"sita@example.com"}`)

	h := NewAuthHandler(nil, testTokens())
	err := h.Register(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRegister_Handler_EmailTaken(t *testing.T) {
	svc := &mockAuthService{
		registerFn: func(ctx context.Context, fullName, email, password, phone, role string) (*models.User, error) {
			return nil, service.ErrEmailTaken
		},
	}

	e := echo.New()
	body := `{"fullName":"Sita Rai","email":"sita@example.com","password":"secret123","phoneNumber":"9800000001"}`
	c, _ := postJSON(e, "/api/v1/auth/register", body)

	h := NewAuthHandler(svc, testTokens())
	err := h.Register(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestLogin_Handler_Success(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*models.User, string, string, error) {
			return &models.User{ID: 1, Email: email, Role: models.RoleCustomer}, "access-token", "refresh-token", nil
		},
	}

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/auth/login", `{"email":"sita@example.com","password":"secret123"}`)

	h := NewAuthHandler(svc, testTokens())
	err := h.Login(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Auth struct {
				AccessToken  string `json:"accessToken"`
				RefreshToken string `json:"refreshToken"`
				ExpiresIn    int    `json:"expiresIn"`
			} `json:"auth"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "access-token", resp.Data.Auth.AccessToken)
	assert.Equal(t, "refresh-token", resp.Data.Auth.RefreshToken)
	assert.Equal(t, 900, resp.Data.Auth.ExpiresIn)
}

func TestLogin_Handler_BadCredentials(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(ctx context.Context, email, password string) (*models.User, string, string, error) {
			return nil, "", "", service.ErrInvalidCredentials
		},
	}

	e := echo.New()
	c, _ := postJSON(e, "/api/v1/auth/login", `{"email":"sita@example.com","password":"wrong"}`)

	h := NewAuthHandler(svc, testTokens())
	err := h.Login(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRefresh_Handler_InvalidToken(t *testing.T) {
	svc := &mockAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (string, error) {
			return "", service.ErrInvalidToken
		},
	}

	e := echo.New()
	c, _ := postJSON(e, "/api/v1/auth/refresh", `{"refreshToken":"garbage"}`)

	h := NewAuthHandler(svc, testTokens())
	err := h.Refresh(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestForgotPassword_Handler_NoTokenInResponse(t *testing.T) {
	svc := &mockAuthService{
		forgotFn: func(ctx context.Context, email string) error { return nil },
	}

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/auth/forgot-password", `{"email":"sita@example.com"}`)

	h := NewAuthHandler(svc, testTokens())
	err := h.ForgotPassword(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token\":", "raw reset token must never appear in the response")
}
