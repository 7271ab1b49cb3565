package handler

import (
	"errors"
	"net/http"

	"github.com/futsala/futsala-backend/internal/dto"
	"github.com/futsala/futsala-backend/internal/middleware"
	"github.com/futsala/futsala-backend/internal/service"
	"github.com/futsala/futsala-backend/pkg/token"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc    service.AuthService
	tokens *token.Manager
}

func NewAuthHandler(svc service.AuthService, tokens *token.Manager) *AuthHandler {
	return &AuthHandler{svc: svc, tokens: tokens}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, loginLimiter echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	if loginLimiter != nil {
		g.POST("/login", h.Login, loginLimiter)
	} else {
		g.POST("/login", h.Login)
	}
	g.POST("/refresh", h.Refresh)
	g.POST("/forgot-password", h.ForgotPassword)
	g.GET("/users", h.ListUsers, middleware.JWTAuth(h.tokens), middleware.RequireRole("ADMIN"))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.PhoneNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "fullName, email, password and phoneNumber are required")
	}

	user, err := h.svc.Register(c.Request().Context(), req.FullName, req.Email, req.Password, req.PhoneNumber, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrPhoneTaken),
			errors.Is(err, service.ErrInvalidRole):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
		}
	}

	return c.JSON(http.StatusCreated, dto.OKMessage("User registered successfully", dto.ToUserResponse(user)))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, access, refresh, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Login successful", dto.LoginResponse{
		User: dto.ToUserResponse(user),
		Auth: dto.AuthTokens{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    int(h.tokens.AccessTTL().Seconds()),
		},
	}))
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refreshToken is required")
	}

	access, err := h.svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to refresh token")
		}
	}

	return c.JSON(http.StatusOK, dto.OK(dto.AuthTokens{
		AccessToken: access,
		ExpiresIn:   int(h.tokens.AccessTTL().Seconds()),
	}))
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	if err := h.svc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to process request")
	}

	// The token travels through the notification pipeline, never the response.
	return c.JSON(http.StatusOK, dto.OKMessage("Reset token sent", nil))
}

func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch users")
	}

	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = dto.ToUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, dto.OKCount(len(resp), resp))
}
