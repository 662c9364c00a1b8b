package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/muhsinkalodi/qmexai-ecom/internal/middleware"
	"github.com/muhsinkalodi/qmexai-ecom/internal/service"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/logger"
	"github.com/muhsinkalodi/qmexai-ecom/prometheus"
)

// AuthHandler serves the /auth router group
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Name     string  `json:"name"`
		Phone    *string `json:"phone,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		log.Error("Invalid registration data",
			zap.String("email", req.Email),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		log.Error("Registration failed", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthError("registration_failed")
		return respondError(c, log, err)
	}

	log.Info("User registered",
		zap.String("email", user.Email),
		zap.Bool("is_admin", user.IsAdmin))
	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	token, isAdmin, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		log.Error("Login failed", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthError("login_failure")
		return respondError(c, log, err)
	}

	log.Info("User logged in", zap.String("email", req.Email), zap.Bool("is_admin", isAdmin))
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"is_admin":     isAdmin,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateProfile handles PUT /auth/me
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name  *string `json:"name,omitempty"`
		Email *string `json:"email,omitempty"`
		Phone *string `json:"phone,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse profile update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	user, err := h.auth.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c), service.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		log.Error("Profile update failed", zap.Error(err))
		return respondError(c, log, err)
	}

	log.Info("Profile updated", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, user)
}
