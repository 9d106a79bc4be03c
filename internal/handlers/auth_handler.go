package handlers

import (
	"errors"
	"net/http"

	"cluetrainer/internal/models"
	"cluetrainer/internal/service"
	"cluetrainer/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
	}
}

type userPayload struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func presentUser(u *models.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, token, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondError(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, service.ErrEmailTaken):
			respondError(w, http.StatusConflict, "Email already registered")
		default:
			respondServerError(w, "registering user", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    presentUser(user),
		"token":   token,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing email or password")
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondServerError(w, "logging in", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    presentUser(user),
		"token":   token,
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user": presentUser(user),
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so the
// client discards its copy; the endpoint exists for API symmetry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response
// is identical whether or not the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Missing email")
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		respondServerError(w, "requesting password reset", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "If an account exists for that email, a reset link has been sent",
	})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Token == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Missing token or password")
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondError(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, service.ErrResetTokenInvalid):
			respondError(w, http.StatusBadRequest, "Invalid or expired reset token")
		default:
			respondServerError(w, "resetting password", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset successfully",
	})
}
