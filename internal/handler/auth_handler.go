package handler

import (
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/service"
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

type AuthHandler struct {
	auth *service.AuthService
	log  logger.Logger
}

func NewAuthHandler(auth *service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log.With("handler", "auth")}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case strings.TrimSpace(req.Name) == "":
		writeMessage(w, http.StatusBadRequest, "Name is required")
		return
	case !validEmail(req.Email):
		writeMessage(w, http.StatusBadRequest, "A valid email is required")
		return
	case len(req.Password) < 6:
		writeMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	result, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validEmail(req.Email) {
		writeMessage(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	// Same acknowledgement whether or not the account exists.
	writeMessage(w, http.StatusOK, "If an account exists for this email, an OTP has been sent")
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validEmail(req.Email) || !otpPattern.MatchString(req.OTP) {
		writeMessage(w, http.StatusBadRequest, "Email and a 6-digit OTP are required")
		return
	}

	if err := h.auth.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	switch {
	case !validEmail(req.Email) || !otpPattern.MatchString(req.OTP):
		writeMessage(w, http.StatusBadRequest, "Email and a 6-digit OTP are required")
		return
	case len(req.NewPassword) < 6:
		writeMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Password reset successful")
}
