package reset

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ayush/auth-backend/internal/auth"
	"github.com/ayush/auth-backend/internal/models"
	"github.com/ayush/auth-backend/internal/store"
)

// writeJSON writes a response envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, v models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// messages holds the user-facing wording for one secret variant.
type messages struct {
	sent          string
	notFound      string
	noSecret      string
	mismatch      string
	expired       string
	missingFields string
	verified      string
}

var otpMessages = messages{
	sent:          "If an account with that email exists, a password reset OTP has been sent.",
	notFound:      "Invalid email address.",
	noSecret:      "No OTP found. Please request a new password reset.",
	mismatch:      "Invalid OTP. Please check and try again.",
	expired:       "OTP has expired. Please request a new password reset.",
	missingFields: "Email, OTP, and new password are required",
	verified:      "OTP verified successfully",
}

var tokenMessages = messages{
	sent:          "If an account with that email exists, a password reset link has been sent.",
	notFound:      "Invalid reset token.",
	noSecret:      "No reset token found. Please request a new password reset.",
	mismatch:      "Invalid reset token.",
	expired:       "Reset token has expired. Please request a new password reset.",
	missingFields: "Token and new password are required",
	verified:      "Reset token verified successfully",
}

// Handler holds password-reset HTTP handlers.
type Handler struct {
	svc *Service
	msg messages
}

func NewHandler(svc *Service) *Handler {
	msg := otpMessages
	if svc.Variant() == VariantToken {
		msg = tokenMessages
	}
	return &Handler{svc: svc, msg: msg}
}

// ForgotPassword issues a reset secret. The response is identical whether or
// not the account exists.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Invalid request body"})
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Email is required"})
		return
	}

	if err := h.svc.Issue(r.Context(), req.Email); err != nil {
		if errors.Is(err, ErrDeliveryFailure) {
			writeJSON(w, http.StatusInternalServerError, models.Response{Message: "Failed to send email. Please try again later."})
			return
		}
		log.Printf("forgot-password error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.Response{Message: "An error occurred. Please try again later."})
		return
	}

	writeJSON(w, http.StatusOK, models.Response{Success: true, Message: h.msg.sent})
}

// VerifyOTP checks an OTP without consuming it (OTP deployments).
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Invalid request body"})
		return
	}
	if req.Email == "" || req.OTP == "" {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Email and OTP are required"})
		return
	}

	if err := h.svc.Verify(r.Context(), req.Email, req.OTP); err != nil {
		h.writeSecretError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Response{Success: true, Message: h.msg.verified})
}

// VerifyToken checks a reset token without consuming it (token deployments).
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Token is required"})
		return
	}

	if err := h.svc.Verify(r.Context(), token, token); err != nil {
		h.writeSecretError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Response{Success: true, Message: h.msg.verified})
}

// ResetPassword consumes the secret and sets the new password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Invalid request body"})
		return
	}

	identifier, secret := req.Email, req.OTP
	missing := req.Email == "" || req.OTP == ""
	if h.svc.Variant() == VariantToken {
		identifier, secret = req.Token, req.Token
		missing = req.Token == ""
	}
	if missing || req.NewPassword == "" {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: h.msg.missingFields})
		return
	}

	if err := h.svc.Consume(r.Context(), identifier, secret, req.NewPassword); err != nil {
		h.writeSecretError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Response{Success: true, Message: "Password has been reset successfully."})
}

func (h *Handler) writeSecretError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.Response{Message: h.msg.notFound})
	case errors.Is(err, ErrNoActiveSecret):
		writeJSON(w, http.StatusBadRequest, models.Response{Message: h.msg.noSecret})
	case errors.Is(err, ErrSecretMismatch):
		writeJSON(w, http.StatusBadRequest, models.Response{Message: h.msg.mismatch})
	case errors.Is(err, ErrSecretExpired):
		writeJSON(w, http.StatusBadRequest, models.Response{Message: h.msg.expired})
	case errors.Is(err, auth.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Password must be at least 6 characters long"})
	default:
		log.Printf("password-reset error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.Response{Message: "An error occurred. Please try again later."})
	}
}
