package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ayush/auth-backend/internal/models"
	"github.com/ayush/auth-backend/internal/store"
)

// writeJSON writes a response envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, v models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Handler holds registration and login HTTP handlers.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register creates a new user.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Email and password are required"})
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Password must be at least 6 characters long"})
		return
	case errors.Is(err, store.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "User with this email already exists"})
		return
	default:
		log.Printf("register error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.Response{Message: "An error occurred during registration. Please try again."})
		return
	}

	writeJSON(w, http.StatusCreated, models.Response{
		Success: true,
		Message: "User registered successfully",
		User:    &models.UserInfo{Email: user.Email},
	})
}

// Login verifies credentials. It establishes no session; the response is a
// success flag only.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.Response{Message: "Email and password are required"})
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, models.Response{Message: "Invalid email or password"})
			return
		}
		log.Printf("login error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.Response{Message: "An error occurred during login. Please try again."})
		return
	}

	writeJSON(w, http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		User:    &models.UserInfo{Email: user.Email},
	})
}
