package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/crucial707/dayplan/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo    *repo.UserRepo
	Secret      []byte
	ExpireHours int
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ==========================
// Register (password required; stored as bcrypt hash)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "required"
	}
	if len(input.Password) < 8 {
		fields["password"] = "at least 8 characters"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.Create(r.Context(), input.Username, input.Password)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			JSONError(w, "username already taken", http.StatusConflict)
			return
		}
		internalError(w, r, "register: create user", err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// Login (bcrypt verified; issues an HS256 token)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetByUsername(r.Context(), input.Username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			internalError(w, r, "login: get user", err)
			return
		}
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	hours := h.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Duration(hours) * time.Hour).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.Secret)
	if err != nil {
		internalError(w, r, "login: sign token", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": signed,
		"user":  user,
	})
}
