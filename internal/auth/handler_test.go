package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/auth-backend/internal/models"
	"github.com/ayush/auth-backend/internal/store"
)

func doJSON(t *testing.T, h http.HandlerFunc, body string) (int, models.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)

	var resp models.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestRegisterHandler(t *testing.T) {
	h := NewHandler(NewService(store.NewMemoryStore()))

	code, resp := doJSON(t, h.Register, `{"email":"a@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "a@b.com", resp.User.Email)

	code, resp = doJSON(t, h.Register, `{"email":"a@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, resp.Success)
	assert.Equal(t, "User with this email already exists", resp.Message)

	code, resp = doJSON(t, h.Register, `{"email":"b@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email and password are required", resp.Message)

	code, resp = doJSON(t, h.Register, `{"email":"b@b.com","password":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at least 6 characters long", resp.Message)

	code, _ = doJSON(t, h.Register, `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestLoginHandler(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	h := NewHandler(svc)

	_, err := svc.Register(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)

	code, resp := doJSON(t, h.Login, `{"email":"a@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Login successful", resp.Message)

	code, wrongPw := doJSON(t, h.Login, `{"email":"a@b.com","password":"nope-wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, unknown := doJSON(t, h.Login, `{"email":"ghost@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	// wrong password and unknown email must be indistinguishable
	assert.Equal(t, wrongPw.Message, unknown.Message)

	code, resp = doJSON(t, h.Login, `{"email":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email and password are required", resp.Message)
}
