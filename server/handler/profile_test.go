package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/plateful/plateful/model"
	"github.com/stretchr/testify/require"
)

func TestProfileRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	w := env.do(t, http.MethodGet, "/api/profile", "", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"Missing token"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/me", "bogus-token", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
}

func TestGetProfileNotFound(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	token, userID := env.signup(t, "a@x.com", "secret123", "Ann")

	// Simulate a user that predates profile creation.
	require.NoError(t, env.db.Where("user_id = ?", userID).Delete(&model.Profile{}).Error)

	w := env.do(t, http.MethodGet, "/api/profile", token, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"Profile not found"}`, w.Body.String())
}

func TestUpdateProfilePartialFields(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	token, _ := env.signup(t, "a@x.com", "secret123", "Ann")

	// Updating only the bio must leave the display name alone.
	w := env.doJSON(t, http.MethodPut, "/api/profile", token, gin.H{"bio": "I cook."})
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		DisplayName string `json:"displayName"`
		Bio         string `json:"bio"`
		AvatarUrl   string `json:"avatarUrl"`
	}
	decodeJSON(t, w, &profile)
	require.Equal(t, "Ann", profile.DisplayName)
	require.Equal(t, "I cook.", profile.Bio)
	require.Empty(t, profile.AvatarUrl)

	w = env.do(t, http.MethodGet, "/api/profile", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &profile)
	require.Equal(t, "Ann", profile.DisplayName)
	require.Equal(t, "I cook.", profile.Bio)
}

func TestUpdateProfileCreatesLazily(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	token, userID := env.signup(t, "a@x.com", "secret123", "")
	require.NoError(t, env.db.Where("user_id = ?", userID).Delete(&model.Profile{}).Error)

	w := env.doJSON(t, http.MethodPut, "/api/profile", token, gin.H{
		"displayName": "Ann",
		"avatarUrl":   "https://example.com/a.png",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var profile struct {
		UserID      string `json:"userId"`
		DisplayName string `json:"displayName"`
		AvatarUrl   string `json:"avatarUrl"`
	}
	decodeJSON(t, w, &profile)
	require.Equal(t, userID, profile.UserID)
	require.Equal(t, "Ann", profile.DisplayName)
	require.Equal(t, "https://example.com/a.png", profile.AvatarUrl)
}
