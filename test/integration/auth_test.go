package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeTokenPair(t *testing.T, resp *http.Response) (access, refresh string) {
	t.Helper()

	var payload struct {
		Data struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Data.AccessToken, payload.Data.RefreshToken
}

func TestSessionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	sess := app.registerAndLogin(t, "alice")
	require.NotEmpty(t, sess.AccessToken)
	require.NotEmpty(t, sess.RefreshToken)

	// Exchange the refresh token for a rotated pair.
	resp := app.postJSON(t, "/api/auth/refresh", "", map[string]string{
		"refresh_token": sess.RefreshToken,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	newAccess, newRefresh := decodeTokenPair(t, resp)
	assert.NotEmpty(t, newAccess)
	assert.NotEqual(t, sess.RefreshToken, newRefresh, "refresh token must rotate on use")

	// The spent token is single-use.
	resp = app.postJSON(t, "/api/auth/refresh", "", map[string]string{
		"refresh_token": sess.RefreshToken,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The rotated token still works.
	resp = app.postJSON(t, "/api/auth/refresh", "", map[string]string{
		"refresh_token": newRefresh,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, currentRefresh := decodeTokenPair(t, resp)

	// Logout ends the session for good.
	resp = app.postJSON(t, "/api/auth/logout", newAccess, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.postJSON(t, "/api/auth/refresh", "", map[string]string{
		"refresh_token": currentRefresh,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Logging out again is harmless.
	resp = app.postJSON(t, "/api/auth/logout", newAccess, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRefreshViaCookie(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	sess := app.registerAndLogin(t, "bob")

	req, err := http.NewRequest(http.MethodPost, app.Server.URL+"/api/auth/refresh", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: sess.RefreshToken})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Rotated tokens come back as cookies too.
	var gotAccess, gotRefresh string
	for _, cookie := range resp.Cookies() {
		switch cookie.Name {
		case "access_token":
			gotAccess = cookie.Value
		case "refresh_token":
			gotRefresh = cookie.Value
		}
	}
	assert.NotEmpty(t, gotAccess)
	assert.NotEmpty(t, gotRefresh)
	assert.NotEqual(t, sess.RefreshToken, gotRefresh)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerAndLogin(t, "carol")

	wrongPass := app.postJSON(t, "/api/auth/login", "", map[string]string{
		"identifier": "carol",
		"password":   "nope",
	})
	defer wrongPass.Body.Close()
	unknownUser := app.postJSON(t, "/api/auth/login", "", map[string]string{
		"identifier": "nobody",
		"password":   "password123",
	})
	defer unknownUser.Body.Close()

	// Both failure modes look the same from outside.
	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)

	var bodyWrong, bodyUnknown map[string]any
	require.NoError(t, json.NewDecoder(wrongPass.Body).Decode(&bodyWrong))
	require.NoError(t, json.NewDecoder(unknownUser.Body).Decode(&bodyUnknown))
	assert.Equal(t, bodyWrong, bodyUnknown)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.registerAndLogin(t, "dave")

	resp := app.postJSON(t, "/api/auth/register", "", map[string]string{
		"fullname": "Another Dave",
		"email":    "dave2@example.com",
		"username": "dave",
		"password": "password123",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	sess := app.registerAndLogin(t, "erin")

	req, err := http.NewRequest(http.MethodGet, app.Server.URL+"/api/users/me", nil)
	require.NoError(t, err)
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "erin", payload.Data.Username)

	// A refresh token is not accepted where an access token is expected.
	req.Header.Set("Authorization", "Bearer "+sess.RefreshToken)
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
