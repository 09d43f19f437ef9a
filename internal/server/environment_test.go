package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rousage/coffeeshop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentHandler(t *testing.T) {
	s, _, _ := newTestServer(t)
	e := newTestEcho()

	res := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/environment", nil), res)

	require.NoError(t, s.environmentHandler(c))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{
		"production": false,
		"apiServerUrl": "http://127.0.0.1:5000",
		"auth0": {
			"url": "dev-fvxwov-3.eu",
			"audience": "https://coffee_shop_full_stack.com",
			"clientId": "3KkgSLPcaxne9QPGEDjwMt0NyCxB8wTF",
			"callbackURL": "http://localhost:8100"
		}
	}`, res.Body.String())

	var actual config.Environment
	require.NoError(t, json.NewDecoder(res.Body).Decode(&actual))
	assert.Equal(t, config.DevelopmentEnvironment(), actual, "a consumer reproduces the values unchanged")
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name             string
		query            string
		expectedStatus   int
		expectedRedirect string
	}{
		{name: "no callback path", query: "", expectedStatus: http.StatusFound, expectedRedirect: "http://localhost:8100"},
		{name: "callback path", query: "?callbackPath=/tabs/user-page", expectedStatus: http.StatusFound, expectedRedirect: "http://localhost:8100/tabs/user-page"},
		{name: "callback path must be relative", query: "?callbackPath=https://evil.example", expectedStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestServer(t)
			e := newTestEcho()

			res := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/login"+tt.query, nil), res)

			require.NoError(t, s.loginHandler(c))
			assert.Equal(t, tt.expectedStatus, res.Code)

			if tt.expectedStatus != http.StatusFound {
				return
			}

			location, err := url.Parse(res.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, "dev-fvxwov-3.eu.auth0.com", location.Host)
			assert.Equal(t, "/authorize", location.Path)
			assert.Equal(t, tt.expectedRedirect, location.Query().Get("redirect_uri"))
			assert.Equal(t, "3KkgSLPcaxne9QPGEDjwMt0NyCxB8wTF", location.Query().Get("client_id"))
		})
	}
}
