package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/usersvc/accounts-api/internal/api"
	"github.com/usersvc/accounts-api/internal/config"
	"github.com/usersvc/accounts-api/internal/platform/memory"
	"github.com/usersvc/accounts-api/internal/service"
	"github.com/usersvc/accounts-api/internal/service/auth"
)

// testEnv bundles the router with the services behind it so tests can
// seed state directly.
type testEnv struct {
	router   http.Handler
	accounts service.AccountService
	jwt      auth.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	accounts := service.NewAccountService(
		memory.NewAccountStore(),
		nil,
		auth.NewBcryptHasher(),
		auth.NewBcryptVerifier(),
		nil,
	)

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-signing-key-that-is-long-enough-for-hs256",
		Issuer:               "accounts-api",
		Audience:             "accounts-api-client",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	return &testEnv{
		router:   api.NewRouter(accounts, jwtService),
		accounts: accounts,
		jwt:      jwtService,
	}
}

// do executes a JSON request against the test router.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	require.Zero(t, len(headers)%2, "headers must come in key/value pairs")
	for i := 0; i < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON response body.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
