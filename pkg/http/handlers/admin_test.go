package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oakvale/wedding-backend/pkg/models"
	"github.com/oakvale/wedding-backend/pkg/objects"
	"github.com/oakvale/wedding-backend/pkg/token"
)

func setAdminPassword(t *testing.T, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	objects.Config.Add("admin", map[string]any{"password_hash": string(hash)})
}

func exportRequest(t *testing.T, sessionToken, adminPassword string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/rsvps.csv", nil)
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}
	if adminPassword != "" {
		req.Header.Set("X-Admin-Password", adminPassword)
	}
	return req
}

func TestExportRSVPs(t *testing.T) {
	app := newTestApp(t, token.HashPassword("pw"))
	setAdminPassword(t, "trustno1")

	require.NoError(t, objects.Store.SaveRSVP(models.RSVP{
		ID:        "r1",
		Name:      "Clara Jensen",
		Email:     "clara@example.com",
		Attending: true,
		Guests:    []string{"Ole Jensen"},
		Locale:    "en",
		CreatedAt: time.Unix(1_700_000_000, 0),
	}))

	sessionToken, err := token.Create(token.SubjectGuest)
	require.NoError(t, err)

	resp, err := app.Test(exportRequest(t, sessionToken, "trustno1"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.Contains(t, body, "id,name,email,attending")
	assert.Contains(t, body, "clara@example.com")
	assert.Contains(t, body, "Ole Jensen")
}

func TestExportRSVPsRequiresSession(t *testing.T) {
	app := newTestApp(t, token.HashPassword("pw"))
	setAdminPassword(t, "trustno1")

	resp, err := app.Test(exportRequest(t, "", "trustno1"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(exportRequest(t, "not-a-token", "trustno1"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExportRSVPsRequiresAdminPassword(t *testing.T) {
	app := newTestApp(t, token.HashPassword("pw"))
	setAdminPassword(t, "trustno1")

	sessionToken, err := token.Create(token.SubjectGuest)
	require.NoError(t, err)

	resp, err := app.Test(exportRequest(t, sessionToken, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(exportRequest(t, sessionToken, "wrong"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExportRSVPsUnconfigured(t *testing.T) {
	app := newTestApp(t, token.HashPassword("pw"))
	objects.Config.Add("admin", map[string]any{"password_hash": ""})

	sessionToken, err := token.Create(token.SubjectGuest)
	require.NoError(t, err)

	resp, err := app.Test(exportRequest(t, sessionToken, "anything"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestExportRSVPsAcceptsCookieSession(t *testing.T) {
	app := newTestApp(t, token.HashPassword("pw"))
	setAdminPassword(t, "trustno1")

	sessionToken, err := token.Create(token.SubjectGuest)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/rsvps.csv", nil)
	req.Header.Set("Cookie", "wedding_auth="+sessionToken)
	req.Header.Set("X-Admin-Password", "trustno1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
