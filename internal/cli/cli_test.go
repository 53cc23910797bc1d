package cli

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wikid82/snare/internal/backend/backendtest"
	"github.com/Wikid82/snare/internal/models"
)

func seededBackend(t *testing.T) *backendtest.Server {
	t.Helper()
	fake := backendtest.NewServer(t)
	l := models.NewListener("portal", models.ListenerTypeLogin)
	l.Target = models.LoginPage{URL: "https://portal.example.com"}
	listener := fake.AddListener(l)
	s := models.NewSource("pastes", models.SourceTypePastebin)
	s.Settings = models.PastebinFeed{APIKey: "pastebin-secret-1234", URLs: []string{"https://pastebin.com/u/leaks"}}
	source := fake.AddSource(s)
	campaign := fake.AddCampaign(models.Campaign{
		Name:      "alpha",
		Honeypots: []models.Honeypot{{Name: "o365", ListenerID: listener.ID, SourceID: source.ID}},
	})
	fake.AddHit(models.Hit{IPAddress: "198.51.100.4", Type: models.HitTypeLogin, SourceID: source.ID, CampaignID: campaign.ID})
	return fake
}

func run(t *testing.T, fake *backendtest.Server, args ...string) (string, error) {
	t.Helper()
	return execute(t, append([]string{"--backend", fake.BaseURL()}, args...)...)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, backendURL string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend_url: "+backendURL+"\nbackend_timeout: 2s\n"), 0o644))
	t.Setenv("SNARE_CONFIG", path)
	t.Setenv("SNARE_BACKEND_URL", "")
}

func TestDashboard(t *testing.T) {
	fake := seededBackend(t)

	out, err := run(t, fake, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "HIT TYPE")
	assert.Regexp(t, `Login\s+1`, out)
	assert.Regexp(t, `Social\s+0`, out)
	assert.Regexp(t, `198\.51\.100\.4\s+1`, out)
	assert.Regexp(t, `pastes\s+1`, out)
	assert.Regexp(t, `alpha\s+1`, out)
}

func TestDashboard_PartialFailure(t *testing.T) {
	fake := seededBackend(t)
	fake.Fail(http.MethodGet, "/hit", http.StatusInternalServerError, `{"error":"hit store offline"}`)

	out, err := run(t, fake, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hit store offline")
	assert.Regexp(t, `alpha\s+1`, out, "campaigns were loaded before the failure")
}

func TestDashboard_PDF(t *testing.T) {
	fake := seededBackend(t)
	path := filepath.Join(t.TempDir(), "report.pdf")

	out, err := run(t, fake, "dashboard", "--pdf", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestHitCommands(t *testing.T) {
	fake := seededBackend(t)

	out, err := run(t, fake, "hit", "list")
	require.NoError(t, err)
	assert.Regexp(t, `5\s+\S+ \S+\s+198\.51\.100\.4\s+Login\s+pastes\s+alpha\s+-`, out)
	assert.Contains(t, out, "Total: 1 hits")

	out, err = run(t, fake, "hit", "view", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Hit #5")
	assert.Contains(t, out, "Campaign:    alpha")

	out, err = run(t, fake, "hit", "delete", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Hit 5 deleted")

	_, err = run(t, fake, "hit", "view", "5")
	require.Error(t, err)
	assert.EqualError(t, err, "view hit 5: not found")

	_, err = run(t, fake, "hit", "view", "abc")
	assert.EqualError(t, err, `invalid id "abc"`)
}

func TestCampaignCommands(t *testing.T) {
	fake := seededBackend(t)

	out, err := run(t, fake, "campaign", "list")
	require.NoError(t, err)
	assert.Regexp(t, `3\s+alpha\s+1`, out)

	out, err = run(t, fake, "campaign", "view", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Campaign #3: alpha")
	assert.Regexp(t, `o365\s+portal\s+pastes`, out)

	_, err = run(t, fake, "campaign", "delete", "3")
	require.NoError(t, err)

	out, err = run(t, fake, "campaign", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 0 campaigns")
	out, err = run(t, fake, "listener", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1 listeners")
}

func TestListenerCommands(t *testing.T) {
	fake := seededBackend(t)

	out, err := run(t, fake, "listener", "list")
	require.NoError(t, err)
	assert.Regexp(t, `1\s+portal\s+Login\s+https://portal\.example\.com`, out)

	out, err = run(t, fake, "listener", "view", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Listener #1")
	assert.Regexp(t, `URL:\s+https://portal\.example\.com`, out)

	out, err = run(t, fake, "listener", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Listener 1 deleted")
}

func TestSourceCommands(t *testing.T) {
	fake := seededBackend(t)

	out, err := run(t, fake, "source", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "****************1234")
	assert.NotContains(t, out, "pastebin-secret")

	out, err = run(t, fake, "source", "view", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Type:      Pastebin")
	assert.Contains(t, out, "https://pastebin.com/u/leaks")
	assert.NotContains(t, out, "pastebin-secret")

	_, err = run(t, fake, "source", "delete", "2")
	require.NoError(t, err)
	_, err = run(t, fake, "source", "view", "2")
	assert.Error(t, err)
}

func TestBackendUnreachable(t *testing.T) {
	fake := backendtest.NewServer(t)
	fake.Close()

	_, err := run(t, fake, "campaign", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
}

func TestBackendFromConfigFile(t *testing.T) {
	fake := seededBackend(t)
	writeConfig(t, fake.BaseURL())

	out, err := execute(t, "campaign", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1 campaigns")
}

func TestBackendFlagOverridesConfig(t *testing.T) {
	down := backendtest.NewServer(t)
	down.Close()
	writeConfig(t, down.BaseURL())
	fake := seededBackend(t)

	out, err := run(t, fake, "campaign", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 1 campaigns")

	_, err = execute(t, "campaign", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
}

func TestBackendTimeoutFromEnv(t *testing.T) {
	fake := seededBackend(t)
	writeConfig(t, fake.BaseURL())
	t.Setenv("SNARE_BACKEND_TIMEOUT", "soon")

	_, err := execute(t, "campaign", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SNARE_BACKEND_TIMEOUT")
}
