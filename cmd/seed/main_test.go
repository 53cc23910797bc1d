package main

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/backend/backendtest"
)

func TestSeed(t *testing.T) {
	fake := backendtest.NewServer(t)
	client := backend.NewClient(fake.BaseURL())

	var out bytes.Buffer
	require.NoError(t, seed(context.Background(), client, &out))

	listeners, err := client.ListListeners(context.Background())
	require.NoError(t, err)
	assert.Len(t, listeners, 3)
	sources, err := client.ListSources(context.Background())
	require.NoError(t, err)
	assert.Len(t, sources, 3)
	campaigns, err := client.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Len(t, campaigns[0].Honeypots, 2)

	honeypots, err := client.ListHoneypots(context.Background())
	require.NoError(t, err)
	assert.Len(t, honeypots, 3)

	assert.Contains(t, out.String(), `✓ Campaign "Social engineering"`)
}

func TestSeed_StopsOnBackendError(t *testing.T) {
	fake := backendtest.NewServer(t)
	fake.Fail(http.MethodPost, "/source", http.StatusBadRequest, `{"error":"bad source"}`)

	var out bytes.Buffer
	err := seed(context.Background(), backend.NewClient(fake.BaseURL()), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `create source "LinkedIn decoy"`)
	assert.NotContains(t, out.String(), "Campaign")
}
