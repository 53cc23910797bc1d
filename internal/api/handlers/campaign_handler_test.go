package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wikid82/snare/internal/models"
	"github.com/Wikid82/snare/internal/services"
)

func TestCampaignHandler_List(t *testing.T) {
	c := newConsole(t)

	w := c.do(t, http.MethodGet, "/console/v1/campaign", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []services.CampaignRow
	decode(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "alpha", rows[0].Name)
	assert.Equal(t, 1, rows[0].Honeypots)
}

func TestCampaignHandler_Forms(t *testing.T) {
	c := newConsole(t)

	tests := []struct {
		path  string
		title string
		mode  services.FormMode
	}{
		{"/console/v1/campaign/create", "Create Campaign", services.FormCreate},
		{fmt.Sprintf("/console/v1/campaign/%d", c.campaign.ID), fmt.Sprintf("View Campaign %d", c.campaign.ID), services.FormView},
		{fmt.Sprintf("/console/v1/campaign/%d/edit", c.campaign.ID), fmt.Sprintf("Edit Campaign %d", c.campaign.ID), services.FormEdit},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			w := c.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code)
			var form services.CampaignForm
			decode(t, w, &form)
			assert.Equal(t, tt.title, form.Title)
			assert.Equal(t, tt.mode, form.Mode)
			assert.Equal(t, c.listener.ID, form.HoneypotTemplate.ListenerID)
			assert.Equal(t, c.source.ID, form.HoneypotTemplate.SourceID)
		})
	}
}

func TestCampaignHandler_CreateUpdateDelete(t *testing.T) {
	c := newConsole(t)

	w := c.do(t, http.MethodPost, "/console/v1/campaign", models.Campaign{
		Name:      "beta",
		Honeypots: []models.Honeypot{{Name: "linkedin", ListenerID: c.listener.ID, SourceID: c.source.ID}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Campaign
	decode(t, w, &created)
	require.NotZero(t, created.ID)

	created.Name = "beta (renamed)"
	w = c.do(t, http.MethodPut, fmt.Sprintf("/console/v1/campaign/%d", created.ID), created)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Campaign
	decode(t, w, &updated)
	assert.Equal(t, "beta (renamed)", updated.Name)

	w = c.do(t, http.MethodDelete, fmt.Sprintf("/console/v1/campaign/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Campaign deleted")
}

func TestCampaignHandler_DeleteKeepsListenersAndSources(t *testing.T) {
	c := newConsole(t)

	listenersBefore := c.do(t, http.MethodGet, "/console/v1/listener", nil).Body.String()
	sourcesBefore := c.do(t, http.MethodGet, "/console/v1/source", nil).Body.String()

	w := c.do(t, http.MethodDelete, fmt.Sprintf("/console/v1/campaign/%d", c.campaign.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []services.CampaignRow
	decode(t, c.do(t, http.MethodGet, "/console/v1/campaign", nil), &rows)
	assert.Empty(t, rows)
	assert.Equal(t, listenersBefore, c.do(t, http.MethodGet, "/console/v1/listener", nil).Body.String())
	assert.Equal(t, sourcesBefore, c.do(t, http.MethodGet, "/console/v1/source", nil).Body.String())
}

func TestCampaignHandler_InvalidInput(t *testing.T) {
	c := newConsole(t)

	w := c.do(t, http.MethodPost, "/console/v1/campaign", models.Campaign{Name: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name is required")

	w = c.do(t, http.MethodGet, "/console/v1/campaign/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")

	req := c.do(t, http.MethodPut, fmt.Sprintf("/console/v1/campaign/%d", c.campaign.ID), "not an object")
	assert.Equal(t, http.StatusBadRequest, req.Code)

	assert.Empty(t, c.banners(t), "input errors do not raise banners")
}

func TestCampaignHandler_BackendErrors(t *testing.T) {
	c := newConsole(t)

	w := c.do(t, http.MethodGet, "/console/v1/campaign/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"campaign not found"}`, w.Body.String())

	c.fake.Fail(http.MethodGet, "/campaign", http.StatusInternalServerError, "")
	w = c.do(t, http.MethodGet, "/console/v1/campaign", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())

	banners := c.banners(t)
	require.Len(t, banners, 2)
	assert.Equal(t, "Failed to load campaigns", banners[0].Title)
	assert.Equal(t, models.NotificationTypeError, banners[0].Type)
}
