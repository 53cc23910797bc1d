package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wikid82/snare/internal/services"
)

func TestListenerHandler(t *testing.T) {
	c := newConsole(t)

	w := c.do(t, http.MethodPost, "/console/v1/listener", map[string]interface{}{
		"name": "linkedin profile", "type": 2, "email": "bait@example.com", "url": "https://ignored.example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]interface{}
	decode(t, w, &created)
	assert.Equal(t, "bait@example.com", created["email"])
	assert.NotContains(t, created, "url")

	w = c.do(t, http.MethodGet, "/console/v1/listener", nil)
	var rows []services.ListenerRow
	decode(t, w, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "Social", rows[1].TypeName)

	w = c.do(t, http.MethodGet, "/console/v1/listener/create", nil)
	var form services.ListenerForm
	decode(t, w, &form)
	assert.Equal(t, "Create Listener", form.Title)

	w = c.do(t, http.MethodPut, fmt.Sprintf("/console/v1/listener/%d", c.listener.ID), map[string]interface{}{"name": "", "type": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(t, http.MethodDelete, fmt.Sprintf("/console/v1/listener/%d", c.listener.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSourceHandler(t *testing.T) {
	c := newConsole(t)

	w := c.do(t, http.MethodGet, "/console/v1/source", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "pastebin-secret")
	assert.Contains(t, w.Body.String(), "1234")

	w = c.do(t, http.MethodGet, fmt.Sprintf("/console/v1/source/%d/edit", c.source.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var form services.SourceForm
	decode(t, w, &form)
	assert.Equal(t, fmt.Sprintf("Edit Source %d", c.source.ID), form.Title)
	assert.Equal(t, "pastebin-secret-1234", form.Source.APIKey())

	w = c.do(t, http.MethodPost, "/console/v1/source", map[string]interface{}{"name": "fb", "type": 1, "email": "x@example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = c.do(t, http.MethodPost, "/console/v1/source", map[string]interface{}{"name": "bad", "type": 42})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid source type")

	c.fake.Fail(http.MethodDelete, fmt.Sprintf("/source/%d", c.source.ID), http.StatusConflict, `{"error":"source is used by a honeypot"}`)
	w = c.do(t, http.MethodDelete, fmt.Sprintf("/console/v1/source/%d", c.source.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "source is used by a honeypot")
}
