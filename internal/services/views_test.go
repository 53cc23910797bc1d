package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/backend/backendtest"
	"github.com/Wikid82/snare/internal/dashboard"
	"github.com/Wikid82/snare/internal/models"
)

type fixture struct {
	fake     *backendtest.Server
	client   *backend.Client
	listener models.Listener
	source   models.Source
	campaign models.Campaign
	hit      models.Hit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fake := backendtest.NewServer(t)

	l := models.NewListener("portal", models.ListenerTypeLogin)
	l.Target = models.LoginPage{URL: "https://portal.example.com"}
	listener := fake.AddListener(l)

	s := models.NewSource("pastes", models.SourceTypePastebin)
	s.Settings = models.PastebinFeed{APIKey: "pastebin-secret-1234"}
	source := fake.AddSource(s)

	campaign := fake.AddCampaign(models.Campaign{
		Name:      "alpha",
		Honeypots: []models.Honeypot{{Name: "o365", ListenerID: listener.ID, SourceID: source.ID}},
	})
	hit := fake.AddHit(models.Hit{
		IPAddress:  "198.51.100.4",
		Type:       models.HitTypeLogin,
		SourceID:   source.ID,
		CampaignID: campaign.ID,
		HoneypotID: campaign.Honeypots[0].ID,
	})

	return &fixture{fake: fake, client: backend.NewClient(fake.BaseURL()), listener: listener, source: source, campaign: campaign, hit: hit}
}

func TestFormTitle(t *testing.T) {
	assert.Equal(t, "Create Campaign", formTitle(FormCreate, "Campaign", 0))
	assert.Equal(t, "View Campaign 3", formTitle(FormView, "Campaign", 3))
	assert.Equal(t, "Edit Listener 7", formTitle(FormEdit, "Listener", 7))
}

func TestCampaignService_ListAndGet(t *testing.T) {
	f := newFixture(t)
	svc := NewCampaignService(f.client)
	ctx := context.Background()

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alpha", rows[0].Name)
	assert.Equal(t, 1, rows[0].Honeypots)

	detail, err := svc.Get(ctx, f.campaign.ID)
	require.NoError(t, err)
	require.Len(t, detail.Honeypots, 1)
	assert.Equal(t, "portal", detail.Honeypots[0].Listener)
	assert.Equal(t, "pastes", detail.Honeypots[0].Source)

	// a removed listener shows as the placeholder
	require.NoError(t, f.client.DeleteListener(ctx, f.listener.ID))
	detail, err = svc.Get(ctx, f.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, dashboard.DeletedPlaceholder, detail.Honeypots[0].Listener)
}

func TestCampaignService_Form(t *testing.T) {
	f := newFixture(t)
	svc := NewCampaignService(f.client)
	ctx := context.Background()

	form, err := svc.Form(ctx, FormCreate, 0)
	require.NoError(t, err)
	assert.Equal(t, "Create Campaign", form.Title)
	assert.Equal(t, f.listener.ID, form.HoneypotTemplate.ListenerID)
	assert.Equal(t, f.source.ID, form.HoneypotTemplate.SourceID)
	assert.NotNil(t, form.Campaign.Honeypots)

	form, err = svc.Form(ctx, FormEdit, f.campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edit Campaign 3", form.Title)
	assert.Equal(t, "alpha", form.Campaign.Name)

	_, err = svc.Form(ctx, FormMode("bogus"), 0)
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = svc.Form(ctx, FormView, 999)
	assert.True(t, backend.IsNotFound(err))
}

func TestCampaignService_CreateValidates(t *testing.T) {
	f := newFixture(t)
	svc := NewCampaignService(f.client)
	before := len(f.fake.Requests())

	_, err := svc.Create(context.Background(), models.Campaign{Name: "beta", Honeypots: []models.Honeypot{{Name: "x"}}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, models.ErrInvalidHoneypot)
	assert.Len(t, f.fake.Requests(), before, "invalid input never reaches the backend")

	created, err := svc.Create(context.Background(), models.Campaign{
		Name:      "beta",
		Honeypots: []models.Honeypot{{Name: "linkedin", ListenerID: f.listener.ID, SourceID: f.source.ID}},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestCampaignService_DeleteLeavesOtherLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	campaigns := NewCampaignService(f.client)
	listeners := NewListenerService(f.client)
	sources := NewSourceService(f.client)

	listenersBefore, err := listeners.List(ctx)
	require.NoError(t, err)
	sourcesBefore, err := sources.List(ctx)
	require.NoError(t, err)

	require.NoError(t, campaigns.Delete(ctx, f.campaign.ID))

	rows, err := campaigns.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	listenersAfter, err := listeners.List(ctx)
	require.NoError(t, err)
	sourcesAfter, err := sources.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, listenersBefore, listenersAfter)
	assert.Equal(t, sourcesBefore, sourcesAfter)
}

func TestCampaignService_UpdateSetsHoneypotOwner(t *testing.T) {
	f := newFixture(t)
	svc := NewCampaignService(f.client)

	c := f.campaign
	c.Honeypots = append(c.Honeypots, models.Honeypot{Name: "second", ListenerID: f.listener.ID, SourceID: f.source.ID})
	updated, err := svc.Update(context.Background(), f.campaign.ID, c)
	require.NoError(t, err)
	require.Len(t, updated.Honeypots, 2)
	for _, hp := range updated.Honeypots {
		assert.Equal(t, f.campaign.ID, hp.CampaignID)
	}
}

func TestListenerService(t *testing.T) {
	f := newFixture(t)
	svc := NewListenerService(f.client)
	ctx := context.Background()

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Login", rows[0].TypeName)
	assert.Equal(t, "https://portal.example.com", rows[0].Target)

	form, err := svc.Form(ctx, FormCreate, 0)
	require.NoError(t, err)
	assert.Equal(t, "Create Listener", form.Title)
	assert.Equal(t, models.ListenerTypeLogin, form.Listener.Type)
	assert.Len(t, form.Types, 2)

	social := models.NewListener("profile", models.ListenerTypeSocial)
	social.Target = models.SocialProfile{Email: "bait@example.com"}
	created, err := svc.Create(ctx, social)
	require.NoError(t, err)
	assert.Equal(t, "bait@example.com", created.Email())

	_, err = svc.Create(ctx, models.Listener{Name: "bad", Type: 9})
	assert.ErrorIs(t, err, models.ErrInvalidListenerType)

	// switching type drops the old target
	created.Type = models.ListenerTypeLogin
	updated, err := svc.Update(ctx, created.ID, *created)
	require.NoError(t, err)
	assert.Equal(t, "", updated.Email())

	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestSourceService(t *testing.T) {
	f := newFixture(t)
	svc := NewSourceService(f.client)
	ctx := context.Background()

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Pastebin", rows[0].TypeName)
	assert.NotContains(t, rows[0].APIKey, "pastebin-secret")
	assert.Contains(t, rows[0].APIKey, "1234")

	src, err := svc.Get(ctx, f.source.ID)
	require.NoError(t, err)
	assert.Equal(t, "pastebin-secret-1234", src.APIKey())

	form, err := svc.Form(ctx, FormView, f.source.ID)
	require.NoError(t, err)
	assert.Equal(t, "View Source 2", form.Title)
	assert.Len(t, form.Types, 3)

	_, err = svc.Create(ctx, models.Source{Type: models.SourceTypeFacebook})
	assert.ErrorIs(t, err, models.ErrNameRequired)
}

func TestHitService(t *testing.T) {
	f := newFixture(t)
	svc := NewHitService(f.client)
	ctx := context.Background()

	orphan := f.fake.AddHit(models.Hit{IPAddress: "192.0.2.1", Type: models.HitTypeSocial, SourceID: 404})

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "pastes", rows[0].Source)
	assert.Equal(t, "alpha", rows[0].Campaign)
	assert.Equal(t, "o365", rows[0].Honeypot)
	assert.Equal(t, dashboard.DeletedPlaceholder, rows[1].Source)
	assert.Equal(t, "", rows[1].Campaign)

	row, err := svc.Get(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Social", row.TypeName)

	require.NoError(t, svc.Delete(ctx, orphan.ID))
	_, err = svc.Get(ctx, orphan.ID)
	assert.True(t, backend.IsNotFound(err))
}

func TestHitService_BackendFailure(t *testing.T) {
	f := newFixture(t)
	f.fake.Fail(http.MethodGet, "/source", http.StatusServiceUnavailable, "")

	_, err := NewHitService(f.client).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Service Unavailable", backend.DisplayMessage(err))
}
