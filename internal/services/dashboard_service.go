package services

import (
	"context"
	"io"
	"time"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/dashboard"
	"github.com/Wikid82/snare/internal/metrics"
)

// DashboardView is a report plus the error that cut its load short, if any.
type DashboardView struct {
	Report dashboard.Report `json:"report"`
	// Error is set when a fetch failed; Report then covers the records
	// fetched before the failure.
	Error string `json:"error,omitempty"`
}

type DashboardService struct {
	fetcher dashboard.Fetcher
}

func NewDashboardService(f dashboard.Fetcher) *DashboardService {
	return &DashboardService{fetcher: f}
}

// Build loads the dashboard data and aggregates it. A failed load still
// returns a view built from the partial data, along with the error.
func (s *DashboardService) Build(ctx context.Context) (*DashboardView, error) {
	ds, err := dashboard.Load(ctx, s.fetcher)
	metrics.ObserveDashboardBuild(err == nil)

	view := &DashboardView{Report: dashboard.BuildReport(ds)}
	if err != nil {
		view.Error = backend.DisplayMessage(err)
	}
	return view, err
}

// WritePDF renders the current dashboard. It refuses to render a partial
// report.
func (s *DashboardService) WritePDF(ctx context.Context, w io.Writer) error {
	view, err := s.Build(ctx)
	if err != nil {
		return err
	}
	return dashboard.RenderPDF(view.Report, time.Now(), w)
}
