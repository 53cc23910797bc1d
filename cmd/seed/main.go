package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Wikid82/snare/internal/backend"
	"github.com/Wikid82/snare/internal/config"
	"github.com/Wikid82/snare/internal/models"
)

// seed fills a development backend with a small, linked set of listeners,
// sources and campaigns.
func seed(ctx context.Context, client *backend.Client, out io.Writer) error {
	listeners := []models.Listener{
		withTarget(models.NewListener("Office 365 portal", models.ListenerTypeLogin), models.LoginPage{URL: "https://login.example-corp.com"}),
		withTarget(models.NewListener("VPN gateway", models.ListenerTypeLogin), models.LoginPage{URL: "https://vpn.example-corp.com"}),
		withTarget(models.NewListener("Recruiter persona", models.ListenerTypeSocial), models.SocialProfile{Email: "jane.recruiter@example-corp.com"}),
	}
	var listenerIDs []uint
	for _, l := range listeners {
		created, err := client.CreateListener(ctx, l)
		if err != nil {
			return fmt.Errorf("create listener %q: %w", l.Name, err)
		}
		listenerIDs = append(listenerIDs, created.ID)
		fmt.Fprintf(out, "✓ Listener %q (id %d)\n", created.Name, created.ID)
	}

	sources := []models.Source{
		withSettings(models.NewSource("LinkedIn decoy", models.SourceTypeLinkedIn), models.SocialAccount{Email: "it-helpdesk@example-corp.com"}),
		withSettings(models.NewSource("Facebook decoy", models.SourceTypeFacebook), models.SocialAccount{Email: "hr@example-corp.com"}),
		withSettings(models.NewSource("Paste leaks", models.SourceTypePastebin), models.PastebinFeed{APIKey: "dev-pastebin-key"}),
	}
	var sourceIDs []uint
	for _, s := range sources {
		created, err := client.CreateSource(ctx, s)
		if err != nil {
			return fmt.Errorf("create source %q: %w", s.Name, err)
		}
		sourceIDs = append(sourceIDs, created.ID)
		fmt.Fprintf(out, "✓ Source %q (id %d)\n", created.Name, created.ID)
	}

	campaigns := []models.Campaign{
		{
			Name: "Credential phishing Q3",
			Honeypots: []models.Honeypot{
				{Name: "O365 via LinkedIn", ListenerID: listenerIDs[0], SourceID: sourceIDs[0]},
				{Name: "VPN via paste", ListenerID: listenerIDs[1], SourceID: sourceIDs[2]},
			},
		},
		{
			Name: "Social engineering",
			Honeypots: []models.Honeypot{
				{Name: "Recruiter via Facebook", ListenerID: listenerIDs[2], SourceID: sourceIDs[1]},
			},
		},
	}
	for _, c := range campaigns {
		created, err := client.CreateCampaign(ctx, c)
		if err != nil {
			return fmt.Errorf("create campaign %q: %w", c.Name, err)
		}
		fmt.Fprintf(out, "✓ Campaign %q (id %d, %d honeypots)\n", created.Name, created.ID, len(created.Honeypots))
	}
	return nil
}

func withTarget(l models.Listener, target models.ListenerTarget) models.Listener {
	l.Target = target
	return l
}

func withSettings(s models.Source, settings models.SourceSettings) models.Source {
	s.Settings = settings
	return s
}

func main() {
	cfg := config.Defaults()
	if v := os.Getenv("SNARE_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	backendURL := flag.String("backend", cfg.BackendURL, "honeypot backend base URL")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := backend.NewClient(*backendURL, backend.WithTimeout(cfg.BackendTimeout))
	if err := seed(ctx, client, os.Stdout); err != nil {
		log.Fatalf("seed backend: %v", err)
	}
	fmt.Println("\n✓ Backend seeded successfully")
}
