package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	neturl "net/url"
	"regexp"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/containrrr/shoutrrr"

	"github.com/Wikid82/snare/internal/logger"
	"github.com/Wikid82/snare/internal/models"
	"github.com/Wikid82/snare/internal/version"
)

const (
	minimalTemplate  = `{"message": {{toJSON .Message}}, "title": {{toJSON .Title}}, "time": {{toJSON .Time}}, "event": {{toJSON .EventType}}}`
	detailedTemplate = `{"title": {{toJSON .Title}}, "message": {{toJSON .Message}}, "time": {{toJSON .Time}}, "event": {{toJSON .EventType}}, "ip_address": {{toJSON .IPAddress}}, "campaign": {{toJSON .Campaign}}, "source": {{toJSON .Source}}, "honeypot": {{toJSON .Honeypot}}, "data": {{toJSON .}}}`
)

var discordWebhookRegex = regexp.MustCompile(`^https://discord(?:app)?\.com/api/webhooks/(\d+)/([a-zA-Z0-9_-]+)`)

// shoutrrrSend is swapped in tests.
var shoutrrrSend = shoutrrr.Send

func normalizeURL(serviceType, rawURL string) string {
	if serviceType == "discord" {
		matches := discordWebhookRegex.FindStringSubmatch(rawURL)
		if len(matches) == 3 {
			return fmt.Sprintf("discord://%s@%s", matches[2], matches[1])
		}
	}
	return rawURL
}

// SendExternal delivers one alert to every enabled provider subscribed to
// eventType and waits for all deliveries. Failures are logged and joined.
func (s *NotificationService) SendExternal(eventType, title, message string, data map[string]interface{}) error {
	providers, err := s.providersFor(eventType)
	if err != nil {
		return fmt.Errorf("list notification providers: %w", err)
	}
	return s.deliver(providers, eventType, title, message, data)
}

func (s *NotificationService) deliver(providers []models.NotificationProvider, eventType, title, message string, data map[string]interface{}) error {
	payload := make(map[string]interface{}, len(data)+4)
	for k, v := range data {
		payload[k] = v
	}
	payload["Title"] = title
	payload["Message"] = message
	payload["Time"] = s.now().Format(time.RFC3339)
	payload["EventType"] = eventType

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, provider := range providers {
		wg.Add(1)
		go func(p models.NotificationProvider) {
			defer wg.Done()
			if err := sendToProvider(p, title, message, payload); err != nil {
				logger.Component("notifications").WithError(err).WithField("provider", p.Name).Warn("failed to deliver notification")
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
				mu.Unlock()
			}
		}(provider)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func sendToProvider(p models.NotificationProvider, title, message string, payload map[string]interface{}) error {
	if p.Type == "webhook" {
		return sendCustomWebhook(p, payload)
	}
	url := normalizeURL(p.Type, p.URL)
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		if _, err := validateWebhookURL(url); err != nil {
			return fmt.Errorf("invalid destination: %w", err)
		}
	}
	return shoutrrrSend(url, fmt.Sprintf("%s\n\n%s", title, message))
}

// TestProvider sends a sample alert to p without storing anything.
func (s *NotificationService) TestProvider(provider models.NotificationProvider) error {
	data := map[string]interface{}{
		"IPAddress": "203.0.113.10",
		"Campaign":  "Test Campaign",
		"Source":    "Test Source",
		"Honeypot":  "Test Honeypot",
	}
	return s.deliver([]models.NotificationProvider{provider}, "test", "Test Notification", "This is a test notification from "+version.Name, data)
}

func templateFor(p models.NotificationProvider) string {
	switch strings.ToLower(strings.TrimSpace(p.Template)) {
	case "detailed":
		return detailedTemplate
	case "minimal":
		return minimalTemplate
	default:
		if p.Config == "" {
			return minimalTemplate
		}
		return p.Config
	}
}

// RenderTemplate renders a provider's webhook body with data and returns it
// along with the parsed JSON.
func RenderTemplate(p models.NotificationProvider, data map[string]interface{}) (string, interface{}, error) {
	tmpl, err := template.New("webhook").Funcs(template.FuncMap{
		"toJSON": func(v interface{}) string {
			b, _ := json.Marshal(v)
			return string(b)
		},
	}).Parse(templateFor(p))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse webhook template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", nil, fmt.Errorf("failed to execute webhook template: %w", err)
	}

	var parsed interface{}
	if err := json.Unmarshal(body.Bytes(), &parsed); err != nil {
		return body.String(), nil, fmt.Errorf("failed to parse rendered template: %w", err)
	}
	return body.String(), parsed, nil
}

func sendCustomWebhook(p models.NotificationProvider, data map[string]interface{}) error {
	u, err := validateWebhookURL(p.URL)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}

	body, _, err := RenderTemplate(p, data)
	if err != nil {
		return err
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	// Connect to a resolved, validated IP and keep the original Host header
	// so virtual hosting still works.
	ips, err := net.LookupIP(u.Hostname())
	if err != nil || len(ips) == 0 {
		return fmt.Errorf("failed to resolve webhook host: %w", err)
	}
	var selectedIP net.IP
	for _, ip := range ips {
		if isLoopbackHost(u.Hostname()) || !isPrivateIP(ip) {
			selectedIP = ip
			break
		}
	}
	if selectedIP == nil {
		return fmt.Errorf("failed to find non-private IP for webhook host: %s", u.Hostname())
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	safeURL := &neturl.URL{
		Scheme:   u.Scheme,
		Host:     net.JoinHostPort(selectedIP.String(), port),
		Path:     u.Path,
		RawQuery: u.RawQuery,
	}
	req, err := http.NewRequest(http.MethodPost, safeURL.String(), strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Host = u.Host

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status: %d", resp.StatusCode)
	}
	return nil
}

func isLoopbackHost(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// isPrivateIP returns true for RFC1918, loopback and link-local addresses.
func isPrivateIP(ip net.IP) bool {
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}
	if ip4 := ip.To4(); ip4 != nil {
		switch {
		case ip4[0] == 10:
			return true
		case ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31:
			return true
		case ip4[0] == 192 && ip4[1] == 168:
			return true
		}
		return false
	}
	// IPv6 unique local addresses fc00::/7
	return len(ip) == net.IPv6len && ip[0]&0xfe == 0xfc
}

// validateWebhookURL parses raw and rejects non-http schemes and hosts that
// resolve to private addresses. Explicit loopback hosts are allowed.
func validateWebhookURL(raw string) (*neturl.URL, error) {
	u, err := neturl.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("missing host")
	}
	if isLoopbackHost(host) {
		return u, nil
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, fmt.Errorf("dns lookup failed: %w", err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return nil, fmt.Errorf("disallowed host IP: %s", ip.String())
		}
	}
	return u, nil
}
