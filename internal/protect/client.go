// Package protect talks to the UniFi Protect integration HTTP API.
package protect

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/raoulx24/unifi-timelapse/internal/config"
)

const (
	apiBasePath    = "/proxy/protect/integration/v1"
	requestTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Client fetches camera metadata and snapshots. The underlying transport
// pool is shared across all calls and retries retryable 5xx responses with
// backoff before giving up.
type Client struct {
	baseURL     string
	apiKey      string
	allowed     []string // lowercased allow-list, empty = all
	highQuality bool
	http        *retryablehttp.Client
	log         *slog.Logger
}

func NewClient(cfg *config.Config, log *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = leveledLogger{log}
	rc.HTTPClient.Timeout = requestTimeout

	if cfg.InsecureTLS {
		// Explicit opt-in for controllers with self-signed certificates.
		if tr, ok := rc.HTTPClient.Transport.(*http.Transport); ok {
			tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
	}

	allowed := make([]string, 0, len(cfg.CameraNames))
	for _, name := range cfg.CameraNames {
		if name = strings.TrimSpace(name); name != "" {
			allowed = append(allowed, strings.ToLower(name))
		}
	}

	return &Client{
		baseURL:     "https://" + cfg.Host + apiBasePath,
		apiKey:      cfg.APIKey,
		allowed:     allowed,
		highQuality: cfg.Snapshot.HighQuality,
		http:        rc,
		log:         log,
	}
}

// ListCameras resolves the target camera set. It never fails: any transport
// or decode error is logged and an empty set is returned, which downstream
// treats as nothing to do this cycle.
func (c *Client) ListCameras(ctx context.Context) []Camera {
	body, err := c.get(ctx, c.baseURL+"/cameras")
	if err != nil {
		c.log.Error("failed to fetch cameras", "error", err)
		return nil
	}

	var cams []Camera
	if err := json.Unmarshal(body, &cams); err != nil {
		c.log.Error("failed to decode camera list", "error", err)
		return nil
	}
	return c.filter(cams)
}

// FetchSnapshot pulls one JPEG frame for the camera. Any non-200 status is a
// capture failure for this camera and cycle.
func (c *Client) FetchSnapshot(ctx context.Context, cameraID string) ([]byte, error) {
	url := c.baseURL + "/cameras/" + cameraID + "/snapshot?highQuality=" + strconv.FormatBool(c.highQuality)
	return c.get(ctx, url)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return io.ReadAll(resp.Body)
}

// filter restricts cameras to the allow-list, case-insensitively. A
// non-empty allow-list that matches nothing is logged with both name sets so
// a misconfiguration is visible, but the cycle continues with an empty set.
func (c *Client) filter(cams []Camera) []Camera {
	if len(c.allowed) == 0 {
		return cams
	}

	allowed := make(map[string]bool, len(c.allowed))
	for _, name := range c.allowed {
		allowed[name] = true
	}

	var out []Camera
	for _, cam := range cams {
		if allowed[strings.ToLower(cam.Name)] {
			out = append(out, cam)
		}
	}

	if len(out) == 0 {
		available := make([]string, 0, len(cams))
		for _, cam := range cams {
			available = append(available, cam.Name)
		}
		c.log.Warn("camera allow-list matched no cameras",
			"configured", c.allowed,
			"available", available)
	}
	return out
}

// leveledLogger adapts slog to retryablehttp's LeveledLogger.
type leveledLogger struct {
	log *slog.Logger
}

func (l leveledLogger) Error(msg string, kv ...any) { l.log.Error(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.log.Warn(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...any)  { l.log.Debug(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...any) { l.log.Debug(msg, kv...) }
