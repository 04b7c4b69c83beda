package macro

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxLookupBody caps how much of a lookup response is read.
const maxLookupBody = 64 << 10

// Lookup fetches one value from an external service.
type Lookup interface {
	Lookup(ctx context.Context) (string, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context) (string, error)

func (f LookupFunc) Lookup(ctx context.Context) (string, error) {
	return f(ctx)
}

// IPLookup asks a JSON service such as ipify for the caller's public address.
type IPLookup struct {
	URL    string
	Client *http.Client
}

func (l *IPLookup) Lookup(ctx context.Context) (string, error) {
	body, err := get(ctx, l.Client, l.URL)
	if err != nil {
		return "", NewLookupError("ip", l.URL, err)
	}

	var payload struct {
		IP string `json:"ip"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", NewLookupError("ip", l.URL, WithContext(err, "decode response", map[string]interface{}{"bytes": len(body)}))
	}
	if payload.IP == "" {
		return "", NewLookupError("ip", l.URL, errors.New("response has no ip field"))
	}
	return payload.IP, nil
}

// WeatherLookup reads a one-line "<condition> <temperature>" report.
type WeatherLookup struct {
	URL    string
	Client *http.Client
}

func (l *WeatherLookup) Lookup(ctx context.Context) (string, error) {
	body, err := get(ctx, l.Client, l.URL)
	if err != nil {
		return "", NewLookupError("weather", l.URL, err)
	}
	report := strings.TrimSpace(string(body))
	if report == "" {
		return "", NewLookupError("weather", l.URL, errors.New("empty response"))
	}
	return report, nil
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLookupBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// lookupResult memoizes one lookup for the lifetime of an expansion.
type lookupResult struct {
	name     string
	lookup   Lookup
	fallback string
	done     bool
	value    string
}

// resolve runs the lookup once. Any failure, including a missing lookup,
// yields the fallback label.
func (r *lookupResult) resolve(ctx context.Context, e *Engine) string {
	if r.done {
		return r.value
	}
	r.done = true
	r.value = r.fallback

	if r.lookup == nil {
		return r.value
	}
	if e.config.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.LookupTimeout)
		defer cancel()
	}

	value, err := r.lookup.Lookup(ctx)
	if err != nil {
		e.logger.WithFields(Fields{
			"lookup":   r.name,
			"fallback": r.fallback,
		}).Warn("lookup failed: %v", err)
		return r.value
	}
	r.value = value
	return r.value
}
