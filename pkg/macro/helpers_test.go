package macro

import (
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/benjaminschreck/go-mailmacro/pkg/macro/probe"
)

const (
	uaChromeWindows = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaSafariIPhone  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	uaSafariMac     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15"
)

// fixedTime is a Sunday afternoon.
var fixedTime = time.Date(2026, time.October, 18, 15, 4, 5, 0, time.UTC)

var (
	desktopProbe = probe.Static{UA: uaChromeWindows, Width: 1920, Height: 1080, Scheme: probe.SchemeDark, Time: fixedTime}
	mobileProbe  = probe.Static{UA: uaSafariIPhone, Width: 390, Height: 844, Scheme: probe.SchemeLight, Time: fixedTime}
	macProbe     = probe.Static{UA: uaSafariMac, Width: 2560, Height: 1600, Scheme: probe.SchemeLight, Time: fixedTime}
)

// newTestEngine builds a quiet, seeded engine whose lookups always fail
// unless opts replace them.
func newTestEngine(t *testing.T, p probe.Probe, opts ...Option) *Engine {
	t.Helper()
	config := DefaultConfig()
	config.LookupTimeout = 2 * time.Second
	base := []Option{
		WithProbe(p),
		WithLookups(nil, nil),
		WithRandSource(rand.NewPCG(1, 2)),
		WithLogger(NewLogger(io.Discard, LogOff)),
	}
	return NewWithConfig(config, append(base, opts...)...)
}
