package macro

import (
	"context"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-mailmacro/pkg/macro/probe"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		arg    string
		lo, hi int
		ok     bool
	}{
		{"1-10", 1, 10, true},
		{"5-5", 5, 5, true},
		{"10-1", 1, 10, true},
		{"0-0", 0, 0, true},
		{"10", 0, 0, false},
		{"1-2-3", 0, 0, false},
		{"5-", 0, 0, false},
		{"-5", 0, 0, false},
		{"", 0, 0, false},
		{"99999999999999999999-1", 0, 0, false},
	}

	for _, tt := range tests {
		lo, hi, ok := parseRange(tt.arg)
		if lo != tt.lo || hi != tt.hi || ok != tt.ok {
			t.Errorf("parseRange(%q) = (%d, %d, %v), want (%d, %d, %v)", tt.arg, lo, hi, ok, tt.lo, tt.hi, tt.ok)
		}
	}
}

func TestRandDegenerateRange(t *testing.T) {
	engine := newTestEngine(t, desktopProbe)
	for i := 0; i < 50; i++ {
		require.Equal(t, "5", engine.Expand(context.Background(), "/{Rand:5-5}", nil))
	}
}

func TestRandBounds(t *testing.T) {
	engine := newTestEngine(t, desktopProbe)

	tests := []struct {
		input  string
		lo, hi int
	}{
		{"/{Rand}", 1, 100},
		{"/{Rand:3-7}", 3, 7},
		{"/{Rand:7-3}", 3, 7},
		{"/{Rand:1-2-3}", 1, 100},
		{"/{Rand:42}", 1, 100},
		{"/{Dice}", 1, 6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			seen := map[int]bool{}
			for i := 0; i < 500; i++ {
				n, err := strconv.Atoi(engine.Expand(context.Background(), tt.input, nil))
				require.NoError(t, err)
				require.GreaterOrEqual(t, n, tt.lo)
				require.LessOrEqual(t, n, tt.hi)
				seen[n] = true
			}
			if tt.hi-tt.lo < 10 {
				assert.Len(t, seen, tt.hi-tt.lo+1, "every value in a small range should appear")
			}
		})
	}
}

func TestCoinIsFair(t *testing.T) {
	engine := newTestEngine(t, desktopProbe)

	const trials = 4000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		counts[engine.Expand(context.Background(), "/{Coin}", nil)]++
	}

	require.Len(t, counts, 2)
	heads, tails := counts[probe.Korean.CoinHeads], counts[probe.Korean.CoinTails]
	assert.Equal(t, trials, heads+tails)
	assert.InDelta(t, trials/2, heads, trials*0.05)
}

func TestCoinLocale(t *testing.T) {
	engine := newTestEngine(t, desktopProbe, WithLocale(probe.English))
	got := engine.Expand(context.Background(), "/{Coin}", nil)
	assert.Contains(t, []string{"Heads", "Tails"}, got)
}

func TestRandSeeded(t *testing.T) {
	a := newTestEngine(t, desktopProbe, WithRandSource(rand.NewPCG(7, 7)))
	b := newTestEngine(t, desktopProbe, WithRandSource(rand.NewPCG(7, 7)))

	text := "/{Rand} /{Dice} /{Coin} /{Rand:1-1000}"
	assert.Equal(t, a.Expand(context.Background(), text, nil), b.Expand(context.Background(), text, nil))
}
