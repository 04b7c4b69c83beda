package macro

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/benjaminschreck/go-mailmacro/pkg/macro/probe"
)

const (
	defaultRandMin = 1
	defaultRandMax = 100
	diceSides      = 6
)

// randomSource is the subset of *rand.Rand the random tokens need.
type randomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// lockedSource makes a seeded generator safe for concurrent expansions.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedSource(src rand.Source) *lockedSource {
	return &lockedSource{r: rand.New(src)}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// parseRange reads "min-max". Reversed bounds are swapped; anything other
// than two integers separated by one dash is rejected.
func parseRange(arg string) (lo, hi int, ok bool) {
	parts := strings.Split(arg, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	// Spans that overflow int are treated as malformed.
	if hi-lo+1 <= 0 {
		return 0, 0, false
	}
	return lo, hi, true
}

// randomInRange draws uniformly from the range in arg, or from [1,100] when
// arg is empty or malformed.
func randomInRange(src randomSource, arg string) int {
	lo, hi, ok := parseRange(arg)
	if !ok {
		lo, hi = defaultRandMin, defaultRandMax
	}
	return lo + src.IntN(hi-lo+1)
}

func rollDice(src randomSource) int {
	return 1 + src.IntN(diceSides)
}

func flipCoin(src randomSource, loc *probe.Locale) string {
	if src.IntN(2) == 0 {
		return loc.CoinHeads
	}
	return loc.CoinTails
}
