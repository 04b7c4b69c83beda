package macro

import (
	"context"
	"math/rand/v2"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/benjaminschreck/go-mailmacro/pkg/macro/probe"
)

// Engine expands placeholder tokens in letter text.
// Use New() to create a new engine instance.
type Engine struct {
	config  *Config
	cache   *TokenCache
	probe   probe.Probe
	locale  *probe.Locale
	ip      Lookup
	weather Lookup
	aliases []Alias
	rand    randomSource
	logger  *Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithProbe sets where device, display and time signals come from.
func WithProbe(p probe.Probe) Option {
	return func(e *Engine) { e.probe = p }
}

// WithLocale overrides the locale chosen by Config.Locale. A nil locale
// keeps the current one.
func WithLocale(loc *probe.Locale) Option {
	return func(e *Engine) {
		if loc != nil {
			e.locale = loc
		}
	}
}

// WithLookups replaces the IP and weather services. A nil lookup always
// falls back.
func WithLookups(ip, weather Lookup) Option {
	return func(e *Engine) {
		e.ip = ip
		e.weather = weather
	}
}

// WithHTTPClient points the default lookups at a custom client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Engine) {
		e.ip = &IPLookup{URL: e.config.IPLookupURL, Client: client}
		e.weather = &WeatherLookup{URL: e.config.WeatherLookupURL, Client: client}
	}
}

// WithAliases appends derived booleans to the shorthand logic view.
func WithAliases(aliases ...Alias) Option {
	return func(e *Engine) { e.aliases = append(e.aliases, aliases...) }
}

// WithRandSource makes Rand, Coin and Dice draw from src.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) { e.rand = newLockedSource(src) }
}

// WithLogger sets the engine's logger.
func WithLogger(l *Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine from the global configuration.
func New(opts ...Option) *Engine {
	return NewWithConfig(GetGlobalConfig(), opts...)
}

// NewWithConfig creates an engine with a custom configuration. Unset fields
// take their defaults.
func NewWithConfig(config *Config, opts ...Option) *Engine {
	config = NewConfigWithDefaults(config)
	e := &Engine{
		config:  config,
		cache:   NewTokenCache(CacheConfig{MaxSize: config.CacheMaxSize, TTL: config.CacheTTL}),
		probe:   probe.Static{},
		locale:  probe.LookupLocale(config.Locale),
		aliases: append([]Alias(nil), DefaultAliases...),
		rand:    globalSource{},
		logger:  GetLogger(),
	}
	e.ip = &IPLookup{URL: config.IPLookupURL}
	e.weather = &WeatherLookup{URL: config.WeatherLookupURL}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Derive returns a copy of e with opts applied on top. The copy shares the
// token cache and random source, so per-request engines stay cheap.
func (e *Engine) Derive(opts ...Option) *Engine {
	derived := *e
	derived.aliases = append([]Alias(nil), e.aliases...)
	for _, opt := range opts {
		opt(&derived)
	}
	return &derived
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Expand replaces every recognized placeholder in text. It never fails:
// missing values become empty, failed lookups become their fallback label and
// unrecognized placeholders are kept as written. Lookups stop when ctx is done.
func (e *Engine) Expand(ctx context.Context, text string, record Record) string {
	if text == "" {
		return ""
	}
	if ctx == nil {
		ctx = context.Background()
	}

	e.logger.DebugExpansion(text, record)

	tokens := e.cache.Tokenize(text)
	x := e.newExpansion(ctx, record)
	x.prefetch(tokens)
	return x.render(tokens)
}

// Job is one letter for ExpandAll.
type Job struct {
	Text   string
	Record Record
}

// ExpandAll expands jobs concurrently, at most Config.MaxConcurrency at a
// time. Results are in job order.
func (e *Engine) ExpandAll(ctx context.Context, jobs []Job) []string {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]string, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.MaxConcurrency)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = e.Expand(gctx, job.Text, job.Record)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Expand expands text with a lazily created engine built from the global
// configuration. Without a probe it classifies an empty user agent.
func Expand(ctx context.Context, text string, record Record) string {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine.Expand(ctx, text, record)
}
