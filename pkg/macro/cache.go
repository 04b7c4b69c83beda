package macro

import (
	"container/list"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the token cache
type CacheConfig struct {
	// MaxSize is the maximum number of texts to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached entries. 0 means no expiration.
	TTL time.Duration
}

// TokenCache keeps the lexed form of recently expanded texts, so that a
// letter viewed many times is only tokenized once.
type TokenCache struct {
	mu     sync.Mutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
	now    func() time.Time
}

type cacheEntry struct {
	key     string
	tokens  []Token
	expiry  time.Time
	element *list.Element
}

// NewTokenCache creates a token cache with the given configuration
func NewTokenCache(config CacheConfig) *TokenCache {
	return &TokenCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
		now:    time.Now,
	}
}

// Tokenize returns the cached tokens for text, lexing and storing them on a miss.
func (tc *TokenCache) Tokenize(text string) []Token {
	if tc == nil || tc.config.MaxSize <= 0 {
		return Tokenize(text)
	}
	if tokens, ok := tc.Get(text); ok {
		return tokens
	}
	tokens := Tokenize(text)
	tc.Set(text, tokens)
	return tokens
}

// Get retrieves tokens from the cache
func (tc *TokenCache) Get(key string) ([]Token, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	entry, exists := tc.cache[key]
	if !exists {
		return nil, false
	}
	if tc.config.TTL > 0 && tc.now().After(entry.expiry) {
		tc.removeLocked(entry)
		return nil, false
	}

	tc.lru.MoveToFront(entry.element)
	return entry.tokens, true
}

// Set stores tokens, evicting the least recently used entry when full
func (tc *TokenCache) Set(key string, tokens []Token) {
	if tc.config.MaxSize <= 0 {
		return
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	if entry, exists := tc.cache[key]; exists {
		entry.tokens = tokens
		entry.expiry = tc.expiry()
		tc.lru.MoveToFront(entry.element)
		return
	}

	if tc.lru.Len() >= tc.config.MaxSize {
		if oldest := tc.lru.Back(); oldest != nil {
			tc.removeLocked(oldest.Value.(*cacheEntry))
		}
	}

	entry := &cacheEntry{
		key:    key,
		tokens: tokens,
		expiry: tc.expiry(),
	}
	entry.element = tc.lru.PushFront(entry)
	tc.cache[key] = entry
}

// Remove drops one entry
func (tc *TokenCache) Remove(key string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if entry, exists := tc.cache[key]; exists {
		tc.removeLocked(entry)
	}
}

// Clear empties the cache
func (tc *TokenCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.cache = make(map[string]*cacheEntry)
	tc.lru.Init()
}

// Len returns the number of cached texts
func (tc *TokenCache) Len() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.lru.Len()
}

func (tc *TokenCache) expiry() time.Time {
	if tc.config.TTL > 0 {
		return tc.now().Add(tc.config.TTL)
	}
	return time.Time{}
}

func (tc *TokenCache) removeLocked(entry *cacheEntry) {
	delete(tc.cache, entry.key)
	tc.lru.Remove(entry.element)
}
