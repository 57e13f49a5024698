package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/raml2obj/enricher"
)

// specInput represents the three ways a RAML document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a RAML file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a RAML document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline RAML document content"`
}

// parseFlags are the enrichment settings that change the parse result.
type parseFlags struct {
	normalizeTypes bool
	strictIDs      bool
}

// defaultFlags returns the flags configured by environment variables,
// with normalize overriding the normalization default when set.
func defaultFlags(normalize *bool) parseFlags {
	flags := parseFlags{normalizeTypes: cfg.NormalizeTypes, strictIDs: cfg.StrictIDs}
	if normalize != nil {
		flags.normalizeTypes = *normalize
	}
	return flags
}

func (f parseFlags) String() string {
	return fmt.Sprintf("n=%t,s=%t", f.normalizeTypes, f.strictIDs)
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *enricher.Result
	insertAt  time.Time
	expiresAt time.Time
}

// specCacheStore provides a session-scoped cache for enriched documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string. Cached documents are
// shared between tool calls and must not be mutated.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *enricher.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.result
	}
	return nil
}

// putWithTTL stores a result with a specific TTL, evicting the least
// recently used entry if at capacity.
func (c *specCacheStore) putWithTTL(key string, result *enricher.Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// It is safe to call multiple times; only the first call spawns a sweeper.
// It stops when ctx is cancelled.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input and flags.
// Returns the empty string when the input cannot be cached.
func makeCacheKey(s specInput, flags parseFlags) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d:%s", absPath, info.ModTime().UnixNano(), flags)
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s:%s", hex.EncodeToString(h[:]), flags)
	case s.URL != "":
		return fmt.Sprintf("url:%s:%s", s.URL, flags)
	default:
		return ""
	}
}

// resolve loads and enriches the document from whichever input was
// provided, using the cache for repeated calls.
func (s specInput) resolve(ctx context.Context, flags parseFlags) (*enricher.Result, error) {
	count := 0
	for _, set := range []bool{s.File != "", s.URL != "", s.Content != ""} {
		if set {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RAML2OBJ_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s, flags)
		switch {
		case s.File != "":
			ttl = cfg.CacheFileTTL
		case s.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := []enricher.Option{
		enricher.WithNormalizeDeclaredTypes(flags.normalizeTypes),
		enricher.WithStrictIDs(flags.strictIDs),
	}
	if !cfg.AllowPrivateIPs {
		// Includes are fetched with this client too, whatever the input kind.
		opts = append(opts, enricher.WithHTTPClient(newSafeHTTPClient()))
	}
	switch {
	case s.File != "":
		opts = append(opts, enricher.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, enricher.WithFilePath(s.URL))
	case s.Content != "":
		opts = append(opts, enricher.WithReader(strings.NewReader(s.Content)))
	}

	result, err := enricher.ParseWithOptions(ctx, opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		specCache.putWithTTL(key, result, ttl)
	}

	return result, nil
}
