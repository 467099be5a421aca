package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/aeveltstra/lammpster/constants"
	"github.com/aeveltstra/lammpster/internal/entity"
)

// A cached profile must be a flat object of string-or-null values. Anything
// else on disk is treated as corrupt and downgraded to a miss.
const entrySchema = `{
	"type": "object",
	"additionalProperties": {"type": ["string", "null"]}
}`

var profileSchema = jsonschema.MustCompileString("profile-cache.json", entrySchema)

// Cache persists profiles as one JSON file per case so repeated runs skip
// the store round-trip. It is a best-effort acceleration layer: every I/O
// failure logs and reads back as a miss, never as a fatal error.
type Cache struct {
	dir    string
	logger *slog.Logger
}

// New creates a cache over dir. An empty dir disables the cache entirely:
// writes return false and reads return nil without touching the file
// system.
func New(dir string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{dir: dir, logger: logger}
}

// Enabled reports whether a cache directory is configured.
func (c *Cache) Enabled() bool {
	return c != nil && c.dir != ""
}

// TryWrite persists the profile under its sanitized case identifier.
// Returns whether an entry was written; failures are logged, not returned.
func (c *Cache) TryWrite(p *entity.Profile) bool {
	if !c.Enabled() || p == nil {
		return false
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		c.logger.Warn("cannot create cache directory", "dir", c.dir, "error", err)
		return false
	}
	path := c.entryPath(p.CaseID())
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		c.logger.Warn("cannot serialize profile for cache", "path", path, "error", err)
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.logger.Warn("cannot write cache entry", "path", path, "error", err)
		return false
	}
	c.logger.Info("profile cached", "path", path)
	return true
}

// TryRead loads the profile cached under identifier. A missing, unreadable,
// malformed, or schema-violating entry reads as nil: a cache miss.
func (c *Cache) TryRead(identifier string) *entity.Profile {
	if !c.Enabled() || identifier == "" {
		return nil
	}
	path := c.entryPath(identifier)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("cannot read cache entry", "path", path, "error", err)
		}
		return nil
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		c.logger.Warn("cache entry is not valid JSON, ignoring", "path", path, "error", err)
		return nil
	}
	if err := profileSchema.Validate(doc); err != nil {
		c.logger.Warn("cache entry has unexpected shape, ignoring", "path", path, "error", err)
		return nil
	}
	p := entity.NewProfile()
	if err := json.Unmarshal(data, p); err != nil {
		c.logger.Warn("cannot decode cache entry, ignoring", "path", path, "error", err)
		return nil
	}
	return p
}

func (c *Cache) entryPath(identifier string) string {
	return filepath.Join(c.dir, SanitizeIdentifier(identifier)+constants.SuffixCache)
}

// SanitizeIdentifier strips every rune outside [-_a-zA-Z0-9] so an
// identifier can name a file. Idempotent. An empty result is a degenerate
// but accepted cache file name, and two identifiers that sanitize to the
// same string share an entry; that collision is a known gap.
func SanitizeIdentifier(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_':
			return r
		}
		return -1
	}, s)
}
