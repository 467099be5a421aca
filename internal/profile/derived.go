package profile

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aeveltstra/lammpster/internal/entity"
)

// Derivation function names recognized in the profile_derived section.
const derivationYearsSince = "years_since"

// ApplyDerived adds configuration-driven computed fields to a freshly
// mapped profile. Each entry in the derived section reads as
//
//	outputKey = function:sourceKey
//
// where function names one of the recognized derivations. years_since
// yields the whole years elapsed between the integer year stored under
// sourceKey and now, which is how an age field derives from a birth year.
// Unknown functions and unparsable source values log a warning and leave
// the output key empty; derivations never fail a run.
func ApplyDerived(p *entity.Profile, derived map[string]string, now time.Time, logger *slog.Logger) {
	if p == nil || len(derived) == 0 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	keys := make([]string, 0, len(derived))
	for k := range derived {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fn, source, ok := strings.Cut(derived[key], ":")
		if !ok {
			logger.Warn("derived field entry is not function:source_key, skipping",
				"key", key, "entry", derived[key])
			continue
		}
		switch fn {
		case derivationYearsSince:
			p.Set(key, yearsSince(p.Get(source), now, key, logger))
		default:
			logger.Warn("unknown derivation function, skipping", "key", key, "function", fn)
		}
	}
}

func yearsSince(raw string, now time.Time, key string, logger *slog.Logger) *string {
	if raw == "" {
		return nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		logger.Warn("derived field source is not a year", "key", key, "value", raw)
		return nil
	}
	value := strconv.Itoa(now.Year() - year)
	return &value
}
