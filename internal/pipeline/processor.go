package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/aeveltstra/lammpster/constants"
	"github.com/aeveltstra/lammpster/internal/cache"
	"github.com/aeveltstra/lammpster/internal/common"
	"github.com/aeveltstra/lammpster/internal/entity"
	"github.com/aeveltstra/lammpster/internal/profile"
	"github.com/aeveltstra/lammpster/internal/render"
	"github.com/aeveltstra/lammpster/internal/store"
)

// Processor runs the poster pipeline for one case: cache lookup, store
// lookup on a miss, field mapping, cache write, then one render per
// configured output channel. Sequential and single-threaded; callers run
// one instance at a time per configuration and cache directory.
type Processor struct {
	cfg       *common.Config
	grid      *store.Grid
	cache     *cache.Cache
	posters   *render.PosterWriter
	mapping   entity.FieldMapping
	derived   map[string]string
	headerRow int
	logger    *slog.Logger
}

// NewProcessor wires the pipeline from the loaded configuration and an
// opened store grid. The field mapping resolves here, once per run.
func NewProcessor(cfg *common.Config, grid *store.Grid, profileCache *cache.Cache, posters *render.PosterWriter, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	mapping := entity.NewFieldMapping(cfg.Section("profile_map"))
	if len(mapping) == 0 {
		return nil, errors.New("missing or empty profile_map configuration section; check the manual")
	}
	return &Processor{
		cfg:       cfg,
		grid:      grid,
		cache:     profileCache,
		posters:   posters,
		mapping:   mapping,
		derived:   cfg.Section("profile_derived"),
		headerRow: cfg.EntryInt("sheet", "page_column_names_row", 1),
		logger:    logger,
	}, nil
}

// Run produces the posters for caseID. A channel that fails to render is
// reported and skipped; the remaining channels still run. The returned
// error covers failures before rendering starts: an unresolvable case
// identifier or an unusable template configuration.
func (pr *Processor) Run(ctx context.Context, caseID string) error {
	logger := pr.logger.With("run_id", uuid.NewString(), constants.ProfileKeyCaseID, caseID)
	logger.Info("creating output for profile")

	p := pr.cache.TryRead(caseID)
	if p != nil {
		logger.Info("found profile in cache")
	} else {
		logger.Info("no cached profile, reaching out to the data store")
		rowIndex := pr.grid.FindRowIndex(caseID)
		if rowIndex == 0 {
			return fmt.Errorf("no case found with id %s; use --list-column-values to find existing case identifiers", caseID)
		}
		logger.Info("found case, creating profile", "row", rowIndex)
		accessor := profile.NewGridAccessor(pr.grid, pr.headerRow)
		p = profile.Create(accessor, rowIndex, pr.mapping)
		if p == nil {
			return fmt.Errorf("could not build a profile for case %s", caseID)
		}
		profile.ApplyDerived(p, pr.derived, time.Now(), logger)
		pr.cache.TryWrite(p)
	}

	channels := pr.cfg.Section("input_templates")
	if len(channels) == 0 {
		return errors.New("missing input_templates configuration section; check the manual")
	}
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)

	logger.Info("generating and saving posters", "channels", len(names))
	for _, channel := range names {
		if err := pr.posters.Create(ctx, p, channel, channels[channel]); err != nil {
			logger.Error("poster generation failed", "channel", channel, "error", err)
			continue
		}
		logger.Info("poster generated", "channel", channel)
	}
	logger.Info("done", "output_folder", pr.posters.OutputFolder)
	return nil
}
