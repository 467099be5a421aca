package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aeveltstra/lammpster/constants"
	"github.com/aeveltstra/lammpster/internal/entity"
)

// PosterWriter renders one output channel: it substitutes a profile into
// the channel's template, writes the SVG, and hands the result to the
// configured rasterizers. A nil rasterizer skips that format.
type PosterWriter struct {
	OutputFolder string
	FilePrefix   string
	PNG          Rasterizer
	PDF          Rasterizer
	Logger       *slog.Logger
}

// Create produces the poster artifacts for one channel. The file names
// start with the prefix, followed by the case id, "-poster-", and the
// channel name. Substitution and template-read failures are returned so
// the caller can report and move on to the next channel; rasterization
// failures only log, the SVG already being on disk.
func (w *PosterWriter) Create(ctx context.Context, p *entity.Profile, channel, templatePath string) error {
	if p == nil || channel == "" || templatePath == "" {
		return fmt.Errorf("channel %q: nothing to render", channel)
	}
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}

	body, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("channel %s: no template named %s: %w", channel, templatePath, err)
	}
	svg, err := ApplyProfileToTemplate(p, templatePath, string(body))
	if err != nil {
		return fmt.Errorf("channel %s: %w", channel, err)
	}
	if svg == "" {
		return fmt.Errorf("channel %s: template %s produced no poster contents", channel, templatePath)
	}

	base := filepath.Join(w.OutputFolder, w.FilePrefix+p.CaseID()+constants.PosterInfix+channel)
	svgPath := base + constants.SuffixSVG
	logger.Info("saving svg poster", "path", svgPath)
	if err := os.WriteFile(svgPath, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("channel %s: write %s: %w", channel, svgPath, err)
	}

	if w.PNG != nil {
		if err := w.PNG.Rasterize(ctx, svgPath, base+constants.SuffixPNG); err != nil {
			logger.Warn("png rasterization failed", "channel", channel, "error", err)
		}
	}
	if w.PDF != nil {
		if err := w.PDF.Rasterize(ctx, svgPath, base+constants.SuffixPDF); err != nil {
			logger.Warn("pdf rasterization failed", "channel", channel, "error", err)
		}
	}
	return nil
}
