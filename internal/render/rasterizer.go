package render

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Rasterizer converts a written SVG poster into another artifact format.
// Rasterization is an external collaborator; the pipeline only needs this
// narrow surface.
type Rasterizer interface {
	Rasterize(ctx context.Context, svgPath, outPath string) error
}

// ExecRasterizer shells out to a configured conversion command. The
// command string carries {in} and {out} markers that are replaced with the
// SVG path and the target path, e.g.
//
//	rsvg-convert -f pdf -o {out} {in}
type ExecRasterizer struct {
	Command string
	Logger  *slog.Logger
}

// NewExecRasterizer returns a rasterizer for command, or nil when the
// command is empty, which callers read as "skip this format".
func NewExecRasterizer(command string, logger *slog.Logger) *ExecRasterizer {
	if command == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRasterizer{Command: command, Logger: logger}
}

func (r *ExecRasterizer) Rasterize(ctx context.Context, svgPath, outPath string) error {
	line := strings.ReplaceAll(r.Command, "{in}", svgPath)
	line = strings.ReplaceAll(line, "{out}", outPath)
	argv := strings.Fields(line)
	if len(argv) == 0 {
		return fmt.Errorf("empty rasterizer command")
	}
	r.Logger.Debug("rasterizing", "argv", argv)
	out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("run %s: %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
