package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/clipmark/internal/adapters/batch"
	service "github.com/okian/clipmark/internal/app"
	"github.com/okian/clipmark/internal/config"
	"github.com/okian/clipmark/internal/domain/model"
	"github.com/okian/clipmark/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o644
)

// Run converts, or previews, every input named in c.
func Run(ctx context.Context, conv Converter, c *Config, stdout io.Writer) (*Stats, error) {
	log := logger.Get().Named("cli")

	var roles model.RoleMap
	if c.Mapping != "" {
		var err error
		if roles, err = config.LoadMapping(c.Mapping); err != nil {
			return nil, err
		}
	}

	if c.Preview >= 0 {
		return nil, preview(ctx, conv, c, roles, stdout)
	}

	if c.OutDir != "-" {
		if err := checkOutputs(c.OutDir, c.Inputs); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(c.OutDir, directoryPermission); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	stats := &Stats{Files: len(c.Inputs)}
	start := time.Now()
	done := make([]*service.Conversion, len(c.Inputs))

	handler := batch.HandlerFunc(func(ctx context.Context, job batch.Job) error {
		data, err := os.ReadFile(job.Name)
		if err != nil {
			return err
		}
		res, err := conv.Convert(ctx, c.request(data, roles))
		if err != nil {
			return err
		}
		if c.OutDir == "-" {
			_, err = stdout.Write(res.XML)
		} else {
			err = os.WriteFile(OutputPath(c.OutDir, job.Name), res.XML, filePermission)
		}
		if err != nil {
			return err
		}
		done[job.Index] = res
		return nil
	})

	results, err := batch.NewPool(handler, batch.WithWorkers(c.Workers), batch.WithLogger(log)).Run(ctx, c.Inputs)
	if err != nil {
		return nil, err
	}
	stats.Duration = time.Since(start)

	for i, r := range results {
		if r.Err != nil {
			stats.Failed++
			continue
		}
		stats.Converted++
		stats.Events += done[i].Stats.Emitted
		stats.Skipped += done[i].Stats.Skipped
		if c.OutDir != "-" {
			fmt.Fprintf(stdout, "%s -> %s (%d events)\n", r.Job.Name, OutputPath(c.OutDir, r.Job.Name), done[i].Stats.Emitted)
		}
	}

	log.Info(ctx, "conversion summary",
		logger.Int("files", stats.Files),
		logger.Int("converted", stats.Converted),
		logger.Int("failed", stats.Failed),
		logger.Int("events", stats.Events),
		logger.Int("skipped", stats.Skipped),
		logger.String("duration", stats.Duration.String()),
	)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrBatchFailed, stats.Failed, stats.Files)
	}
	return stats, nil
}

// request carries the command line parameters so the service validates them.
func (c *Config) request(data []byte, roles model.RoleMap) service.Request {
	fps, pre, post := c.FPS, c.Pre, c.Post
	offset, startID := c.Offset, c.StartID
	return service.Request{
		Data:     data,
		Encoding: c.Encoding,
		FPS:      &fps,
		Pre:      &pre,
		Post:     &post,
		Offset:   &offset,
		StartID:  &startID,
		Roles:    roles,
	}
}

// checkOutputs rejects inputs that would write the same export file.
func checkOutputs(dir string, inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, input := range inputs {
		out := OutputPath(dir, input)
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrUsage, prev, input, out)
		}
		seen[out] = input
	}
	return nil
}

// OutputPath places the export for input in dir, swapping the extension
// for .xml.
func OutputPath(dir, input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".xml"
	return filepath.Join(dir, base)
}
