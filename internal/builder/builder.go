// Package builder runs the report-to-signature-file pipeline: enumerate
// reports, extract records, assemble the document and write it out.
package builder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/digipres-tools/droidsig/core/catalog"
	"github.com/digipres-tools/droidsig/core/pronom"
	"github.com/digipres-tools/droidsig/core/sigfile"
	"github.com/digipres-tools/droidsig/internal/fileutil"
)

// Options configures one build.
type Options struct {
	// PronomDir is the directory of report files.
	PronomDir string
	// Output is the signature file destination path.
	Output string
	// Workers bounds concurrent report extraction. Values below 1 are
	// treated as 1.
	Workers int
	// CatalogDB, when set, additionally exports the registry to SQLite.
	CatalogDB string
	// Now supplies the generation timestamp; defaults to time.Now.
	Now func() time.Time
}

// Result summarizes a completed build.
type Result struct {
	Reports int
	Formats int
	Output  string
	Digest  string
}

// Run executes the pipeline. Per-report and per-sequence problems are
// absorbed locally (logged, smallest enclosing unit dropped); the only
// fatal preconditions are a missing report directory and an unwritable
// destination. The output is always a best-effort document built from
// whatever valid data was found.
func Run(ctx context.Context, opts Options, log *slog.Logger) (*Result, error) {
	paths, err := fileutil.ListReports(opts.PronomDir)
	if err != nil {
		return nil, err
	}

	formats := extractAll(ctx, paths, opts.workers(), log)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sf := sigfile.Assemble(formats, now())
	data, err := sf.Render()
	if err != nil {
		return nil, err
	}
	if err := fileutil.WriteFileAtomic(opts.Output, data, 0o644); err != nil {
		return nil, err
	}
	digest := fileutil.Blake3Hex(data)

	if opts.CatalogDB != "" {
		if err := catalog.Export(opts.CatalogDB, formats); err != nil {
			return nil, err
		}
		log.Info("catalog exported", "path", opts.CatalogDB, "driver", catalog.DriverType())
	}

	log.Info("number of reports", "count", len(paths))
	log.Info("number of formats processed for the signature file", "count", len(formats))
	log.Info("outputting to", "path", opts.Output, "blake3", digest)

	return &Result{
		Reports: len(paths),
		Formats: len(formats),
		Output:  opts.Output,
		Digest:  digest,
	}, nil
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

// extractAll parses reports with a bounded worker pool. Extraction of
// distinct reports is independent, but assembly order is observable in the
// output, so results land in an index-addressed slice and are folded back
// in sorted-path order.
func extractAll(ctx context.Context, paths []string, workers int, log *slog.Logger) []*pronom.Format {
	results := make([]*pronom.Format, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = extractOne(paths[i], log)
			}
		}()
	}

	for i := range paths {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	formats := make([]*pronom.Format, 0, len(paths))
	for _, format := range results {
		if format != nil {
			formats = append(formats, format)
		}
	}
	return formats
}

// extractOne reads and parses a single report. Failures are logged and
// absorbed; a nil return means the report contributes nothing.
func extractOne(path string, log *slog.Logger) *pronom.Format {
	reportLog := log.With("report", path)
	data, err := fileutil.ReadReport(path)
	if err != nil {
		reportLog.Error("cannot read report", "err", err)
		return nil
	}
	format, err := pronom.ParseReport(data, reportLog)
	if err != nil {
		reportLog.Error("cannot parse report", "err", err)
		return nil
	}
	return format
}
