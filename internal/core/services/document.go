package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driving"
	"github.com/tidemark-labs/lingo-core/internal/rebuild"
	"github.com/tidemark-labs/lingo-core/internal/reference"
	"github.com/tidemark-labs/lingo-core/internal/segment"
)

// Pipeline coordinates one document run end to end:
//  1. Read and segment the source
//  2. Load the catalog and reconcile it against the segmentation
//  3. Process pending units, growing the reference pool as units complete
//  4. Rebuild the target document from catalog + source
//  5. Persist catalog and target
//
// The catalog is saved after every run, including failed ones, so partial
// progress is never lost.
type Pipeline struct {
	catalogStore driven.CatalogStore
	processor    driven.Processor
	cache        driven.ResultCache
	memory       driven.MemoryStore
	segmenter    *segment.Segmenter
	rebuilder    *rebuild.Reconstructor
	language     string
	maxRefs      int
	memorySeed   int
	logger       *slog.Logger
}

// PipelineConfig holds dependencies for Pipeline. Cache and Memory are
// optional; nil disables the corresponding behaviour.
type PipelineConfig struct {
	CatalogStore driven.CatalogStore
	Processor    driven.Processor
	Cache        driven.ResultCache
	Memory       driven.MemoryStore
	Language     string
	MaxRefs      int
	MemorySeed   int
	Logger       *slog.Logger
}

// NewPipeline creates a new document pipeline.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxRefs := cfg.MaxRefs
	if maxRefs <= 0 {
		maxRefs = 5
	}
	memorySeed := cfg.MemorySeed
	if memorySeed <= 0 {
		memorySeed = 50
	}

	return &Pipeline{
		catalogStore: cfg.CatalogStore,
		processor:    cfg.Processor,
		cache:        cfg.Cache,
		memory:       cfg.Memory,
		segmenter:    segment.New(),
		rebuilder:    rebuild.New(),
		language:     cfg.Language,
		maxRefs:      maxRefs,
		memorySeed:   memorySeed,
		logger:       logger,
	}
}

var _ driving.DocumentService = (*Pipeline)(nil)

// ProcessDocument runs the full pipeline for one document.
func (p *Pipeline) ProcessDocument(ctx context.Context, req driving.ProcessRequest) (*domain.DocumentResult, error) {
	startTime := time.Now()
	runID := uuid.NewString()

	p.logger.Info("starting document run",
		"run_id", runID,
		"source", req.SourcePath,
		"catalog", req.CatalogPath,
	)

	lines, err := readLines(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	cat, err := p.catalogStore.Load(ctx, req.CatalogPath, p.language)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	blocks := p.segmenter.Segment(lines)

	if req.ResetSeed {
		cat.ResetSeed(blocks)
		p.logger.Info("catalog reset from source", "run_id", runID, "units", cat.Len())
	} else {
		rec := cat.Reconcile(blocks)
		p.logger.Info("catalog reconciled",
			"run_id", runID,
			"added", rec.Added,
			"updated", rec.Updated,
			"stale", rec.StaleMarked,
			"purged", rec.Purged,
		)
	}

	stats := domain.ProcessStats{}
	procErr := p.processPending(ctx, runID, cat, req.Inplace, &stats)

	for _, u := range cat.Units() {
		if !u.Obsolete && cat.Skipped(u.Kind()) {
			stats.Skipped++
		}
	}

	coverage := p.rebuilder.Coverage(blocks, cat)
	output := p.rebuilder.Rebuild(lines, blocks, cat)

	if req.Inplace {
		rebuilt := p.segmenter.Segment(splitLines(output))
		cat.ResetSeed(rebuilt)
	}

	if err := p.catalogStore.Save(ctx, req.CatalogPath, cat); err != nil {
		if procErr == nil {
			procErr = fmt.Errorf("failed to save catalog: %w", err)
		} else {
			p.logger.Error("failed to save catalog", "run_id", runID, "error", err)
		}
	}

	if err := writeFile(req.TargetPath, output); err != nil {
		return nil, fmt.Errorf("failed to write target: %w", err)
	}

	if procErr != nil {
		return nil, procErr
	}

	duration := time.Since(startTime).Seconds()

	p.logger.Info("document run completed",
		"run_id", runID,
		"blocks", len(blocks),
		"complete", stats.Complete,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"coverage_pct", coverage.Percentage,
		"duration_seconds", duration,
	)

	return &domain.DocumentResult{
		RunID:       runID,
		SourcePath:  req.SourcePath,
		TargetPath:  req.TargetPath,
		CatalogPath: req.CatalogPath,
		Blocks:      len(blocks),
		Stats:       stats,
		Coverage:    coverage,
		Duration:    duration,
	}, nil
}

// processPending walks the catalog's pending units in document order,
// feeding each completed pair back into the reference pool so later units
// in the same run see earlier results as few-shot context. A unit failure
// is counted and skipped, never fatal; only cancellation aborts the loop.
func (p *Pipeline) processPending(ctx context.Context, runID string, cat *domain.Catalog, inplace bool, stats *domain.ProcessStats) error {
	pool := reference.NewPool(p.maxRefs)
	p.seedPool(ctx, pool, cat)

	caps := p.processor.Capabilities()

	for _, u := range cat.Pending() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var refs []domain.ReferencePair
		if caps.References {
			refs = pool.Similar(u.Source)
		}

		out, cached, err := p.processUnit(ctx, u.Source, refs)
		if err != nil {
			perr := &domain.ProcessingError{ContextID: u.ContextID, Err: err}
			p.logger.Warn("unit processing failed",
				"run_id", runID,
				"error", perr,
			)
			stats.Failed++
			continue
		}

		source := u.Source
		u.Processed = out
		cat.MarkComplete(u)
		if inplace {
			u.Source = out
		}
		pool.Add(source, out)
		stats.Complete++

		if !cached {
			p.record(ctx, source, out)
		}
	}

	return nil
}

// processUnit resolves one source text, consulting the result cache before
// the processor. The bool reports whether the text came from the cache.
func (p *Pipeline) processUnit(ctx context.Context, source string, refs []domain.ReferencePair) (string, bool, error) {
	if p.cache != nil {
		out, err := p.cache.Get(ctx, p.language, source)
		if err == nil {
			return out, true, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			p.logger.Warn("result cache unavailable", "error", err)
		}
	}

	out, err := p.processor.Process(ctx, source, refs)
	if err != nil {
		return "", false, err
	}
	return out, false, nil
}

// record propagates a completed pair to the cache and translation memory.
// Both are best-effort: failures degrade later runs, never this one.
func (p *Pipeline) record(ctx context.Context, source, processed string) {
	if p.cache != nil {
		if err := p.cache.Set(ctx, p.language, source, processed); err != nil {
			p.logger.Warn("failed to cache result", "error", err)
		}
	}
	if p.memory != nil {
		if err := p.memory.Add(ctx, p.language, source, processed); err != nil {
			p.logger.Warn("failed to record memory pair", "error", err)
		}
	}
}

// seedPool fills the reference pool from the cross-run translation memory
// first, then from the catalog's own completed units.
func (p *Pipeline) seedPool(ctx context.Context, pool *reference.Pool, cat *domain.Catalog) {
	if p.memory != nil {
		pairs, err := p.memory.RecentPairs(ctx, p.language, p.memorySeed)
		if err != nil {
			p.logger.Warn("translation memory unavailable", "error", err)
		}
		for _, pair := range pairs {
			pool.Add(pair.Source, pair.Processed)
		}
	}
	pool.Seed(cat)
}

// Stats reports catalog statistics and coverage without invoking the
// processor or writing anything.
func (p *Pipeline) Stats(ctx context.Context, sourcePath, catalogPath string) (*domain.CatalogStats, *domain.Coverage, error) {
	blocks, cat, err := p.load(ctx, sourcePath, catalogPath)
	if err != nil {
		return nil, nil, err
	}
	stats := cat.Stats()
	coverage := p.rebuilder.Coverage(blocks, cat)
	return &stats, &coverage, nil
}

// Report renders a human-readable coverage report.
func (p *Pipeline) Report(ctx context.Context, sourcePath, catalogPath string) (string, error) {
	blocks, cat, err := p.load(ctx, sourcePath, catalogPath)
	if err != nil {
		return "", err
	}
	return p.rebuilder.Report(sourcePath, blocks, cat), nil
}

func (p *Pipeline) load(ctx context.Context, sourcePath, catalogPath string) ([]domain.Block, *domain.Catalog, error) {
	lines, err := readLines(sourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read source: %w", err)
	}
	cat, err := p.catalogStore.Load(ctx, catalogPath, p.language)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return p.segmenter.Segment(lines), cat, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return splitLines(string(data)), nil
}

// splitLines normalises line endings and drops the trailing empty element
// a final newline produces, matching how the segmenter counts lines. Only
// a truly empty input yields no lines; "\n" is one blank line, which the
// rebuild step must reproduce byte for byte.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
