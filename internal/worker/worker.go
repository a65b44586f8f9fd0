// Package worker fans a directory of documents out over the document
// pipeline with bounded concurrency.
package worker

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driving"
)

// Worker runs the document pipeline over every matching file under a
// source directory. Each file is independent: one file failing does not
// stop the batch, but cancellation of the parent context does.
type Worker struct {
	service     driving.DocumentService
	concurrency int
	pattern     string
	logger      *slog.Logger
}

// WorkerConfig holds configuration for the batch worker.
type WorkerConfig struct {
	Service driving.DocumentService
	Logger  *slog.Logger

	// Concurrency bounds the number of documents processed in parallel.
	Concurrency int

	// Pattern is the file-name glob selecting documents. Defaults to
	// "*.md".
	Pattern string
}

// NewWorker creates a batch worker.
func NewWorker(cfg WorkerConfig) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = "*.md"
	}
	return &Worker{
		service:     cfg.Service,
		concurrency: concurrency,
		pattern:     pattern,
		logger:      logger,
	}
}

// job is one file mapped to its target and catalog locations.
type job struct {
	rel string
	req driving.ProcessRequest
}

// ProcessDir processes every matching file under sourceDir, mirroring the
// directory layout into targetDir and catalogDir. Relative structure is
// preserved: docs/guide.md becomes targetDir/docs/guide.md with catalog
// catalogDir/docs/guide.po.
func (w *Worker) ProcessDir(ctx context.Context, sourceDir, targetDir, catalogDir string, resetSeed, inplace bool) (*domain.BatchResult, error) {
	jobs, skipped, err := w.collect(sourceDir, targetDir, catalogDir, resetSeed, inplace)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", sourceDir, err)
	}

	w.logger.Info("starting batch",
		"source_dir", sourceDir,
		"files", len(jobs),
		"skipped", skipped,
		"concurrency", w.concurrency,
	)

	result := &domain.BatchResult{
		SourceDir:    sourceDir,
		TargetDir:    targetDir,
		CatalogDir:   catalogDir,
		FilesSkipped: skipped,
	}

	results := make([]*domain.DocumentResult, len(jobs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)

	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := w.service.ProcessDocument(gctx, j.req)
			if err != nil {
				w.logger.Error("document failed", "file", j.rel, "error", err)
				mu.Lock()
				result.FilesFailed++
				mu.Unlock()
				// Cancellation aborts the batch; a document error does not.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				return nil
			}
			results[i] = res
			mu.Lock()
			result.FilesDone++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	for _, res := range results {
		if res != nil {
			result.Results = append(result.Results, res)
		}
	}

	w.logger.Info("batch completed",
		"source_dir", sourceDir,
		"done", result.FilesDone,
		"failed", result.FilesFailed,
		"skipped", result.FilesSkipped,
	)

	return result, nil
}

// collect walks sourceDir and builds the job list in deterministic path
// order. Files not matching the pattern are counted, not processed.
func (w *Worker) collect(sourceDir, targetDir, catalogDir string, resetSeed, inplace bool) ([]job, int, error) {
	var jobs []job
	skipped := 0

	err := filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != sourceDir {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		matched, err := filepath.Match(w.pattern, d.Name())
		if err != nil {
			return err
		}
		if !matched {
			skipped++
			return nil
		}
		jobs = append(jobs, job{
			rel: rel,
			req: driving.ProcessRequest{
				SourcePath:  path,
				TargetPath:  filepath.Join(targetDir, rel),
				CatalogPath: filepath.Join(catalogDir, catalogName(rel)),
				ResetSeed:   resetSeed,
				Inplace:     inplace,
			},
		})
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].rel < jobs[j].rel })
	return jobs, skipped, nil
}

// catalogName swaps the document extension for .po.
func catalogName(rel string) string {
	ext := filepath.Ext(rel)
	return strings.TrimSuffix(rel, ext) + ".po"
}
