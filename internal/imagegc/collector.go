// Package imagegc deletes uploaded images that no persisted post references any more.
//
// The set of referenced images is always recomputed from the content source right before
// deleting, so a file referenced by any post is never removed and repeated runs are idempotent.
package imagegc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"study-team-api/internal/storage"
)

const (
	ScopeGlobal = "global"
	ScopeRecent = "recent"
	ScopeEdit   = "edit"
)

// Store is the part of an upload store the collector needs
type Store interface {
	List(ctx context.Context) ([]storage.File, error)
	Delete(ctx context.Context, name string) error
	Location(name string) string
}

// ContentSource returns the rich-text content of every persisted post
type ContentSource interface {
	AllContents(ctx context.Context) ([]string, error)
}

// Recorder receives collector metrics
type Recorder interface {
	RecordImageSweep(scope string, scanned, deleted int, duration time.Duration)
	RecordImageDeleteError()
}

// Result summarises a sweep
type Result struct {
	Scope      string   `json:"scope"`
	Scanned    int      `json:"scanned"`
	Referenced int      `json:"referenced"`
	Deleted    []string `json:"deleted"`
	Failed     int      `json:"failed"`
}

// Collector finds and deletes orphaned uploads
type Collector struct {
	store    Store
	contents ContentSource
	matcher  *matcher
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewCollector creates a collector for uploads addressed as urlPrefix+name. recorder may be nil.
func NewCollector(store Store, contents ContentSource, urlPrefix string, recorder Recorder, logger *zap.Logger) *Collector {
	return &Collector{
		store:    store,
		contents: contents,
		matcher:  newMatcher(urlPrefix),
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// URLFor returns the URL under which name is referenced in post content
func (c *Collector) URLFor(name string) string {
	return c.matcher.prefix + name
}

// ExtractReferences returns the upload URLs referenced by content. Malformed (non UTF-8) content
// is still scanned as raw text.
func (c *Collector) ExtractReferences(content string) RefSet {
	return c.matcher.extract(content)
}

// DiffOnEdit returns the references present in oldContent but absent from newContent
func (c *Collector) DiffOnEdit(oldContent, newContent string) RefSet {
	return c.ExtractReferences(oldContent).Minus(c.ExtractReferences(newContent))
}

// AllReferences computes the references of every persisted post
func (c *Collector) AllReferences(ctx context.Context) (RefSet, error) {
	contents, err := c.contents.AllContents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load post contents: %w", err)
	}
	refs := make(RefSet)
	for _, content := range contents {
		refs.Union(c.ExtractReferences(content))
	}
	return refs, nil
}

// DeleteFiles deletes the files behind urls and returns the locations actually deleted.
// URLs outside the upload prefix are skipped, missing files are a no-op and failures are logged
// without stopping the batch.
func (c *Collector) DeleteFiles(ctx context.Context, urls RefSet) []string {
	deleted, _ := c.deleteFiles(ctx, urls)
	return deleted
}

// deleteFiles is DeleteFiles that also counts the store errors. Files that are already gone
// are not failures.
func (c *Collector) deleteFiles(ctx context.Context, urls RefSet) (deleted []string, failed int) {
	deleted = make([]string, 0, len(urls))
	for _, u := range urls.Sorted() {
		name, ok := c.resolve(u)
		if !ok {
			c.logger.Warn("Skipping url outside upload path", zap.String("url", u))
			continue
		}

		if err := c.store.Delete(ctx, name); err != nil {
			if errors.Is(err, storage.ErrNotExist) {
				c.logger.Debug("Upload already gone", zap.String("name", name))
				continue
			}
			c.logger.Error("Failed to delete upload",
				zap.String("name", name),
				zap.Error(err),
			)
			failed++
			if c.recorder != nil {
				c.recorder.RecordImageDeleteError()
			}
			continue
		}

		deleted = append(deleted, c.store.Location(name))
		c.logger.Debug("Deleted upload", zap.String("name", name))
	}
	return deleted, failed
}

// Reclaim deletes the candidates that no persisted post references. It is used after a post's
// content changed or the post was removed.
func (c *Collector) Reclaim(ctx context.Context, candidates RefSet) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	start := c.now()
	refs, err := c.AllReferences(ctx)
	if err != nil {
		return nil, err
	}

	orphans := candidates.Minus(refs)
	deleted := c.DeleteFiles(ctx, orphans)

	if c.recorder != nil {
		c.recorder.RecordImageSweep(ScopeEdit, len(candidates), len(deleted), c.now().Sub(start))
	}
	c.logger.Info("Reclaimed unreferenced uploads",
		zap.Int("candidates", len(candidates)),
		zap.Int("still_referenced", len(candidates)-len(orphans)),
		zap.Int("deleted", len(deleted)),
	)
	return deleted, nil
}

// CollectOrphansScoped deletes unreferenced uploads created within window of now
func (c *Collector) CollectOrphansScoped(ctx context.Context, window time.Duration) (*Result, error) {
	cutoff := c.now().Add(-window)
	return c.collect(ctx, ScopeRecent, func(f storage.File) bool {
		return !f.CreatedAt.Before(cutoff)
	})
}

// CollectOrphansGlobal deletes every unreferenced upload
func (c *Collector) CollectOrphansGlobal(ctx context.Context) (*Result, error) {
	return c.collect(ctx, ScopeGlobal, func(storage.File) bool { return true })
}

func (c *Collector) collect(ctx context.Context, scope string, include func(storage.File) bool) (*Result, error) {
	start := c.now()
	result := &Result{Scope: scope, Deleted: []string{}}

	files, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	candidates := make([]storage.File, 0, len(files))
	for _, f := range files {
		if include(f) {
			candidates = append(candidates, f)
		}
	}
	result.Scanned = len(candidates)
	if len(candidates) == 0 {
		return result, nil
	}

	refs, err := c.AllReferences(ctx)
	if err != nil {
		return nil, err
	}

	orphans := make(RefSet)
	for _, f := range candidates {
		u := c.URLFor(f.Name)
		if refs.Has(u) {
			result.Referenced++
			continue
		}
		orphans.Add(u)
	}

	result.Deleted, result.Failed = c.deleteFiles(ctx, orphans)

	duration := c.now().Sub(start)
	if c.recorder != nil {
		c.recorder.RecordImageSweep(scope, result.Scanned, len(result.Deleted), duration)
	}
	c.logger.Info("Orphan image sweep completed",
		zap.String("scope", scope),
		zap.Int("scanned", result.Scanned),
		zap.Int("referenced", result.Referenced),
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", duration),
	)
	return result, nil
}

// resolve maps an upload URL to a flat file name
func (c *Collector) resolve(u string) (string, bool) {
	if !strings.HasPrefix(u, c.matcher.prefix) {
		return "", false
	}
	name := strings.TrimPrefix(u, c.matcher.prefix)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	return name, true
}
