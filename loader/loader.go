// Package loader memoizes the catalog and metadata lookups so repeated
// page renders never re-fetch what the API already answered. Cached values
// are shared across sessions and must be treated as read-only by callers.
package loader

import (
	"context"
	"fmt"
	"sync"

	"blsexplorer/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// API is the slice of the BLS client the loaders depend on.
type API interface {
	Surveys(ctx context.Context) (map[string]string, error)
	SurveyMetadata(ctx context.Context, surveyName string) (*models.Metadata, error)
}

// Loader caches catalog and per-survey metadata for the life of the
// process, until Invalidate is called.
type Loader struct {
	api API

	mu       sync.Mutex
	catalog  map[string]string
	metadata *lru.Cache[string, *models.Metadata]
}

// New builds a loader over api with a metadata cache of the given size.
func New(api API, metadataCacheSize int) (*Loader, error) {
	cache, err := lru.New[string, *models.Metadata](metadataCacheSize)
	if err != nil {
		return nil, fmt.Errorf("metadata cache: %w", err)
	}
	return &Loader{api: api, metadata: cache}, nil
}

// Surveys returns the survey catalog, fetching it at most once. Errors from
// the client propagate unmodified and nothing is cached on failure.
func (l *Loader) Surveys(ctx context.Context) (map[string]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.catalog != nil {
		return l.catalog, nil
	}
	catalog, err := l.api.Surveys(ctx)
	if err != nil {
		return nil, err
	}
	l.catalog = catalog
	return catalog, nil
}

// Metadata returns the metadata for surveyName, fetching each distinct
// survey at most once. Loads are serialised so a cache miss is filled by a
// single upstream call even under concurrent renders.
func (l *Loader) Metadata(ctx context.Context, surveyName string) (*models.Metadata, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cached, ok := l.metadata.Get(surveyName); ok {
		return cached, nil
	}
	meta, err := l.api.SurveyMetadata(ctx, surveyName)
	if err != nil {
		return nil, err
	}
	l.metadata.Add(surveyName, meta)
	return meta, nil
}

// Invalidate drops everything cached so the next lookups re-fetch.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.catalog = nil
	l.metadata.Purge()
}
