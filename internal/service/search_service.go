package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/storynest/storynest-backend/internal/domain"
	"github.com/storynest/storynest-backend/internal/repository"
	"github.com/storynest/storynest-backend/pkg/cache"
	pkges "github.com/storynest/storynest-backend/pkg/elasticsearch"
	pkglogger "github.com/storynest/storynest-backend/pkg/logger"
)

// StoryIndex is the Elasticsearch index holding published stories
const StoryIndex = "stories"

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "search_cache_lookups_total",
		Help: "Search cache lookups by result",
	},
	[]string{"kind", "result"},
)

// SearchBackend answers search and suggest queries. The Elasticsearch
// implementation is preferred; a LIKE-based store fallback keeps the read
// path alive without it.
type SearchBackend interface {
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}

// SearchConfig holds the cache TTLs of the two read paths
type SearchConfig struct {
	SearchTTL  time.Duration
	SuggestTTL time.Duration
}

// SearchService fronts the search backend with the query result cache
type SearchService interface {
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error)
	GetSuggestions(ctx context.Context, prefix string, limit int) (*domain.SuggestResult, error)
	// IndexStory pushes a story document into the search index
	IndexStory(ctx context.Context, story *domain.Story) error
	RemoveStory(ctx context.Context, storyID uint64) error
}

type searchService struct {
	backend SearchBackend
	store   cache.Store
	cfg     SearchConfig
	indexer *esBackend
}

// NewSearchService creates a new SearchService
func NewSearchService(backend SearchBackend, store cache.Store, cfg SearchConfig) SearchService {
	s := &searchService{backend: backend, store: store, cfg: cfg}
	if es, ok := backend.(*esBackend); ok {
		s.indexer = es
	}
	return s
}

func (s *searchService) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	normalized := normalizeQuery(query)
	if normalized == "" {
		return &domain.SearchResult{Query: normalized}, nil
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 || opts.Limit > 50 {
		opts.Limit = 20
	}

	key := searchCacheKey(normalized, opts)
	var cached domain.SearchResult
	if err := s.store.Get(ctx, key, &cached); err == nil {
		cacheLookups.WithLabelValues("search", "hit").Inc()
		return &cached, nil
	}
	cacheLookups.WithLabelValues("search", "miss").Inc()

	result, err := s.backend.Search(ctx, normalized, opts)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, key, result, s.cfg.SearchTTL); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("key", key).Msg("search cache write failed")
	}
	return result, nil
}

func (s *searchService) GetSuggestions(ctx context.Context, prefix string, limit int) (*domain.SuggestResult, error) {
	normalized := normalizeQuery(prefix)
	if normalized == "" {
		return &domain.SuggestResult{Prefix: normalized}, nil
	}
	if limit < 1 || limit > 20 {
		limit = 10
	}

	key := suggestCacheKey(normalized, limit)
	var cached domain.SuggestResult
	if err := s.store.Get(ctx, key, &cached); err == nil {
		cacheLookups.WithLabelValues("suggest", "hit").Inc()
		return &cached, nil
	}
	cacheLookups.WithLabelValues("suggest", "miss").Inc()

	suggestions, err := s.backend.Suggest(ctx, normalized, limit)
	if err != nil {
		return nil, err
	}

	result := &domain.SuggestResult{Prefix: normalized, Suggestions: suggestions}
	if err := s.store.Set(ctx, key, result, s.cfg.SuggestTTL); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Str("key", key).Msg("suggest cache write failed")
	}
	return result, nil
}

func (s *searchService) IndexStory(ctx context.Context, story *domain.Story) error {
	if s.indexer == nil {
		return nil
	}
	return s.indexer.indexStory(ctx, story)
}

func (s *searchService) RemoveStory(ctx context.Context, storyID uint64) error {
	if s.indexer == nil {
		return nil
	}
	return s.indexer.client.DeleteDocument(ctx, StoryIndex, strconv.FormatUint(storyID, 10))
}

// normalizeQuery lowercases and collapses internal whitespace so cache keys
// are stable across cosmetic input differences
func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

func searchCacheKey(normalized string, opts domain.SearchOptions) string {
	return fmt.Sprintf("search:v1:%s|p=%d|l=%d", normalized, opts.Page, opts.Limit)
}

func suggestCacheKey(normalized string, limit int) string {
	return fmt.Sprintf("suggest:v1:%s|l=%d", normalized, limit)
}

// esBackend answers queries from Elasticsearch
type esBackend struct {
	client *pkges.Client
}

// NewESBackend creates the index (with a completion field for suggest) and
// returns the Elasticsearch-backed SearchBackend
func NewESBackend(ctx context.Context, client *pkges.Client) (SearchBackend, error) {
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"title":      map[string]interface{}{"type": "text"},
				"summary":    map[string]interface{}{"type": "text"},
				"author_id":  map[string]interface{}{"type": "keyword"},
				"view_count": map[string]interface{}{"type": "long"},
				"title_suggest": map[string]interface{}{
					"type": "completion",
				},
			},
		},
	}
	if err := client.CreateIndex(ctx, StoryIndex, mapping); err != nil {
		return nil, err
	}
	return &esBackend{client: client}, nil
}

func (b *esBackend) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	esQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^3", "summary"},
			},
		},
	}

	from := (opts.Page - 1) * opts.Limit
	resp, err := b.client.Search(ctx, StoryIndex, esQuery, from, opts.Limit)
	if err != nil {
		return nil, err
	}

	result := &domain.SearchResult{Query: query, Total: resp.Total}
	for _, r := range resp.Results {
		id, err := strconv.ParseUint(r.ID, 10, 64)
		if err != nil {
			continue
		}
		hit := domain.SearchHit{StoryID: id, Score: r.Score}
		if title, ok := r.Source["title"].(string); ok {
			hit.Title = title
		}
		if summary, ok := r.Source["summary"].(string); ok {
			hit.Summary = summary
		}
		result.Hits = append(result.Hits, hit)
	}
	return result, nil
}

func (b *esBackend) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	return b.client.Suggest(ctx, StoryIndex, "title_suggest", prefix, limit)
}

func (b *esBackend) indexStory(ctx context.Context, story *domain.Story) error {
	doc := map[string]interface{}{
		"title":         story.Title,
		"summary":       story.Summary,
		"author_id":     story.AuthorID,
		"view_count":    story.ViewCount,
		"title_suggest": story.Title,
	}
	return b.client.IndexDocument(ctx, StoryIndex, strconv.FormatUint(story.ID, 10), doc)
}

// dbBackend answers queries with LIKE scans when Elasticsearch is disabled
type dbBackend struct {
	storyRepo repository.StoryRepository
}

// NewDBBackend returns the store-backed fallback SearchBackend
func NewDBBackend(storyRepo repository.StoryRepository) SearchBackend {
	return &dbBackend{storyRepo: storyRepo}
}

func (b *dbBackend) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	stories, total, err := b.storyRepo.SearchByTitle(ctx, query, opts.Page, opts.Limit)
	if err != nil {
		return nil, err
	}

	result := &domain.SearchResult{Query: query, Total: total}
	for _, story := range stories {
		result.Hits = append(result.Hits, domain.SearchHit{
			StoryID: story.ID,
			Title:   story.Title,
			Summary: story.Summary,
		})
	}
	return result, nil
}

func (b *dbBackend) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	return b.storyRepo.SuggestTitles(ctx, prefix, limit)
}
