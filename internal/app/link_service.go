package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"knowledgelink/internal/ai"
	"knowledgelink/internal/model"
)

const (
	// Provider input limits; cost also scales with input size. The two
	// lengths are independent tunables, not two spellings of one value.
	embedMaxChars   = 8000
	summaryMaxChars = 4000

	listLimit           = 100
	searchTopK          = 10
	searchNumCandidates = 150
)

// ContentExtractor turns a URL into a page title and a plain-text body.
type ContentExtractor interface {
	Fetch(ctx context.Context, url string) (title, text string, err error)
}

// Generator produces embeddings and summaries from text.
type Generator interface {
	Embed(ctx context.Context, text string, task ai.EmbeddingTask) ([]float32, error)
	Summarize(ctx context.Context, text string) (string, error)
}

// LinkStore persists links and answers owner-scoped reads and searches.
type LinkStore interface {
	Insert(ctx context.Context, link *model.Link) error
	ListByOwner(ctx context.Context, ownerID string, limit int64) ([]model.Link, error)
	VectorSearch(ctx context.Context, ownerID string, queryVector []float32, topK, numCandidates int64) ([]model.LinkSearchResult, error)
}

// EmbeddingCache memoizes query embeddings. Implementations must treat a
// miss as (nil, false, nil).
type EmbeddingCache interface {
	Get(ctx context.Context, query string) ([]float32, bool, error)
	Set(ctx context.Context, query string, vector []float32) error
}

// EventPublisher announces persisted links to downstream consumers.
type EventPublisher interface {
	PublishLinkCreated(ctx context.Context, event model.LinkCreatedEvent) error
}

// LinkService runs the save-and-search pipelines. Cache and publisher are
// optional; pass nil to run without them.
type LinkService struct {
	extractor ContentExtractor
	generator Generator
	store     LinkStore
	cache     EmbeddingCache
	publisher EventPublisher
}

func NewLinkService(
	extractor ContentExtractor,
	generator Generator,
	store LinkStore,
	cache EmbeddingCache,
	publisher EventPublisher,
) *LinkService {
	return &LinkService{
		extractor: extractor,
		generator: generator,
		store:     store,
		cache:     cache,
		publisher: publisher,
	}
}

// SubmitResult is returned to the caller after a successful submission.
type SubmitResult struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Submit runs the ingestion pipeline: scrape, embed, summarize, persist.
// The first failing stage aborts the whole submission; persistence is the
// last stage, so no rollback is ever needed. The same URL may be submitted
// any number of times, each creating its own record.
func (s *LinkService) Submit(ctx context.Context, principal model.Principal, rawURL string) (*SubmitResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrValidation)
	}

	title, text, err := s.extractor.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: page has no extractable text", ErrFetch)
	}

	embedding, err := s.generator.Embed(ctx, truncate(text, embedMaxChars), ai.TaskRetrievalDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	summary, err := s.generator.Summarize(ctx, truncate(text, summaryMaxChars))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSummarization, err)
	}

	link := &model.Link{
		OwnerID:   principal.UserID,
		URL:       rawURL,
		Title:     title,
		Summary:   summary,
		Embedding: embedding,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, link); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if s.publisher != nil {
		event := model.LinkCreatedEvent{
			OwnerID:   link.OwnerID,
			URL:       link.URL,
			Title:     link.Title,
			CreatedAt: link.CreatedAt,
		}
		if err := s.publisher.PublishLinkCreated(ctx, event); err != nil {
			// Fire-and-forget: the record is already persisted.
			log.Printf("publish link created event failed: %v", err)
		}
	}

	return &SubmitResult{Title: title, Summary: summary}, nil
}

// List returns the principal's links, newest first, capped at 100.
func (s *LinkService) List(ctx context.Context, principal model.Principal) ([]model.Link, error) {
	links, err := s.store.ListByOwner(ctx, principal.UserID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return links, nil
}

// Search embeds the query in query mode and runs the owner-scoped vector
// search. The non-empty precondition is checked before any remote call.
func (s *LinkService) Search(ctx context.Context, principal model.Principal, query string) ([]model.LinkSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query parameter 'q' is required", ErrValidation)
	}

	queryVector, err := s.queryEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	results, err := s.store.VectorSearch(ctx, principal.UserID, queryVector, searchTopK, searchNumCandidates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return results, nil
}

func (s *LinkService) queryEmbedding(ctx context.Context, query string) ([]float32, error) {
	if s.cache != nil {
		vector, hit, err := s.cache.Get(ctx, query)
		if err != nil {
			log.Printf("query embedding cache get failed: %v", err)
		} else if hit {
			return vector, nil
		}
	}

	vector, err := s.generator.Embed(ctx, query, ai.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, vector); err != nil {
			log.Printf("query embedding cache set failed: %v", err)
		}
	}
	return vector, nil
}

// truncate bounds s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
