package app

import "errors"

// Error kinds for the ingestion and query pipelines. Each pipeline stage
// fails closed: the first failing stage aborts the request and nothing is
// persisted. Handlers map these to HTTP statuses and response codes.
var (
	ErrValidation    = errors.New("invalid input")
	ErrFetch         = errors.New("could not scrape content from url")
	ErrEmbedding     = errors.New("embedding generation failed")
	ErrSummarization = errors.New("summary generation failed")
	ErrStorage       = errors.New("link storage failed")
)
