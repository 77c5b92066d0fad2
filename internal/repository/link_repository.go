package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"knowledgelink/internal/model"
)

type LinkRepository struct {
	collection  *mongo.Collection
	vectorIndex string
}

func NewLinkRepository(collection *mongo.Collection, vectorIndex string) *LinkRepository {
	return &LinkRepository{
		collection:  collection,
		vectorIndex: vectorIndex,
	}
}

func (r *LinkRepository) Insert(ctx context.Context, link *model.Link) error {
	if _, err := r.collection.InsertOne(ctx, link); err != nil {
		return fmt.Errorf("insert link failed: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's links, most recently inserted first,
// capped at limit. ObjectIDs embed the insertion timestamp, so sorting on
// _id descending is insertion order.
func (r *LinkRepository) ListByOwner(ctx context.Context, ownerID string, limit int64) ([]model.Link, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list links failed: %w", err)
	}
	defer cursor.Close(ctx)

	var links []model.Link
	if err := cursor.All(ctx, &links); err != nil {
		return nil, fmt.Errorf("decode links failed: %w", err)
	}
	return links, nil
}

// VectorSearch runs an approximate nearest-neighbor search over all stored
// embeddings and then restricts the hits to ownerID. The index cannot
// pre-filter by owner, so numCandidates is kept wider than topK and the
// owner match runs after the similarity stage; under many owners this can
// return fewer than topK results.
func (r *LinkRepository) VectorSearch(
	ctx context.Context,
	ownerID string,
	queryVector []float32,
	topK int64,
	numCandidates int64,
) ([]model.LinkSearchResult, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: r.vectorIndex},
			{Key: "path", Value: "content_embedding"},
			{Key: "queryVector", Value: queryVector},
			{Key: "numCandidates", Value: numCandidates},
			{Key: "limit", Value: topK},
		}}},
		{{Key: "$match", Value: bson.D{
			{Key: "owner_id", Value: ownerID},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "url", Value: 1},
			{Key: "title", Value: 1},
			{Key: "summary", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var results []model.LinkSearchResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode search results failed: %w", err)
	}
	return results, nil
}
