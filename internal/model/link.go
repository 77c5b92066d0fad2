package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Link is one saved page: the submitted URL plus the extracted title,
// the generated summary and the embedding used for similarity search.
// Records are write-once; there is no update or delete path.
type Link struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OwnerID   string             `bson:"owner_id" json:"-"`
	URL       string             `bson:"url" json:"url"`
	Title     string             `bson:"title" json:"title"`
	Summary   string             `bson:"summary" json:"summary"`
	Embedding []float32          `bson:"content_embedding" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// LinkSearchResult is a Link projected out of a vector search,
// annotated with the index's similarity score.
type LinkSearchResult struct {
	URL     string  `bson:"url" json:"url"`
	Title   string  `bson:"title" json:"title"`
	Summary string  `bson:"summary" json:"summary"`
	Score   float64 `bson:"score" json:"score"`
}
