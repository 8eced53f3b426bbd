package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ucspstream/streaming-api/internal/core/domain"
	"github.com/ucspstream/streaming-api/internal/core/ports"
)

const collectionContent = "content"

type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{col: db.Collection(collectionContent)}
}

// Create inserts a new content document.
func (r *ContentRepository) Create(ctx context.Context, c *domain.Content) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return storeErr("insert content", err)
	}
	return nil
}

// FindByID retrieves a single content record.
func (r *ContentRepository) FindByID(ctx context.Context, id string) (*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Content
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, storeErr("find content", err)
	}
	return &c, nil
}

// List returns records matching the filter ordered by created_at descending.
func (r *ContentRepository) List(ctx context.Context, f ports.ContentFilter) ([]*domain.Content, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.ArtistID != "" {
		filter["artist_id"] = f.ArtistID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list content", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Content
	for cur.Next(ctx) {
		var c domain.Content
		if err := cur.Decode(&c); err != nil {
			return nil, storeErr("decode content", err)
		}
		items = append(items, &c)
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("list content", err)
	}
	return items, nil
}

// UpdateStatus applies a moderation decision to a single record.
func (r *ContentRepository) UpdateStatus(ctx context.Context, id string, status domain.ModerationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return storeErr("update content status", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the listing queries.
func (r *ContentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "artist_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
