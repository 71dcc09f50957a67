package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fashio-ai/styling-api/internal/core/domain"
)

const outfitsCollection = "outfits"

// CollectionRepository persists saved outfits. Every query is scoped to a
// user_id so collections stay strictly per-user.
type CollectionRepository struct {
	coll *mongo.Collection
}

func NewCollectionRepository(db *mongo.Database) *CollectionRepository {
	return &CollectionRepository{coll: db.Collection(outfitsCollection)}
}

func (r *CollectionRepository) Insert(ctx context.Context, outfit *domain.SavedOutfit) error {
	if _, err := r.coll.InsertOne(ctx, outfit); err != nil {
		return fmt.Errorf("insert outfit: %w", err)
	}
	return nil
}

func (r *CollectionRepository) FindByAdviceID(ctx context.Context, userID, adviceID string) (*domain.SavedOutfit, error) {
	var outfit domain.SavedOutfit
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "advice_id": adviceID}).Decode(&outfit)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrOutfitNotFound
		}
		return nil, fmt.Errorf("find outfit by advice id: %w", err)
	}
	return &outfit, nil
}

func (r *CollectionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedOutfit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "saved_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}
	defer cur.Close(ctx)

	outfits := make([]*domain.SavedOutfit, 0)
	for cur.Next(ctx) {
		var outfit domain.SavedOutfit
		if err := cur.Decode(&outfit); err != nil {
			return nil, fmt.Errorf("decode outfit: %w", err)
		}
		outfits = append(outfits, &outfit)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}
	return outfits, nil
}

func (r *CollectionRepository) Delete(ctx context.Context, userID, outfitID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": outfitID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete outfit: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOutfitNotFound
	}
	return nil
}
