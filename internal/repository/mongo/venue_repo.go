package mongo

import (
	"context"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const venueCollectionName = "venues"

// mongoVenueRepository implements repository.VenueRepository.
type mongoVenueRepository struct {
	collection *mongo.Collection
}

// NewMongoVenueRepository creates a new venue repository.
func NewMongoVenueRepository(db *mongo.Database) repository.VenueRepository {
	return &mongoVenueRepository{
		collection: db.Collection(venueCollectionName),
	}
}

// ListAll returns venues sorted by registration sequence. The venue matcher's
// first-match semantics depend on this ordering.
func (r *mongoVenueRepository) ListAll(ctx context.Context) ([]domain.Venue, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var venues []domain.Venue
	if err = cursor.All(ctx, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// Seed upserts the given venues by ID, preserving their sequence values.
// Used at startup to install the built-in list into an empty collection.
func (r *mongoVenueRepository) Seed(ctx context.Context, venues []domain.Venue) error {
	for i := range venues {
		v := venues[i]
		filter := bson.M{"_id": v.ID}
		if _, err := r.collection.ReplaceOne(ctx, filter, v, options.Replace().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}

// EnsureVenueIndexes creates necessary indexes. Call during startup.
func EnsureVenueIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sequence", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

var _ repository.VenueRepository = (*mongoVenueRepository)(nil)
