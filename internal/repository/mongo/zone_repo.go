package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const zoneCollectionName = "challenge_zones"

// mongoZoneRepository implements repository.ZoneRepository.
type mongoZoneRepository struct {
	collection *mongo.Collection
}

// NewMongoZoneRepository creates a new challenge-zone repository.
func NewMongoZoneRepository(db *mongo.Database) repository.ZoneRepository {
	return &mongoZoneRepository{
		collection: db.Collection(zoneCollectionName),
	}
}

// Create inserts a new zone definition. The caller assigns the ID.
func (r *mongoZoneRepository) Create(ctx context.Context, zone *domain.ChallengeZone) error {
	if zone.ID == "" || zone.Name == "" {
		return errors.New("zone requires id and name")
	}
	now := time.Now().UTC()
	zone.CreatedAt = now
	zone.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, zone)
	return err
}

// GetByID retrieves a single zone by its ID.
func (r *mongoZoneRepository) GetByID(ctx context.Context, id string) (*domain.ChallengeZone, error) {
	var zone domain.ChallengeZone
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&zone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// Update replaces the stored record with the given merged record.
func (r *mongoZoneRepository) Update(ctx context.Context, zone *domain.ChallengeZone) error {
	if zone.ID == "" {
		return errors.New("zone ID is required for update")
	}
	zone.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": zone.ID}, zone)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the zone definition only; ledger and leaderboard documents
// for the zone are retained.
func (r *mongoZoneRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListAll returns every zone, oldest first.
func (r *mongoZoneRepository) ListAll(ctx context.Context) ([]domain.ChallengeZone, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var zones []domain.ChallengeZone
	if err = cursor.All(ctx, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// Watch opens a change stream over the zone collection and forwards a signal
// for every insert/update/replace/delete. Consumers re-read the full list on
// each signal; no diffs are carried.
func (r *mongoZoneRepository) Watch(ctx context.Context) (<-chan struct{}, error) {
	stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			select {
			case events <- struct{}{}:
			default:
				// A signal is already pending; coalesce.
			}
		}
	}()
	return events, nil
}

// EnsureZoneIndexes creates necessary indexes. Call during startup.
func EnsureZoneIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "active", Value: 1}, {Key: "visible", Value: 1}},
			Options: options.Index(),
		},
	}
	// Best effort at startup; queries still work without the index.
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
