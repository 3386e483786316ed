package mongo

import (
	"context"
	"errors"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const leaderboardCollectionName = "challenge_leaderboards"

// mongoLeaderboardRepository implements repository.LeaderboardRepository.
type mongoLeaderboardRepository struct {
	collection *mongo.Collection
}

// NewMongoLeaderboardRepository creates a new leaderboard repository.
func NewMongoLeaderboardRepository(db *mongo.Database) repository.LeaderboardRepository {
	return &mongoLeaderboardRepository{
		collection: db.Collection(leaderboardCollectionName),
	}
}

// Accumulate adds the award to the user's zone entry in one atomic upsert.
// $inc on an upserted document starts from zero, so first award and follow-up
// awards share a single code path and concurrent accumulates cannot lose
// increments.
func (r *mongoLeaderboardRepository) Accumulate(ctx context.Context, userID, zoneID string, points int, date string) error {
	filter := bson.M{"zoneId": zoneID, "userId": userID}
	update := bson.M{
		"$inc": bson.M{
			"totalPoints":   points,
			"workoutsCount": 1,
		},
		"$set":         bson.M{"lastWorkoutDate": date},
		"$setOnInsert": bson.M{"userId": userID, "zoneId": zoneID},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetEntry retrieves a single (zone, user) entry.
func (r *mongoLeaderboardRepository) GetEntry(ctx context.Context, zoneID, userID string) (*domain.LeaderboardEntry, error) {
	var entry domain.LeaderboardEntry
	err := r.collection.FindOne(ctx, bson.M{"zoneId": zoneID, "userId": userID}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetTop returns up to limit entries sorted by totalPoints desc, then
// workoutsCount desc.
func (r *mongoLeaderboardRepository) GetTop(ctx context.Context, zoneID string, limit int) ([]domain.LeaderboardEntry, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "totalPoints", Value: -1}, {Key: "workoutsCount", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"zoneId": zoneID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.LeaderboardEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListByZone returns every entry for the zone, unsorted.
func (r *mongoLeaderboardRepository) ListByZone(ctx context.Context, zoneID string) ([]domain.LeaderboardEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"zoneId": zoneID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.LeaderboardEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceZone deletes the zone's entries and inserts the given set. Awards
// that land mid-replace are re-absorbed by the next rebuild; the rebuild tool
// is a repair operation, not a consistency point.
func (r *mongoLeaderboardRepository) ReplaceZone(ctx context.Context, zoneID string, entries []domain.LeaderboardEntry) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"zoneId": zoneID}); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(entries))
	for i := range entries {
		docs = append(docs, entries[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// EnsureLeaderboardIndexes creates necessary indexes. Call during startup.
func EnsureLeaderboardIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "zoneId", Value: 1},
				{Key: "userId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			// Serves the sorted top-N query per zone.
			Keys: bson.D{
				{Key: "zoneId", Value: 1},
				{Key: "totalPoints", Value: -1},
				{Key: "workoutsCount", Value: -1},
			},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
