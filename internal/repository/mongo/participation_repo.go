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

const participationCollectionName = "challenge_participation"

// mongoParticipationRepository implements repository.ParticipationRepository.
type mongoParticipationRepository struct {
	collection *mongo.Collection
}

// NewMongoParticipationRepository creates a new participation-ledger repository.
func NewMongoParticipationRepository(db *mongo.Database) repository.ParticipationRepository {
	return &mongoParticipationRepository{
		collection: db.Collection(participationCollectionName),
	}
}

func ledgerKey(userID, zoneID, date string) bson.M {
	return bson.M{"userId": userID, "zoneId": zoneID, "date": date}
}

// CreateIfAbsent inserts the record unless its (userId, zoneId, date) key is
// already taken. A single FindOneAndUpdate with $setOnInsert against the
// unique ledger index: under N concurrent calls exactly one insert commits
// and every other caller gets back the committed record. Returning the
// pre-image tells us which side of the race we were on — ErrNoDocuments means
// nothing existed before, i.e. this call won.
func (r *mongoParticipationRepository) CreateIfAbsent(ctx context.Context, rec *domain.ParticipationRecord) (bool, *domain.ParticipationRecord, error) {
	filter := ledgerKey(rec.UserID, rec.ZoneID, rec.Date)
	update := bson.M{"$setOnInsert": rec}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var existing domain.ParticipationRecord
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// No pre-image: the upsert inserted our record.
			return true, rec, nil
		}
		return false, nil, err
	}
	return false, &existing, nil
}

// Exists reports whether an award record is present for the key. Callers use
// this as a fast pre-check and for UI state; only CreateIfAbsent is
// authoritative at award time.
func (r *mongoParticipationRepository) Exists(ctx context.Context, userID, zoneID, date string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, ledgerKey(userID, zoneID, date), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByZone returns every award record for a zone. Used by the leaderboard
// rebuild tool.
func (r *mongoParticipationRepository) ListByZone(ctx context.Context, zoneID string) ([]domain.ParticipationRecord, error) {
	return r.list(ctx, bson.M{"zoneId": zoneID})
}

// ListByUserAndZone returns a user's award history within a zone.
func (r *mongoParticipationRepository) ListByUserAndZone(ctx context.Context, userID, zoneID string) ([]domain.ParticipationRecord, error) {
	return r.list(ctx, bson.M{"userId": userID, "zoneId": zoneID})
}

func (r *mongoParticipationRepository) list(ctx context.Context, filter bson.M) ([]domain.ParticipationRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.ParticipationRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// EnsureParticipationIndexes creates the unique ledger index. The award
// invariant (at most one record per user/zone/day) lives here; without this
// index CreateIfAbsent degrades to last-write-wins. Call during startup.
func EnsureParticipationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "zoneId", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "zoneId", Value: 1}},
			Options: options.Index(),
		},
	}
	// Best effort; a failure here surfaces later as CreateIfAbsent racing.
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
