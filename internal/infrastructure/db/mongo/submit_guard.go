package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const submitLockCollection = "submit_locks"

// SubmitGuard holds one document per in-flight submission key. The unique _id
// makes Acquire atomic; a lock past its expires_at may be taken over, since the
// TTL monitor only sweeps about once a minute.
type SubmitGuard struct {
	coll *mongo.Collection
	ttl  time.Duration
}

func NewSubmitGuard(db *mongo.Database, ttl time.Duration) *SubmitGuard {
	return &SubmitGuard{coll: db.Collection(submitLockCollection), ttl: ttl}
}

type submitLock struct {
	Key       string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func (g *SubmitGuard) Acquire(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	expires := now.Add(g.ttl)

	_, err := g.coll.InsertOne(ctx, submitLock{Key: key, ExpiresAt: expires})
	if err == nil {
		return true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return false, fmt.Errorf("insert submit lock: %w", err)
	}

	res, err := g.coll.UpdateOne(ctx,
		bson.M{"_id": key, "expires_at": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{"expires_at": expires}},
	)
	if err != nil {
		return false, fmt.Errorf("take over submit lock: %w", err)
	}
	return res.ModifiedCount == 1, nil
}

func (g *SubmitGuard) Release(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := g.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete submit lock: %w", err)
	}
	return nil
}

// EnsureIndexes creates the TTL index that sweeps abandoned locks.
func (g *SubmitGuard) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := g.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}
