package profileRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"matrimonial/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByUserID retrieves the profile owned by userID.
func (r *MongoProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

func (r *MongoProfileRepo) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count profiles for user %s: %w", userID, err)
	}
	return n > 0, nil
}

// Create inserts a new profile document.
func (r *MongoProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrProfileExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// Replace overwrites the stored document of profile.UserID.
func (r *MongoProfileRepo) Replace(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	profile.UpdatedAt = time.Now()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"userId": profile.UserID}, profile)
	if err != nil {
		return fmt.Errorf("failed to update profile for user %s: %w", profile.UserID, err)
	}
	if result.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *MongoProfileRepo) SetPhotos(ctx context.Context, userID string, photos []models.StoredPhoto) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"photos": photos, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update photos for user %s: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}
