package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/auth-backend/internal/models"
)

// MongoStore handles user CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("users")}
}

// EnsureIndexes creates the unique email index registration relies on.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("mongo insert: %w", err)
	}
	return u, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, bson.M{"email": email})
}

func (s *MongoStore) GetUserByResetSecret(ctx context.Context, secret string) (*models.User, error) {
	return s.getUser(ctx, bson.M{"reset_secret": secret})
}

func (s *MongoStore) getUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	return &u, nil
}

// SaveUser persists the mutable fields of an existing record.
func (s *MongoStore) SaveUser(ctx context.Context, u *models.User) error {
	res, err := s.col.UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{
		"password_hash":           u.PasswordHash,
		"reset_secret":            u.ResetSecret,
		"reset_secret_expires_at": u.ResetSecretExpiry,
	}})
	if err != nil {
		return fmt.Errorf("mongo update: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
