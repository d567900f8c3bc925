package repository

import (
	"context"
	"errors"

	"workforce_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository read-only directory lookups. Account lifecycle belongs to
// the auth service; the chat core only resolves destinations, rosters and
// display names.
type UserRepository interface {
	// FindByID returns the user or domain.ErrNotFound.
	FindByID(ctx context.Context, userID string) (*domain.User, error)
	// FindActiveByDepartment lists active users of a department.
	FindActiveByDepartment(ctx context.Context, department string) ([]domain.User, error)
	// FindActiveIDs lists every active user id except the excluded one.
	FindActiveIDs(ctx context.Context, excludeID string) ([]string, error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository create a UserRepository over the users collection.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		coll: db.Collection("users"),
	}
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindActiveByDepartment(ctx context.Context, department string) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{"department": department, "active": true})
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindActiveIDs(ctx context.Context, excludeID string) ([]string, error) {
	filter := bson.M{"active": true}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
