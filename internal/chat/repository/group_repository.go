package repository

import (
	"context"
	"errors"

	"workforce_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GroupRepository definition chat group persistence
type GroupRepository interface {
	Create(ctx context.Context, group *domain.ChatGroup) error
	// FindByID returns the group (active or not) or domain.ErrNotFound.
	FindByID(ctx context.Context, groupID string) (*domain.ChatGroup, error)
	// FindByMember lists active groups userID belongs to, newest first.
	FindByMember(ctx context.Context, userID string) ([]domain.ChatGroup, error)
	// FindDepartmentGroup returns the active group mirroring a department
	// roster, or domain.ErrNotFound when none was materialized yet.
	FindDepartmentGroup(ctx context.Context, department string) (*domain.ChatGroup, error)
	Update(ctx context.Context, group *domain.ChatGroup) error
	// Deactivate soft-deletes the group; documents are never removed.
	Deactivate(ctx context.Context, groupID string) error
}

type groupRepository struct {
	coll *mongo.Collection
}

// NewMongoGroupRepository create a GroupRepository over the chat_groups
// collection.
func NewMongoGroupRepository(db *mongo.Database) GroupRepository {
	return &groupRepository{
		coll: db.Collection("chat_groups"),
	}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.ChatGroup) error {
	_, err := r.coll.InsertOne(ctx, group)
	return err
}

func (r *groupRepository) FindByID(ctx context.Context, groupID string) (*domain.ChatGroup, error) {
	var group domain.ChatGroup
	err := r.coll.FindOne(ctx, bson.M{"_id": groupID}).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) FindByMember(ctx context.Context, userID string) ([]domain.ChatGroup, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := r.coll.Find(ctx, bson.M{"members": userID, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	var groups []domain.ChatGroup
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) FindDepartmentGroup(ctx context.Context, department string) (*domain.ChatGroup, error) {
	filter := bson.M{
		"type":       domain.GroupDepartment,
		"department": department,
		"is_active":  true,
	}
	var group domain.ChatGroup
	err := r.coll.FindOne(ctx, filter).Decode(&group)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) Update(ctx context.Context, group *domain.ChatGroup) error {
	filter := bson.M{"_id": group.ID}
	update := bson.M{"$set": group}
	_, err := r.coll.UpdateOne(ctx, filter, update)
	return err
}

func (r *groupRepository) Deactivate(ctx context.Context, groupID string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": groupID}, bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
