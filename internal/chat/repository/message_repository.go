package repository

import (
	"context"
	"errors"
	"fmt"

	"workforce_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository definition message store contract. Both the REST path
// and the live-socket path go through it so status transitions stay
// monotonic regardless of entry point.
type MessageRepository interface {
	// Insert persists a freshly built message (status=sent).
	Insert(ctx context.Context, msg *domain.Message) error
	// FindByID returns the message or domain.ErrNotFound.
	FindByID(ctx context.Context, messageID string) (*domain.Message, error)
	// History returns messages matching the filter in chronological order,
	// paginated from the newest end (limit/skip apply before re-ordering).
	History(ctx context.Context, filter domain.HistoryFilter, limit, skip int64) ([]domain.Message, error)
	// MarkRead bulk-sets status=read on unread messages in scope. Idempotent;
	// returns the number of messages actually flipped.
	MarkRead(ctx context.Context, scope domain.ReadScope) (int64, error)
	// UpdateStatus advances a message's status, rejecting regressions with
	// domain.ErrInvalidTransition. Returns the updated message.
	UpdateStatus(ctx context.Context, messageID string, status domain.MessageStatus) (*domain.Message, error)
	// Conversations derives per-counterpart summaries for a user's direct
	// messages, newest conversation first.
	Conversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error)
}

type messageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a MessageRepository over the messages
// collection.
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &messageRepository{
		coll: db.Collection("messages"),
	}
}

// EnsureMessageIndexes creates the query indexes the history and
// conversation paths rely on.
func EnsureMessageIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

func (r *messageRepository) Insert(ctx context.Context, msg *domain.Message) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

func (r *messageRepository) FindByID(ctx context.Context, messageID string) (*domain.Message, error) {
	var msg domain.Message
	err := r.coll.FindOne(ctx, bson.M{"_id": messageID}).Decode(&msg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) History(ctx context.Context, filter domain.HistoryFilter, limit, skip int64) ([]domain.Message, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var query bson.M
	if filter.GroupID != "" {
		query = bson.M{"group_id": filter.GroupID}
	} else {
		// Direct pair matched symmetrically: history(A,B) == history(B,A).
		query = bson.M{"$or": bson.A{
			bson.M{"sender_id": filter.UserID, "receiver_id": filter.CounterpartID},
			bson.M{"sender_id": filter.CounterpartID, "receiver_id": filter.UserID},
		}}
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit).
		SetSkip(skip)

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var messages []domain.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}

	// Stored newest-first for pagination; callers get chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, scope domain.ReadScope) (int64, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}

	var query bson.M
	if scope.GroupID != "" {
		// Group messages carry no per-recipient address; everything in the
		// room not written by the reader counts as addressed to them.
		query = bson.M{
			"group_id":  scope.GroupID,
			"sender_id": bson.M{"$ne": scope.ReaderID},
		}
	} else {
		query = bson.M{
			"sender_id":   scope.CounterpartID,
			"receiver_id": scope.ReaderID,
		}
	}
	query["status"] = bson.M{"$ne": domain.StatusRead}

	res, err := r.coll.UpdateMany(ctx, query, bson.M{"$set": bson.M{"status": domain.StatusRead}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *messageRepository) UpdateStatus(ctx context.Context, messageID string, status domain.MessageStatus) (*domain.Message, error) {
	if !status.Valid() {
		return nil, domain.ErrValidation
	}

	msg, err := r.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.Status == status {
		return msg, nil
	}
	if !msg.Status.CanAdvance(status) {
		return nil, domain.ErrInvalidTransition
	}

	// Guard on the observed status so a concurrent further advance can't be
	// regressed by this update.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": messageID, "status": msg.Status},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return r.UpdateStatus(ctx, messageID, status)
	}

	msg.Status = status
	return msg, nil
}

func (r *messageRepository) Conversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		// Direct messages touching the user; group traffic never contributes.
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "kind", Value: domain.KindDirect},
			{Key: "$or", Value: bson.A{
				bson.D{{Key: "sender_id", Value: userID}},
				bson.D{{Key: "receiver_id", Value: userID}},
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		// One bucket per counterpart; $first picks the newest message.
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$sender_id", userID}}},
				"$receiver_id",
				"$sender_id",
			}}}},
			{Key: "last_message", Value: bson.D{{Key: "$first", Value: "$content"}}},
			{Key: "last_message_time", Value: bson.D{{Key: "$first", Value: "$created_at"}}},
			{Key: "unread_count", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{
					bson.D{{Key: "$and", Value: bson.A{
						bson.D{{Key: "$eq", Value: bson.A{"$receiver_id", userID}}},
						bson.D{{Key: "$ne", Value: bson.A{"$status", domain.StatusRead}}},
					}}},
					1,
					0,
				}},
			}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "last_message_time", Value: -1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate error: %w", err)
	}

	var summaries []domain.ConversationSummary
	if err := cur.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("cursor All error: %w", err)
	}
	return summaries, nil
}
