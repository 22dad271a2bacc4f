package repository

import (
	"context"

	"social_chat_service/internal/chat/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoMessageRepository struct {
	coll *mongo.Collection
}

// NewMongoMessageRepository create a mongo-backed MessageRepository.
// One document per message; insertion-time _id breaks timestamp ties so
// History keeps routing order.
func NewMongoMessageRepository(db *mongo.Database) MessageRepository {
	return &mongoMessageRepository{
		coll: db.Collection("chat_messages"),
	}
}

func (r *mongoMessageRepository) Append(ctx context.Context, msg domain.ChatMessage) error {
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

func (r *mongoMessageRepository) History(ctx context.Context, roomKey string) ([]domain.ChatMessage, error) {
	filter := bson.M{"room_key": roomKey}
	opts := options.Find().SetSort(bson.D{
		{Key: "timestamp", Value: 1},
		{Key: "_id", Value: 1},
	})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var messages []domain.ChatMessage
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
