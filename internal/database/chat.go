package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ro706/Project-MARS/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// normalizeMessages gives every message an explicit timestamp. Messages
// keep their order; missing timestamps default to now.
func normalizeMessages(messages []entity.Message, now time.Time) []entity.Message {
	normalized := make([]entity.Message, len(messages))
	for i, msg := range messages {
		if msg.Timestamp.IsZero() {
			msg.Timestamp = now
		}
		normalized[i] = msg
	}
	return normalized
}

// SaveChat inserts one new chat snapshot for the owner. Chats are never
// merged or updated in place.
func (m *MongoDB) SaveChat(userID primitive.ObjectID, messages []entity.Message) (primitive.ObjectID, error) {
	if len(messages) == 0 {
		return primitive.NilObjectID, ErrNoMessages
	}

	connection, err := m.connect()
	if err != nil {
		return primitive.NilObjectID, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)

	chat := entity.Chat{
		UserID:   userID,
		Messages: normalizeMessages(messages, time.Now()),
		Date:     time.Now(),
	}

	result, err := collection.InsertOne(m.ctx, chat)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("mongodb insert chat: %w", err)
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

// ChatsByOwner returns all chats of one owner, newest first.
func (m *MongoDB) ChatsByOwner(userID primitive.ObjectID) ([]entity.Chat, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := collection.Find(m.ctx, bson.D{{Key: "user", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find chats: %w", err)
	}
	defer cursor.Close(m.ctx)

	chats := make([]entity.Chat, 0)
	if err = cursor.All(m.ctx, &chats); err != nil {
		return nil, fmt.Errorf("mongodb decode chats: %w", err)
	}

	return chats, nil
}

// ChatByID returns the full chat if it belongs to the requesting owner.
func (m *MongoDB) ChatByID(userID, chatID primitive.ObjectID) (*entity.Chat, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)

	var chat entity.Chat
	err = collection.FindOne(m.ctx, bson.D{{Key: "_id", Value: chatID}}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find chat: %w", err)
	}

	if chat.UserID != userID {
		return nil, ErrForbidden
	}

	return &chat, nil
}

// DeleteChat removes an owned chat. Deleting an id that is already gone
// reports ErrNotFound.
func (m *MongoDB) DeleteChat(userID, chatID primitive.ObjectID) error {
	if _, err := m.ChatByID(userID, chatID); err != nil {
		return err
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatsCollection)

	result, err := collection.DeleteOne(m.ctx, bson.D{{Key: "_id", Value: chatID}, {Key: "user", Value: userID}})
	if err != nil {
		return fmt.Errorf("mongodb delete chat: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
