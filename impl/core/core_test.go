package core

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Ro706/Project-MARS/entity"
	repository "github.com/Ro706/Project-MARS/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryRepository mirrors the Mongo chat store's ownership semantics.
type memoryRepository struct {
	chats map[primitive.ObjectID]entity.Chat
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{chats: make(map[primitive.ObjectID]entity.Chat)}
}

func (m *memoryRepository) SaveChat(userID primitive.ObjectID, messages []entity.Message) (primitive.ObjectID, error) {
	if len(messages) == 0 {
		return primitive.NilObjectID, repository.ErrNoMessages
	}
	id := primitive.NewObjectID()
	m.chats[id] = entity.Chat{ID: id, UserID: userID, Messages: messages, Date: time.Now()}
	return id, nil
}

func (m *memoryRepository) ChatsByOwner(userID primitive.ObjectID) ([]entity.Chat, error) {
	chats := make([]entity.Chat, 0)
	for _, chat := range m.chats {
		if chat.UserID == userID {
			chats = append(chats, chat)
		}
	}
	return chats, nil
}

func (m *memoryRepository) ChatByID(userID, chatID primitive.ObjectID) (*entity.Chat, error) {
	chat, ok := m.chats[chatID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if chat.UserID != userID {
		return nil, repository.ErrForbidden
	}
	return &chat, nil
}

func (m *memoryRepository) DeleteChat(userID, chatID primitive.ObjectID) error {
	if _, err := m.ChatByID(userID, chatID); err != nil {
		return err
	}
	delete(m.chats, chatID)
	return nil
}

func newTestCore() (*Core, *memoryRepository) {
	repo := newMemoryRepository()
	c := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.SetRepository(repo)
	return c, repo
}

func testUser() *entity.User {
	return &entity.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
}

func TestSaveChatRoundTrip(t *testing.T) {
	c, _ := newTestCore()
	user := testUser()

	messages := []entity.Message{
		{Sender: entity.SenderUser, Text: "hello", Timestamp: time.Now()},
		{Sender: entity.SenderBot, Text: "hi there", Timestamp: time.Now()},
		{Sender: entity.SenderUser, Text: "bye", Timestamp: time.Now()},
	}
	require.NoError(t, c.SaveChat(user, messages))

	chats, err := c.ChatHistory(user)
	require.NoError(t, err)
	require.Len(t, chats, 1)

	chat, err := c.Chat(user, chats[0].ID.Hex())
	require.NoError(t, err)
	require.Len(t, chat.Messages, 3)
	for i, msg := range messages {
		assert.Equal(t, msg.Text, chat.Messages[i].Text)
		assert.Equal(t, msg.Sender, chat.Messages[i].Sender)
		assert.WithinDuration(t, msg.Timestamp, chat.Messages[i].Timestamp, 0)
	}

	// a second save snapshots a new chat instead of mutating the first
	require.NoError(t, c.SaveChat(user, messages[:1]))
	chats, err = c.ChatHistory(user)
	require.NoError(t, err)
	assert.Len(t, chats, 2)
}

func TestChat_OwnerScoped(t *testing.T) {
	c, _ := newTestCore()
	owner := testUser()
	intruder := testUser()

	require.NoError(t, c.SaveChat(owner, []entity.Message{
		{Sender: entity.SenderUser, Text: "private", Timestamp: time.Now()},
	}))
	chats, err := c.ChatHistory(owner)
	require.NoError(t, err)
	chatID := chats[0].ID.Hex()

	_, err = c.Chat(intruder, chatID)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	err = c.DeleteChat(intruder, chatID)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	// the owner still reads it afterwards
	_, err = c.Chat(owner, chatID)
	assert.NoError(t, err)
}

func TestChat_MalformedID(t *testing.T) {
	c, _ := newTestCore()
	user := testUser()

	_, err := c.Chat(user, "definitely-not-an-object-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = c.DeleteChat(user, "definitely-not-an-object-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteChat_RepeatedDelete(t *testing.T) {
	c, _ := newTestCore()
	user := testUser()

	require.NoError(t, c.SaveChat(user, []entity.Message{
		{Sender: entity.SenderUser, Text: "to delete", Timestamp: time.Now()},
	}))
	chats, err := c.ChatHistory(user)
	require.NoError(t, err)
	chatID := chats[0].ID.Hex()

	require.NoError(t, c.DeleteChat(user, chatID))
	assert.ErrorIs(t, c.DeleteChat(user, chatID), repository.ErrNotFound)
}

func TestChatHistory_NoChats(t *testing.T) {
	c, _ := newTestCore()

	chats, err := c.ChatHistory(testUser())
	require.NoError(t, err)
	assert.NotNil(t, chats)
	assert.Empty(t, chats)
}
