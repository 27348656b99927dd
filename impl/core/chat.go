package core

import (
	"github.com/Ro706/Project-MARS/entity"
	repository "github.com/Ro706/Project-MARS/internal/database"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (c *Core) SaveChat(user *entity.User, messages []entity.Message) error {
	_, err := c.repo.SaveChat(user.ID, messages)
	return err
}

func (c *Core) ChatHistory(user *entity.User) ([]entity.Chat, error) {
	return c.repo.ChatsByOwner(user.ID)
}

func (c *Core) Chat(user *entity.User, chatID string) (*entity.Chat, error) {
	id, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return c.repo.ChatByID(user.ID, id)
}

func (c *Core) DeleteChat(user *entity.User, chatID string) error {
	id, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return repository.ErrNotFound
	}
	return c.repo.DeleteChat(user.ID, id)
}
