package chat

import "github.com/Ro706/Project-MARS/entity"

type Core interface {
	SaveChat(user *entity.User, messages []entity.Message) error
	ChatHistory(user *entity.User) ([]entity.Chat, error)
	Chat(user *entity.User, chatID string) (*entity.Chat, error)
	DeleteChat(user *entity.User, chatID string) error
}
