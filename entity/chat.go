package entity

import (
	"net/http"
	"time"

	"github.com/Ro706/Project-MARS/internal/lib/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is a single utterance inside a chat. Messages only exist
// embedded in a Chat document and keep their insertion order.
type Message struct {
	Sender    string    `json:"sender" bson:"sender" validate:"required,oneof=user bot"`
	Text      string    `json:"text" bson:"text" validate:"required"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Chat is one saved conversation snapshot. A chat is never mutated after
// insert; saving the same conversation again creates a new document.
type Chat struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID   primitive.ObjectID `json:"user" bson:"user"`
	Messages []Message          `json:"messages" bson:"messages"`
	Date     time.Time          `json:"date" bson:"date"`
}

type SaveChatRequest struct {
	Messages []Message `json:"messages" validate:"required,min=1,dive"`
}

func (s *SaveChatRequest) Bind(_ *http.Request) error {
	return validate.Struct(s)
}
