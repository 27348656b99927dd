package entity

import (
	"net/http"
	"time"

	"github.com/Ro706/Project-MARS/internal/lib/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (s *SignupRequest) Bind(_ *http.Request) error {
	return validate.Struct(s)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (l *LoginRequest) Bind(_ *http.Request) error {
	return validate.Struct(l)
}
