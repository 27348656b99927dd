package core

import (
	"context"
	"log/slog"

	"github.com/Ro706/Project-MARS/entity"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	"github.com/Ro706/Project-MARS/internal/service/rag"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	SaveChat(userID primitive.ObjectID, messages []entity.Message) (primitive.ObjectID, error)
	ChatsByOwner(userID primitive.ObjectID) ([]entity.Chat, error)
	ChatByID(userID, chatID primitive.ObjectID) (*entity.Chat, error)
	DeleteChat(userID, chatID primitive.ObjectID) error
}

type AuthService interface {
	Signup(name, email, password string) (string, error)
	Login(email, password string) (string, error)
	AuthenticateByToken(token string) (*entity.User, error)
}

// Core wires the services together and backs every HTTP handler.
type Core struct {
	repo        Repository
	authService AuthService
	provider    rag.AnswerProvider
	log         *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log: log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetAuthService(authService AuthService) {
	c.authService = authService
}

func (c *Core) SetAnswerProvider(provider rag.AnswerProvider) {
	c.provider = provider
}

func (c *Core) Signup(name, email, password string) (string, error) {
	return c.authService.Signup(name, email, password)
}

func (c *Core) Login(email, password string) (string, error) {
	return c.authService.Login(email, password)
}

func (c *Core) AuthenticateByToken(token string) (*entity.User, error) {
	return c.authService.AuthenticateByToken(token)
}

func (c *Core) Query(ctx context.Context, query string) (*entity.Answer, error) {
	return c.provider.Answer(ctx, query)
}
