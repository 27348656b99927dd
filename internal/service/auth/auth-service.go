package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ro706/Project-MARS/entity"
	repository "github.com/Ro706/Project-MARS/internal/database"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email already registered")
)

type Repository interface {
	CreateUser(user entity.User) (*entity.User, error)
	UserByEmail(email string) (*entity.User, error)
	UserByID(id primitive.ObjectID) (*entity.User, error)
}

type Service struct {
	repository Repository
	secret     []byte
	tokenTTL   time.Duration
	log        *slog.Logger
}

func NewAuthService(secret string, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		log:      logger.With(sl.Module("auth-service")),
	}
}

func (s *Service) SetRepository(repository Repository) {
	s.repository = repository
}

// Signup creates a user with a bcrypt credential hash and issues a token
// for the new account.
func (s *Service) Signup(name, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repository.CreateUser(entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, repository.ErrEmailTaken) {
		return "", ErrEmailTaken
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	s.log.With(slog.String("email", email)).Info("user registered")

	return s.issueToken(user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password fail the same way.
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repository.UserByEmail(email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrBadCredentials
	}
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrBadCredentials
	}

	return s.issueToken(user)
}

// AuthenticateByToken validates the token and loads its user.
func (s *Service) AuthenticateByToken(token string) (*entity.User, error) {
	userID, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repository.UserByID(userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return user, nil
}
