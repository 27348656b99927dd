package auth

import (
	"time"

	"github.com/Ro706/Project-MARS/entity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// issueToken signs an HS256 token with the user id as subject.
func (s *Service) issueToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID.Hex(),
		"jti": uuid.NewString(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// parseToken validates signature and expiry and returns the subject.
func (s *Service) parseToken(token string) (primitive.ObjectID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}

	return userID, nil
}
