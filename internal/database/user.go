package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ro706/Project-MARS/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateUser inserts a new user. The email must not already be taken.
func (m *MongoDB) CreateUser(user entity.User) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)

	count, err := collection.CountDocuments(m.ctx, bson.D{{Key: "email", Value: user.Email}})
	if err != nil {
		return nil, fmt.Errorf("mongodb count users: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	user.CreatedAt = time.Now()
	result, err := collection.InsertOne(m.ctx, user)
	if err != nil {
		return nil, fmt.Errorf("mongodb insert user: %w", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return &user, nil
}

func (m *MongoDB) UserByEmail(email string) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)

	var user entity.User
	err = collection.FindOne(m.ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find user: %w", err)
	}

	return &user, nil
}

func (m *MongoDB) UserByID(id primitive.ObjectID) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)

	var user entity.User
	err = collection.FindOne(m.ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find user: %w", err)
	}

	return &user, nil
}
