package mongodb

import (
	"context"
	"errors"

	"github.com/rs/xid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// Compile-time check that *DB satisfies the repository interface.
var _ repository.UserRepository = (*DB)(nil)

// Create inserts a new user document and assigns its ID.
//
// IDs are xid strings generated here rather than ObjectIDs: the contract
// only needs an opaque store-assigned identifier, and string IDs mean
// lookups never have to deal with invalid-hex edge cases. The caller's
// struct gets the generated ID written back.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	if user.Exercises == nil {
		user.Exercises = []model.Exercise{}
	}

	if _, err := db.users.InsertOne(ctx, user); err != nil {
		return apperror.StoreFailed("inserting user", err)
	}

	return nil
}

// FindByUsername returns the user with this exact username, or an
// apperror.ErrNotFound error if no such user exists.
func (db *DB) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := db.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.StoreFailed("finding user by username", err)
	}

	return &user, nil
}

// FindByID returns the user with this ID, exercises included.
func (db *DB) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := db.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.StoreFailed("finding user by id", err)
	}

	return &user, nil
}

// List returns every user in natural collection order.
func (db *DB) List(ctx context.Context) ([]model.User, error) {
	cursor, err := db.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperror.StoreFailed("listing users", err)
	}

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperror.StoreFailed("decoding users", err)
	}

	return users, nil
}

// AppendExercise appends one exercise to the user's embedded log.
//
// $push updates the document in place, so two concurrent appends to the
// same user both land — no read-modify-write cycle to race on.
func (db *DB) AppendExercise(ctx context.Context, userID string, exercise model.Exercise) error {
	result, err := db.users.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"exercises": exercise},
	})
	if err != nil {
		return apperror.StoreFailed("appending exercise", err)
	}
	if result.MatchedCount == 0 {
		return apperror.NotFound("user")
	}

	return nil
}
