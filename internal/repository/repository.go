// Package repository defines the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages (mongodb).
package repository

import (
	"context"

	"github.com/sakif/exercise-tracker/internal/model"
)

// UserRepository is the persistence contract for users and their embedded
// exercise logs.
//
// Lookups that match nothing return an error wrapping apperror.ErrNotFound;
// any other failure wraps apperror.ErrStore. There is no update or delete:
// the exercise log is append-only and users are never removed.
type UserRepository interface {
	// Create inserts a new user and assigns its ID.
	Create(ctx context.Context, user *model.User) error

	// FindByUsername returns the user with this exact username.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID returns the user with this ID, exercises included.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// List returns every user in natural store order.
	List(ctx context.Context) ([]model.User, error)

	// AppendExercise atomically appends one exercise to the user's log.
	AppendExercise(ctx context.Context, userID string, exercise model.Exercise) error
}
