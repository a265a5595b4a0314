// Package service contains the business logic of the exercise tracker:
// input validation, the date and duration parsing rules, and the log
// filtering contract. It knows nothing about HTTP or MongoDB — handlers
// sit above it, a repository.UserRepository below it.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// Wire-level validation messages. These strings are part of the API
// contract and must not be reworded.
const (
	msgUsernameMissing = "username is missing"
	msgExerciseMissing = "description or duration is missing"
)

// UserService handles business logic for users and their exercise logs.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// CreateOrFetch returns the user with the given username, creating it with
// an empty exercise log if it does not exist yet. Calling it twice with the
// same username yields the same user both times — at most one record is
// ever created per username.
func (s *UserService) CreateOrFetch(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", msgUsernameMissing)
	}

	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		s.logger.Error("failed to look up user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	user := &model.User{
		Username:  username,
		Exercises: []model.Exercise{},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// List returns every user. Callers project out the fields they need;
// the exercise logs come along because users are single documents.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}

// AddExercise validates the raw form inputs and appends one exercise to the
// user's log. It returns the owning user and the exercise as stored.
//
// Duration is gated by the parsed value being non-zero, not by numeric
// validity alone: a literal "0" is rejected the same way as a missing or
// garbled value. That conflation of zero with missing is the documented
// contract, preserved as-is.
//
// An absent or unparseable date is replaced with today's date, never
// rejected.
func (s *UserService) AddExercise(ctx context.Context, userID, description, duration, date string) (*model.User, model.Exercise, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, model.Exercise{}, apperror.ValidationFailed("description", msgExerciseMissing)
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(duration))
	if err != nil || minutes == 0 {
		return nil, model.Exercise{}, apperror.ValidationFailed("duration", msgExerciseMissing)
	}

	user, err := s.repo.FindByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to look up user",
				slog.String("id", userID),
				slog.String("error", err.Error()),
			)
		}
		return nil, model.Exercise{}, err
	}

	when, ok := parseDate(date)
	if !ok {
		when = time.Now()
	}

	exercise := model.Exercise{
		Description: description,
		Duration:    minutes,
		Date:        formatDate(when),
	}

	if err := s.repo.AppendExercise(ctx, user.ID, exercise); err != nil {
		s.logger.Error("failed to append exercise",
			slog.String("id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, model.Exercise{}, fmt.Errorf("appending exercise: %w", err)
	}

	s.logger.Info("exercise added",
		slog.String("id", user.ID),
		slog.String("description", exercise.Description),
		slog.Int("duration", exercise.Duration),
		slog.String("date", exercise.Date),
	)

	return user, exercise, nil
}

// LogFilter carries the raw, unvalidated query parameters of a log request.
// Values that fail to parse are ignored rather than rejected — that is the
// read-side contract, mirroring the write-side leniency on dates.
type LogFilter struct {
	From  string
	To    string
	Limit string
}

// UserLog is the result of a log query.
//
// Count is always the total number of exercises ever logged for the user,
// regardless of any filtering or truncation applied to Entries. The
// asymmetry is deliberate and pinned by the contract.
type UserLog struct {
	UserID   string
	Username string
	Count    int
	Entries  []model.Exercise
}

// Log returns the user's exercise log, optionally filtered to an inclusive
// date range and truncated to the first Limit entries.
//
// Filters apply before truncation, and truncation keeps the prefix of the
// sequence in insertion order — it is not a most-recent-N selection. A
// limit that is not a positive integer strictly below the filtered count
// is ignored.
func (s *UserService) Log(ctx context.Context, userID string, filter LogFilter) (*UserLog, error) {
	user, err := s.repo.FindByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to look up user",
				slog.String("id", userID),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	entries := user.Exercises

	if from, ok := parseDate(filter.From); ok {
		entries = filterEntries(entries, func(d time.Time) bool { return !d.Before(from) })
	}
	if to, ok := parseDate(filter.To); ok {
		entries = filterEntries(entries, func(d time.Time) bool { return !d.After(to) })
	}

	if n, err := strconv.Atoi(strings.TrimSpace(filter.Limit)); err == nil && n > 0 && n < len(entries) {
		entries = entries[:n]
	}

	return &UserLog{
		UserID:   user.ID,
		Username: user.Username,
		Count:    len(user.Exercises),
		Entries:  entries,
	}, nil
}

// filterEntries keeps the exercises whose stored date parses and satisfies
// keep. An entry with an unparseable date cannot match a range bound, so
// it drops out — the same outcome the original date comparison had.
func filterEntries(entries []model.Exercise, keep func(time.Time) bool) []model.Exercise {
	kept := make([]model.Exercise, 0, len(entries))
	for _, e := range entries {
		d, ok := parseDate(e.Date)
		if ok && keep(d) {
			kept = append(kept, e)
		}
	}
	return kept
}
