// Package handler contains the HTTP request handlers. Handlers parse form
// fields, query strings, and path parameters, call the service layer, and
// render the per-operation response shapes. They hold no business rules.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/service"
)

// UserHandler serves the user and exercise-log endpoints.
type UserHandler struct {
	service *service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger,
	}
}

// userResponse is the projection returned for a user: username and ID
// only, exercises omitted. The id key is "_id" on the wire.
type userResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// exerciseResponse echoes a logged exercise together with its owner.
// The "_id" field is the user's ID — exercises have no identity of their
// own.
type exerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

type logEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// logResponse is the filtered log view. Count is the user's total exercise
// count, independent of the filters applied to Log.
type logResponse struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []logEntry `json:"log"`
}

// HandleCreateUser creates a user, or returns the existing one with the
// same username.
//
// HTTP: POST /api/users, form field "username".
func (h *UserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CreateOrFetch(r.Context(), r.FormValue("username"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Username: user.Username,
		ID:       user.ID,
	})
}

// HandleListUsers returns all users as {username, _id} projections.
//
// HTTP: GET /api/users
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	// Always a JSON array, never null.
	response := make([]userResponse, 0, len(users))
	for _, u := range users {
		response = append(response, userResponse{Username: u.Username, ID: u.ID})
	}

	writeJSON(w, http.StatusOK, response)
}

// HandleAddExercise logs one exercise against a user.
//
// HTTP: POST /api/users/{id}/exercises, form fields "description",
// "duration", and optional "date".
func (h *UserHandler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	user, exercise, err := h.service.AddExercise(
		r.Context(),
		r.PathValue("id"),
		r.FormValue("description"),
		r.FormValue("duration"),
		r.FormValue("date"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exerciseResponse{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
		ID:          user.ID,
	})
}

// HandleGetLog returns a user's exercise log, optionally filtered by the
// "from", "to", and "limit" query parameters.
//
// HTTP: GET /api/users/{id}/logs
func (h *UserHandler) HandleGetLog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	log, err := h.service.Log(r.Context(), r.PathValue("id"), service.LogFilter{
		From:  query.Get("from"),
		To:    query.Get("to"),
		Limit: query.Get("limit"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logResponse{
		ID:       log.UserID,
		Username: log.Username,
		Count:    log.Count,
		Log:      toLogEntries(log.Entries),
	})
}

func toLogEntries(exercises []model.Exercise) []logEntry {
	entries := make([]logEntry, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, logEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.Date,
		})
	}
	return entries
}
