package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/handler"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/service"
)

// memoryRepo is a minimal in-memory repository.UserRepository so handler
// tests run against the real service without a database.
type memoryRepo struct {
	users []*model.User
}

func (m *memoryRepo) Create(_ context.Context, user *model.User) error {
	stored := *user
	stored.ID = fmt.Sprintf("u%d", len(m.users)+1)
	user.ID = stored.ID
	m.users = append(m.users, &stored)
	return nil
}

func (m *memoryRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			copied := *u
			copied.Exercises = append([]model.Exercise(nil), u.Exercises...)
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (m *memoryRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *memoryRepo) AppendExercise(_ context.Context, userID string, exercise model.Exercise) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.Exercises = append(u.Exercises, exercise)
			return nil
		}
	}
	return apperror.NotFound("user")
}

// newTestRouter wires the handler under test into a chi router so that
// path parameters resolve the same way they do in production.
func newTestRouter(t *testing.T) (*chi.Mux, *memoryRepo) {
	t.Helper()

	repo := &memoryRepo{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	h := handler.NewUserHandler(service.NewUserService(repo, logger), logger)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Post("/users", h.HandleCreateUser)
		r.Get("/users", h.HandleListUsers)
		r.Post("/users/{id}/exercises", h.HandleAddExercise)
		r.Get("/users/{id}/logs", h.HandleGetLog)
	})

	return router, repo
}

func postForm(t *testing.T, router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func createUser(t *testing.T, router http.Handler, username string) string {
	t.Helper()

	rr := postForm(t, router, "/api/users", url.Values{"username": {username}})
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.NotEmpty(t, body["_id"])
	return body["_id"]
}

func TestHandleCreateUser(t *testing.T) {
	t.Run("creates and echoes the user", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := postForm(t, router, "/api/users", url.Values{"username": {"alice"}})

		assert.Equal(t, http.StatusOK, rr.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.NotEmpty(t, body["_id"])
	})

	t.Run("same username returns the same id", func(t *testing.T) {
		router, repo := newTestRouter(t)

		first := createUser(t, router, "alice")
		second := createUser(t, router, "alice")

		assert.Equal(t, first, second)
		assert.Len(t, repo.users, 1)
	})

	t.Run("missing username", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := postForm(t, router, "/api/users", url.Values{})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"username is missing"}`, rr.Body.String())
	})
}

func TestHandleListUsers(t *testing.T) {
	t.Run("empty store gives an empty array", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := get(t, router, "/api/users")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("projections only", func(t *testing.T) {
		router, _ := newTestRouter(t)
		id := createUser(t, router, "alice")
		postForm(t, router, "/api/users/"+id+"/exercises", url.Values{
			"description": {"run"}, "duration": {"30"},
		})
		createUser(t, router, "bob")

		rr := get(t, router, "/api/users")

		assert.Equal(t, http.StatusOK, rr.Code)

		var body []map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		require.Len(t, body, 2)
		for _, u := range body {
			assert.Contains(t, u, "username")
			assert.Contains(t, u, "_id")
			assert.NotContains(t, u, "exercises")
		}
	})
}

func TestHandleAddExercise(t *testing.T) {
	t.Run("echoes the exercise with the user id", func(t *testing.T) {
		router, _ := newTestRouter(t)
		id := createUser(t, router, "alice")

		rr := postForm(t, router, "/api/users/"+id+"/exercises", url.Values{
			"description": {"run"},
			"duration":    {"30"},
			"date":        {"2023-05-01"},
		})

		assert.Equal(t, http.StatusOK, rr.Code)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "run", body["description"])
		assert.Equal(t, float64(30), body["duration"])
		assert.Equal(t, "Mon May 01 2023", body["date"])
		assert.Equal(t, id, body["_id"])
	})

	t.Run("zero duration is missing", func(t *testing.T) {
		router, _ := newTestRouter(t)
		id := createUser(t, router, "alice")

		rr := postForm(t, router, "/api/users/"+id+"/exercises", url.Values{
			"description": {"run"},
			"duration":    {"0"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"description or duration is missing"}`, rr.Body.String())
	})

	t.Run("missing description", func(t *testing.T) {
		router, _ := newTestRouter(t)
		id := createUser(t, router, "alice")

		rr := postForm(t, router, "/api/users/"+id+"/exercises", url.Values{
			"duration": {"30"},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"description or duration is missing"}`, rr.Body.String())
	})

	t.Run("unknown user", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := postForm(t, router, "/api/users/unknown/exercises", url.Values{
			"description": {"run"},
			"duration":    {"30"},
		})

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, rr.Body.String())
	})
}

func TestHandleGetLog(t *testing.T) {
	addExercise := func(t *testing.T, router http.Handler, id, description, duration, date string) {
		t.Helper()
		rr := postForm(t, router, "/api/users/"+id+"/exercises", url.Values{
			"description": {description},
			"duration":    {duration},
			"date":        {date},
		})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	t.Run("full log", func(t *testing.T) {
		router, _ := newTestRouter(t)
		id := createUser(t, router, "alice")
		addExercise(t, router, id, "run", "30", "2023-05-01")

		rr := get(t, router, "/api/users/"+id+"/logs")

		assert.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			ID       string `json:"_id"`
			Username string `json:"username"`
			Count    int    `json:"count"`
			Log      []struct {
				Description string `json:"description"`
				Duration    int    `json:"duration"`
				Date        string `json:"date"`
			} `json:"log"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, id, body.ID)
		assert.Equal(t, "alice", body.Username)
		assert.Equal(t, 1, body.Count)
		require.Len(t, body.Log, 1)
		assert.Equal(t, "run", body.Log[0].Description)
		assert.Equal(t, 30, body.Log[0].Duration)
		assert.Equal(t, "Mon May 01 2023", body.Log[0].Date)
	})

	t.Run("count ignores filters and limit", func(t *testing.T) {
		router, _ := newTestRouter(t)
		id := createUser(t, router, "alice")
		addExercise(t, router, id, "run", "30", "2023-01-10")
		addExercise(t, router, id, "swim", "45", "2023-01-20")
		addExercise(t, router, id, "bike", "60", "2023-02-10")

		rr := get(t, router, "/api/users/"+id+"/logs?from=2023-01-01&to=2023-01-31&limit=1")

		assert.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Count int               `json:"count"`
			Log   []json.RawMessage `json:"log"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, 3, body.Count)
		assert.Len(t, body.Log, 1)
	})

	t.Run("empty log is an array", func(t *testing.T) {
		router, _ := newTestRouter(t)
		id := createUser(t, router, "alice")

		rr := get(t, router, "/api/users/"+id+"/logs")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"log":[]`)
	})

	t.Run("unknown user", func(t *testing.T) {
		router, _ := newTestRouter(t)

		rr := get(t, router, "/api/users/unknown/logs")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, rr.Body.String())
	})
}
