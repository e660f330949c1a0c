package rooms

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/logging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/metrics"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/repository"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	repo    domain.RoomRepository
	metrics *metrics.Metrics
	router  *chi.Mux
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	logger := logging.NewLogger(&logging.LoggerConfig{
		Logger:   "zap",
		Level:    "error",
		Encoding: "console",
	})

	f := &handlerFixture{
		repo:    repository.NewRoomRepository(),
		metrics: metrics.New(prometheus.NewRegistry()),
	}

	h := NewHandler(f.repo, nil, f.metrics, logger, 20)

	f.router = chi.NewRouter()
	f.router.Post("/api/rooms/create", h.CreateRoomHandler)
	f.router.Get("/api/rooms", h.ListRoomsHandler)
	f.router.Get("/api/rooms/{roomId}", h.GetRoomHandler)

	return f
}

func (f *handlerFixture) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestCreateRoomHandler(t *testing.T) {
	t.Run("creates a room", func(t *testing.T) {
		f := newHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/rooms/create", map[string]any{
			"movieLink": "https://example.com/movie.mp4",
			"roomName":  "Movie Night",
			"isPrivate": true,
			"password":  "hunter2",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		resp := decode[createRoomResponse](t, rec)
		require.True(t, resp.Success)
		require.NotEmpty(t, resp.RoomID)
		require.Equal(t, "Movie Night", resp.Room.Name)
		require.True(t, resp.Room.IsPrivate)

		room, err := f.repo.GetByID(context.Background(), resp.RoomID)
		require.NoError(t, err)
		require.Equal(t, "Movie Night", room.Name)
		require.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ActiveRooms))
	})

	t.Run("missing movie link", func(t *testing.T) {
		f := newHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/rooms/create", map[string]any{
			"roomName": "No Movie",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[map[string]string](t, rec)
		require.Equal(t, "Movie link is required", resp["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/rooms/create", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRoomHandler(t *testing.T) {
	f := newHandlerFixture(t)

	room, err := domain.NewRoom(domain.RoomConfig{
		MovieLink: "https://example.com/movie.mp4",
		Name:      "Movie Night",
		GenreTag:  "Horror",
	})
	require.NoError(t, err)
	require.NoError(t, f.repo.Create(context.Background(), room))

	t.Run("found", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/rooms/"+room.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[roomResponse](t, rec)
		require.Equal(t, room.ID, resp.ID)
		require.Equal(t, "Horror", resp.GenreTag)
		require.Equal(t, 0, resp.UserCount)
		require.Equal(t, "https://example.com/movie.mp4", resp.MovieLink)
	})

	t.Run("not found", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/rooms/missing", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		resp := decode[map[string]string](t, rec)
		require.Equal(t, "Room not found", resp["error"])
	})
}

func TestListRoomsHandler(t *testing.T) {
	f := newHandlerFixture(t)

	public, err := domain.NewRoom(domain.RoomConfig{
		MovieLink: "https://example.com/a.mp4",
		Name:      "Public",
	})
	require.NoError(t, err)
	private, err := domain.NewRoom(domain.RoomConfig{
		MovieLink: "https://example.com/b.mp4",
		Name:      "Private",
		IsPrivate: true,
	})
	require.NoError(t, err)

	require.NoError(t, f.repo.Create(context.Background(), public))
	require.NoError(t, f.repo.Create(context.Background(), private))

	rec := f.do(t, http.MethodGet, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[listRoomsResponse](t, rec)
	require.Len(t, resp.Rooms, 1)
	require.Equal(t, "Public", resp.Rooms[0].Name)
	require.Equal(t, 0, resp.Rooms[0].UserCount)
}
