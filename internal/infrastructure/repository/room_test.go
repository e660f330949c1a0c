package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
	"github.com/stretchr/testify/require"
)

func newRoom(t *testing.T, name string, private bool) *domain.Room {
	t.Helper()

	room, err := domain.NewRoom(domain.RoomConfig{
		MovieLink: "https://example.com/movie.mp4",
		Name:      name,
		IsPrivate: private,
		Password:  "pw",
	})
	require.NoError(t, err)
	return room
}

func TestRoomRepositoryCreateGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	room := newRoom(t, "First", false)
	require.NoError(t, repo.Create(ctx, room))

	t.Run("duplicate id", func(t *testing.T) {
		err := repo.Create(ctx, room)
		require.ErrorIs(t, err, domain.ErrRoomAlreadyExists)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, room.ID)
		require.NoError(t, err)
		require.Same(t, room, got)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "nope")
		require.ErrorIs(t, err, domain.ErrRoomNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRoomRepositoryListPublic(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	oldest := newRoom(t, "Oldest", false)
	oldest.CreatedAt = time.Now().Add(-2 * time.Hour)
	middle := newRoom(t, "Middle", false)
	middle.CreatedAt = time.Now().Add(-time.Hour)
	newest := newRoom(t, "Newest", false)
	hidden := newRoom(t, "Hidden", true)

	for _, room := range []*domain.Room{oldest, middle, newest, hidden} {
		require.NoError(t, repo.Create(ctx, room))
	}

	t.Run("public only, newest first", func(t *testing.T) {
		rooms, err := repo.ListPublic(ctx, 10)
		require.NoError(t, err)
		require.Len(t, rooms, 3)
		require.Equal(t, "Newest", rooms[0].Name)
		require.Equal(t, "Middle", rooms[1].Name)
		require.Equal(t, "Oldest", rooms[2].Name)
	})

	t.Run("limit truncates", func(t *testing.T) {
		rooms, err := repo.ListPublic(ctx, 2)
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		require.Equal(t, "Newest", rooms[0].Name)
	})
}

func TestRoomRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()

	room := newRoom(t, "Doomed", false)
	require.NoError(t, repo.Create(ctx, room))

	deleted, err := repo.Delete(ctx, room)
	require.NoError(t, err)
	require.Same(t, room, deleted)

	_, err = repo.GetByID(ctx, room.ID)
	require.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = repo.Delete(ctx, room)
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
}
