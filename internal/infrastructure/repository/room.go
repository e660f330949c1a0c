package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
)

const defaultListLimit = 20

// roomRepository is the process-scoped room registry. Rooms are volatile: the
// coordinator deletes a room the moment its last member leaves, and a deleted
// id is never reused.
type roomRepository struct {
	rooms map[string]*domain.Room // ID -> Room
	mu    *sync.RWMutex
}

func NewRoomRepository() domain.RoomRepository {
	return &roomRepository{
		rooms: make(map[string]*domain.Room),
		mu:    &sync.RWMutex{},
	}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room == nil || room.ID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return domain.ErrRoomAlreadyExists
	}

	r.rooms[room.ID] = room

	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[id]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}

	return room, nil
}

// ListPublic returns public rooms, newest first, truncated to limit. Computed
// on demand: member counts have to be read live anyway.
func (r *roomRepository) ListPublic(ctx context.Context, limit int) ([]*domain.Room, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	r.mu.RLock()
	public := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		if !room.IsPrivate {
			public = append(public, room)
		}
	}
	r.mu.RUnlock()

	sort.Slice(public, func(i, j int) bool {
		return public[i].CreatedAt.After(public[j].CreatedAt)
	})

	if len(public) > limit {
		public = public[:limit]
	}

	return public, nil
}

func (r *roomRepository) Delete(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if room == nil || room.ID == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.rooms[room.ID]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}

	delete(r.rooms, room.ID)

	return stored, nil
}
