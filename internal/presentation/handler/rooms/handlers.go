package rooms

import (
	"errors"
	"net/http"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/events"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/json"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/logging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/metrics"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	roomRepository domain.RoomRepository
	roomPublisher  *events.RoomPublisher
	metrics        *metrics.Metrics
	logger         logging.Logger
	listLimit      int
}

func NewHandler(
	roomRepository domain.RoomRepository,
	roomPublisher *events.RoomPublisher,
	m *metrics.Metrics,
	logger logging.Logger,
	listLimit int,
) *Handler {
	return &Handler{
		roomRepository: roomRepository,
		roomPublisher:  roomPublisher,
		metrics:        m,
		logger:         logger,
		listLimit:      listLimit,
	}
}

func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, "Invalid request body")
		return
	}

	room, err := domain.NewRoom(domain.RoomConfig{
		MovieLink:   req.MovieLink,
		Name:        req.RoomName,
		GenreTag:    req.GenreTag,
		PosterImage: req.PosterImage,
		IsPrivate:   req.IsPrivate,
		Password:    req.Password,
	})
	if err != nil {
		json.WriteValidationError(w, "Movie link is required")
		return
	}

	if err := h.roomRepository.Create(r.Context(), room); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	h.metrics.ActiveRooms.Inc()
	h.logger.Info(logging.Rooms, logging.Lifecycle, "room created", map[logging.ExtraKey]any{
		logging.RoomID: room.ID,
		"roomName":     room.Name,
	})

	if err := h.roomPublisher.PublishRoomCreated(r.Context(), room); err != nil {
		h.logger.Errorf("failed to publish room created: %v", err)
	}

	json.Write(w, http.StatusCreated, createRoomResponse{
		Success: true,
		RoomID:  room.ID,
		Room: roomSummary{
			ID:        room.ID,
			Name:      room.Name,
			IsPrivate: room.IsPrivate,
		},
	})
}

func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, "Room ID is missing")
		return
	}

	room, err := h.roomRepository.GetByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteNotFoundError(w, "Room not found")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, roomResponse{
		ID:        room.ID,
		Name:      room.Name,
		IsPrivate: room.IsPrivate,
		GenreTag:  room.GenreTag,
		UserCount: room.MemberCount(),
		MovieLink: room.MovieLink,
	})
}

func (h *Handler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomRepository.ListPublic(r.Context(), h.listLimit)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	listed := make([]listedRoom, 0, len(rooms))
	for _, room := range rooms {
		listed = append(listed, listedRoom{
			ID:          room.ID,
			Name:        room.Name,
			GenreTag:    room.GenreTag,
			PosterImage: room.PosterImage,
			UserCount:   room.MemberCount(),
			CreatedAt:   room.CreatedAt,
		})
	}

	json.Write(w, http.StatusOK, listRoomsResponse{Rooms: listed})
}
