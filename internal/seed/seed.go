package seed

import (
	"context"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/logging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/metrics"
)

var sampleRooms = []domain.RoomConfig{
	{MovieLink: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Name: "Friday Night Horror Marathon", GenreTag: "Horror"},
	{MovieLink: "https://www.youtube.com/watch?v=example2", Name: "Rom-Com Evening", GenreTag: "Romance"},
	{MovieLink: "https://www.youtube.com/watch?v=example3", Name: "Action Movie Night", GenreTag: "Action"},
	{MovieLink: "https://www.youtube.com/watch?v=example4", Name: "Comedy Central", GenreTag: "Comedy"},
	{MovieLink: "https://www.youtube.com/watch?v=example5", Name: "Thriller Thursday", GenreTag: "Thriller"},
	{MovieLink: "https://www.youtube.com/watch?v=example6", Name: "Drama Club", GenreTag: "Drama"},
}

// Rooms fills the registry with sample public rooms so the explore page has
// content on a fresh start. Seeded rooms are ordinary rooms: they vanish when
// their last viewer leaves.
func Rooms(ctx context.Context, repo domain.RoomRepository, m *metrics.Metrics, logger logging.Logger) {
	for _, cfg := range sampleRooms {
		room, err := domain.NewRoom(cfg)
		if err != nil {
			continue
		}
		if err := repo.Create(ctx, room); err != nil {
			logger.Errorf("failed to seed room %q: %v", cfg.Name, err)
			continue
		}
		m.ActiveRooms.Inc()
	}

	logger.Info(logging.Rooms, logging.Startup, "seeded sample rooms", map[logging.ExtraKey]any{
		"count": len(sampleRooms),
	})
}
