package seed

import (
	"context"
	"testing"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/logging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/metrics"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRooms(t *testing.T) {
	repo := repository.NewRoomRepository()
	m := metrics.New(prometheus.NewRegistry())
	logger := logging.NewLogger(&logging.LoggerConfig{
		Logger:   "zap",
		Level:    "error",
		Encoding: "console",
	})

	Rooms(context.Background(), repo, m, logger)

	rooms, err := repo.ListPublic(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, rooms, len(sampleRooms))
	require.Equal(t, float64(len(sampleRooms)), testutil.ToFloat64(m.ActiveRooms))

	for _, room := range rooms {
		require.NotEmpty(t, room.MovieLink)
		require.Equal(t, 0, room.MemberCount())
	}
}
