package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T, cfg RoomConfig) *Room {
	t.Helper()

	if cfg.MovieLink == "" {
		cfg.MovieLink = "https://example.com/movie.mp4"
	}

	room, err := NewRoom(cfg)
	require.NoError(t, err)
	return room
}

func TestNewRoom(t *testing.T) {
	t.Run("requires a movie link", func(t *testing.T) {
		_, err := NewRoom(RoomConfig{MovieLink: "   "})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("applies defaults", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{})

		require.NotEmpty(t, room.ID)
		require.Equal(t, DefaultRoomName, room.Name)
		require.Equal(t, DefaultGenreTag, room.GenreTag)
		require.False(t, room.IsPrivate)

		_, isPlaying := room.Playback()
		require.True(t, isPlaying)
	})

	t.Run("ignores password on public rooms", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{Password: "secret"})

		_, err := room.Join(NewSession("a", "alice"), "")
		require.NoError(t, err)
	})
}

func TestRoomJoin(t *testing.T) {
	t.Run("first joiner becomes host", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{})
		alice := NewSession("a", "alice")

		becameHost, err := room.Join(alice, "")
		require.NoError(t, err)
		require.True(t, becameHost)
		require.Equal(t, "a", room.HostID())
		require.Equal(t, room.ID, alice.RoomID)
	})

	t.Run("later joiners do not take the host role", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{})

		_, err := room.Join(NewSession("a", "alice"), "")
		require.NoError(t, err)

		becameHost, err := room.Join(NewSession("b", "bob"), "")
		require.NoError(t, err)
		require.False(t, becameHost)
		require.Equal(t, "a", room.HostID())
		require.Equal(t, 2, room.MemberCount())
	})

	t.Run("rejects duplicate sessions", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{})
		alice := NewSession("a", "alice")

		_, err := room.Join(alice, "")
		require.NoError(t, err)

		_, err = room.Join(alice, "")
		require.ErrorIs(t, err, ErrAlreadyInRoom)
		require.Equal(t, 1, room.MemberCount())
	})

	t.Run("private room checks the password", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{IsPrivate: true, Password: "hunter2"})

		_, err := room.Join(NewSession("a", "alice"), "wrong")
		require.ErrorIs(t, err, ErrInvalidPassword)
		require.Equal(t, 0, room.MemberCount())

		_, err = room.Join(NewSession("a", "alice"), "hunter2")
		require.NoError(t, err)
	})
}

func TestRoomLeave(t *testing.T) {
	t.Run("host hand-off goes to the earliest remaining joiner", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{})
		alice := NewSession("a", "alice")
		bob := NewSession("b", "bob")
		carol := NewSession("c", "carol")

		for _, s := range []*Session{alice, bob, carol} {
			_, err := room.Join(s, "")
			require.NoError(t, err)
		}

		res, err := room.Leave("a")
		require.NoError(t, err)
		require.NotNil(t, res.NewHost)
		require.Equal(t, "b", res.NewHost.ID)
		require.Equal(t, "b", room.HostID())
		require.Equal(t, 2, res.MemberCount)
		require.Empty(t, alice.RoomID)

		res, err = room.Leave("b")
		require.NoError(t, err)
		require.NotNil(t, res.NewHost)
		require.Equal(t, "c", res.NewHost.ID)
		require.Equal(t, "c", room.HostID())
	})

	t.Run("non-host departure keeps the host", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{})
		_, err := room.Join(NewSession("a", "alice"), "")
		require.NoError(t, err)
		_, err = room.Join(NewSession("b", "bob"), "")
		require.NoError(t, err)

		res, err := room.Leave("b")
		require.NoError(t, err)
		require.Nil(t, res.NewHost)
		require.Equal(t, "a", room.HostID())
	})

	t.Run("last member empties the room", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{})
		_, err := room.Join(NewSession("a", "alice"), "")
		require.NoError(t, err)

		res, err := room.Leave("a")
		require.NoError(t, err)
		require.True(t, res.Empty)
		require.Nil(t, res.NewHost)
		require.Equal(t, 0, res.MemberCount)
		require.Empty(t, room.HostID())
	})

	t.Run("unknown session", func(t *testing.T) {
		room := newTestRoom(t, RoomConfig{})
		_, err := room.Leave("ghost")
		require.ErrorIs(t, err, ErrNotMember)
	})
}

func TestRoomPlaybackAuthority(t *testing.T) {
	room := newTestRoom(t, RoomConfig{})
	alice := NewSession("a", "alice")
	bob := NewSession("b", "bob")

	_, err := room.Join(alice, "")
	require.NoError(t, err)
	_, err = room.Join(bob, "")
	require.NoError(t, err)

	t.Run("only the host can sync", func(t *testing.T) {
		err := room.SetPlayback("b", 42.5, false)
		require.ErrorIs(t, err, ErrNotHost)

		syncTime, isPlaying := room.Playback()
		require.Zero(t, syncTime)
		require.True(t, isPlaying)

		require.NoError(t, room.SetPlayback("a", 42.5, false))

		syncTime, isPlaying = room.Playback()
		require.Equal(t, 42.5, syncTime)
		require.False(t, isPlaying)
	})

	t.Run("non-member is rejected before the host check", func(t *testing.T) {
		err := room.SetPlayback("ghost", 1, true)
		require.ErrorIs(t, err, ErrNotMember)
	})

	t.Run("authority follows the hand-off", func(t *testing.T) {
		_, err := room.Leave("a")
		require.NoError(t, err)

		require.NoError(t, room.SetPlayback("b", 99, true))

		syncTime, isPlaying := room.Playback()
		require.Equal(t, float64(99), syncTime)
		require.True(t, isPlaying)
	})
}

func TestRoomHistory(t *testing.T) {
	room := newTestRoom(t, RoomConfig{})
	alice := NewSession("a", "alice")
	_, err := room.Join(alice, "")
	require.NoError(t, err)

	t.Run("messages from non-members are refused", func(t *testing.T) {
		_, err := room.AppendMessage(NewSession("x", "mallory"), "hi")
		require.ErrorIs(t, err, ErrNotMember)
	})

	t.Run("messages and reactions land in the snapshot", func(t *testing.T) {
		msg, err := room.AppendMessage(alice, "hello")
		require.NoError(t, err)
		require.NotEmpty(t, msg.ID)
		require.Equal(t, "alice", msg.Username)
		require.False(t, msg.Timestamp.IsZero())

		reaction, err := room.AppendReaction(alice, "🔥", 12.3)
		require.NoError(t, err)
		require.Equal(t, 12.3, reaction.Timestamp)

		snap := room.Snapshot("a")
		require.Len(t, snap.Messages, 1)
		require.Len(t, snap.Reactions, 1)
		require.Equal(t, "hello", snap.Messages[0].Text)
	})
}

func TestRoomSnapshot(t *testing.T) {
	room := newTestRoom(t, RoomConfig{Name: "Movie Night"})
	alice := NewSession("a", "alice")
	bob := NewSession("b", "bob")

	_, err := room.Join(alice, "")
	require.NoError(t, err)
	_, err = room.Join(bob, "")
	require.NoError(t, err)

	hostView := room.Snapshot("a")
	require.True(t, hostView.IsHost)
	require.Equal(t, "a", hostView.HostID)
	require.Equal(t, 2, hostView.UserCount)
	require.Equal(t, "Movie Night", hostView.RoomName)
	require.Len(t, hostView.Users, 2)
	require.True(t, hostView.Users[0].IsHost)
	require.False(t, hostView.Users[1].IsHost)

	guestView := room.Snapshot("b")
	require.False(t, guestView.IsHost)
	require.Equal(t, "a", guestView.HostID)

	// The snapshot is a copy: later appends must not leak into it.
	_, err = room.AppendMessage(alice, "after the fact")
	require.NoError(t, err)
	require.Empty(t, hostView.Messages)
}
