package domain

// Session binds one live connection to a user identity and, once joined, a room.
// It lives exactly as long as the connection; the coordinator is the only writer
// after creation.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	RoomID   string `json:"roomId,omitempty"`
}

func NewSession(id, username string) *Session {
	if username == "" {
		username = GuestName(id)
	}
	return &Session{
		ID:       id,
		Username: username,
	}
}

// GuestName derives a display name for sessions that never supplied one.
func GuestName(id string) string {
	short := id
	if len(short) > 4 {
		short = short[:4]
	}
	return "Guest_" + short
}
