package ws

import (
	"time"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
)

// WSMessage is the frame envelope in both directions.
type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Client -> server payloads.

type JoinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LeaveRoomPayload struct {
	RoomID string `json:"roomId"`
}

type SendMessagePayload struct {
	RoomID string `json:"roomId"`
	Text   string `json:"text"`
}

type SendReactionPayload struct {
	RoomID    string  `json:"roomId"`
	Emoji     string  `json:"emoji"`
	Timestamp float64 `json:"timestamp"` // movie position in seconds
}

type SyncMovieStatePayload struct {
	RoomID      string  `json:"roomId"`
	CurrentTime float64 `json:"currentTime"`
	IsPlaying   bool    `json:"isPlaying"`
}

type RequestSyncPayload struct {
	RoomID string `json:"roomId"`
}

type CreatePollPayload struct {
	RoomID   string   `json:"roomId"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type VotePollPayload struct {
	RoomID      string `json:"roomId"`
	PollID      string `json:"pollId"`
	OptionIndex int    `json:"optionIndex"`
}

// Server -> client payloads.

type ErrorPayload struct {
	Message string `json:"message"`
}

type PresencePayload struct {
	Username  string `json:"username"`
	UserID    string `json:"userId"`
	UserCount int    `json:"userCount"`
}

type HostChangedPayload struct {
	NewHostID       string `json:"newHostId"`
	NewHostUsername string `json:"newHostUsername"`
}

type MovieStatePayload struct {
	CurrentTime float64 `json:"currentTime"`
	IsPlaying   bool    `json:"isPlaying"`
	SyncedBy    string  `json:"syncedBy,omitempty"`
	ServerTime  int64   `json:"serverTime"`
}

type PollOption struct {
	Text  string   `json:"text"`
	Votes []string `json:"votes"`
}

type PollPayload struct {
	ID        string       `json:"id"`
	Question  string       `json:"question"`
	Options   []PollOption `json:"options"`
	CreatedBy string       `json:"createdBy"`
	CreatedAt time.Time    `json:"createdAt"`
}

type PollVotePayload struct {
	PollID      string `json:"pollId"`
	OptionIndex int    `json:"optionIndex"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
}

func NewRoomState(snapshot domain.Snapshot) *WSMessage {
	return &WSMessage{
		Type: EventRoomState,
		Data: snapshot,
	}
}

func NewRoomError(message string) *WSMessage {
	return &WSMessage{
		Type: EventRoomError,
		Data: ErrorPayload{Message: message},
	}
}

func NewSyncError(message string) *WSMessage {
	return &WSMessage{
		Type: EventSyncError,
		Data: ErrorPayload{Message: message},
	}
}

func NewUserJoined(username, userID string, userCount int) *WSMessage {
	return &WSMessage{
		Type: EventUserJoined,
		Data: PresencePayload{
			Username:  username,
			UserID:    userID,
			UserCount: userCount,
		},
	}
}

func NewUserLeft(username, userID string, userCount int) *WSMessage {
	return &WSMessage{
		Type: EventUserLeft,
		Data: PresencePayload{
			Username:  username,
			UserID:    userID,
			UserCount: userCount,
		},
	}
}

func NewHostChanged(hostID, hostUsername string) *WSMessage {
	return &WSMessage{
		Type: EventHostChanged,
		Data: HostChangedPayload{
			NewHostID:       hostID,
			NewHostUsername: hostUsername,
		},
	}
}

func NewChatMessage(msg domain.Message) *WSMessage {
	return &WSMessage{
		Type: EventNewMessage,
		Data: msg,
	}
}

func NewReaction(reaction domain.Reaction) *WSMessage {
	return &WSMessage{
		Type: EventNewReaction,
		Data: reaction,
	}
}

func NewMovieStateUpdated(currentTime float64, isPlaying bool, syncedBy string) *WSMessage {
	return &WSMessage{
		Type: EventMovieStateUpdated,
		Data: MovieStatePayload{
			CurrentTime: currentTime,
			IsPlaying:   isPlaying,
			SyncedBy:    syncedBy,
			ServerTime:  time.Now().UnixMilli(),
		},
	}
}

func NewPoll(poll PollPayload) *WSMessage {
	return &WSMessage{
		Type: EventNewPoll,
		Data: poll,
	}
}

func NewPollVoted(vote PollVotePayload) *WSMessage {
	return &WSMessage{
		Type: EventPollVoted,
		Data: vote,
	}
}
