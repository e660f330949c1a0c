package domain

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultRoomName = "Untitled Room"
	DefaultGenreTag = "General"
)

// Room is a watch session with one authoritative playback state. Metadata set
// at creation is immutable; everything behind the mutex is owned by the
// coordinator loop, with the mutex allowing the request API to read member
// counts while the loop is running.
type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MovieLink   string    `json:"movieLink"`
	GenreTag    string    `json:"genreTag"`
	PosterImage string    `json:"posterImage,omitempty"`
	IsPrivate   bool      `json:"isPrivate"`
	CreatedAt   time.Time `json:"createdAt"`

	password string

	mu        sync.RWMutex
	members   []*Session // join order, drives host hand-off
	hostID    string
	messages  []Message
	reactions []Reaction
	syncTime  float64
	isPlaying bool
}

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	ListPublic(ctx context.Context, limit int) ([]*Room, error)
	Delete(ctx context.Context, room *Room) (*Room, error)
}

type RoomConfig struct {
	MovieLink   string
	Name        string
	GenreTag    string
	PosterImage string
	IsPrivate   bool
	Password    string
}

func NewRoom(cfg RoomConfig) (*Room, error) {
	if strings.TrimSpace(cfg.MovieLink) == "" {
		return nil, ErrInvalidInput
	}

	name := cfg.Name
	if name == "" {
		name = DefaultRoomName
	}
	genre := cfg.GenreTag
	if genre == "" {
		genre = DefaultGenreTag
	}
	password := ""
	if cfg.IsPrivate {
		password = cfg.Password
	}

	return &Room{
		ID:          uuid.NewString(),
		Name:        name,
		MovieLink:   cfg.MovieLink,
		GenreTag:    genre,
		PosterImage: cfg.PosterImage,
		IsPrivate:   cfg.IsPrivate,
		password:    password,
		CreatedAt:   time.Now(),
		isPlaying:   true, // host auto-plays on arrival
	}, nil
}

// Join admits a session, electing it host when the room was empty. Returns
// whether the session became host.
func (r *Room) Join(sess *Session, password string) (bool, error) {
	if sess == nil {
		return false, ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.IsPrivate && r.password != password {
		return false, ErrInvalidPassword
	}
	for _, m := range r.members {
		if m.ID == sess.ID {
			return false, ErrAlreadyInRoom
		}
	}

	r.members = append(r.members, sess)
	sess.RoomID = r.ID

	if r.hostID == "" {
		r.hostID = sess.ID
		return true, nil
	}
	return false, nil
}

type LeaveResult struct {
	Member      *Session
	NewHost     *Session // non-nil only when host authority moved
	MemberCount int
	Empty       bool
}

// Leave removes a session, handing the host role to the earliest remaining
// joiner when the host departs. The caller deletes the room when Empty is set.
func (r *Room) Leave(sessionID string) (LeaveResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, m := range r.members {
		if m.ID == sessionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return LeaveResult{}, ErrNotMember
	}

	left := r.members[idx]
	r.members = append(r.members[:idx], r.members[idx+1:]...)
	left.RoomID = ""

	res := LeaveResult{
		Member:      left,
		MemberCount: len(r.members),
		Empty:       len(r.members) == 0,
	}

	if r.hostID == sessionID {
		if len(r.members) > 0 {
			r.hostID = r.members[0].ID
			res.NewHost = r.members[0]
		} else {
			r.hostID = ""
		}
	}
	return res, nil
}

func (r *Room) AppendMessage(sess *Session, text string) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isMemberLocked(sess.ID) {
		return Message{}, ErrNotMember
	}

	msg := Message{
		ID:        NextEventID(),
		UserID:    sess.ID,
		Username:  sess.Username,
		Text:      text,
		Timestamp: time.Now(),
	}
	r.messages = append(r.messages, msg)
	return msg, nil
}

func (r *Room) AppendReaction(sess *Session, emoji string, movieTimestamp float64) (Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isMemberLocked(sess.ID) {
		return Reaction{}, ErrNotMember
	}

	reaction := Reaction{
		ID:        NextEventID(),
		UserID:    sess.ID,
		Username:  sess.Username,
		Emoji:     emoji,
		Timestamp: movieTimestamp,
		CreatedAt: time.Now(),
	}
	r.reactions = append(r.reactions, reaction)
	return reaction, nil
}

// SetPlayback applies a host sync. The host check runs against the current
// hostID under the lock, so a stale host can never slip a mutation through.
func (r *Room) SetPlayback(sessionID string, currentTime float64, isPlaying bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isMemberLocked(sessionID) {
		return ErrNotMember
	}
	if r.hostID != sessionID {
		return ErrNotHost
	}

	r.syncTime = currentTime
	r.isPlaying = isPlaying
	return nil
}

func (r *Room) Playback() (float64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.syncTime, r.isPlaying
}

func (r *Room) HostID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hostID
}

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *Room) IsMember(sessionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isMemberLocked(sessionID)
}

func (r *Room) isMemberLocked(sessionID string) bool {
	for _, m := range r.members {
		if m.ID == sessionID {
			return true
		}
	}
	return false
}

type MemberInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsHost   bool   `json:"isHost"`
}

// Snapshot is the full room state handed to a session at join time, in lieu of
// event replay.
type Snapshot struct {
	RoomID    string       `json:"roomId"`
	RoomName  string       `json:"roomName"`
	MovieLink string       `json:"movieLink"`
	Messages  []Message    `json:"messages"`
	Reactions []Reaction   `json:"reactions"`
	SyncTime  float64      `json:"syncTime"`
	IsPlaying bool         `json:"isPlaying"`
	UserCount int          `json:"userCount"`
	IsHost    bool         `json:"isHost"`
	HostID    string       `json:"hostId"`
	Users     []MemberInfo `json:"users"`
}

func (r *Room) Snapshot(selfID string) Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	messages := make([]Message, len(r.messages))
	copy(messages, r.messages)
	reactions := make([]Reaction, len(r.reactions))
	copy(reactions, r.reactions)

	users := make([]MemberInfo, 0, len(r.members))
	for _, m := range r.members {
		users = append(users, MemberInfo{
			ID:       m.ID,
			Username: m.Username,
			IsHost:   m.ID == r.hostID,
		})
	}

	return Snapshot{
		RoomID:    r.ID,
		RoomName:  r.Name,
		MovieLink: r.MovieLink,
		Messages:  messages,
		Reactions: reactions,
		SyncTime:  r.syncTime,
		IsPlaying: r.isPlaying,
		UserCount: len(r.members),
		IsHost:    selfID == r.hostID,
		HostID:    r.hostID,
		Users:     users,
	}
}
