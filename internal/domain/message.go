package domain

import (
	"strconv"
	"sync/atomic"
	"time"
)

type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Reaction is an emoji pinned to a position in the movie, not to wall-clock time.
type Reaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Emoji     string    `json:"emoji"`
	Timestamp float64   `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

var lastEventID atomic.Int64

// NextEventID returns a process-wide monotonic id for chat, reaction and poll
// entries. Ids are millisecond timestamps bumped forward on collision, so they
// stay unique even for events landing in the same millisecond.
func NextEventID() string {
	for {
		now := time.Now().UnixMilli()
		last := lastEventID.Load()
		if now <= last {
			now = last + 1
		}
		if lastEventID.CompareAndSwap(last, now) {
			return strconv.FormatInt(now, 10)
		}
	}
}
