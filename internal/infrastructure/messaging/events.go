package messaging

import (
	"encoding/json"
	"time"
)

const (
	EventRoomCreated  = "room.created"
	EventRoomDeleted  = "room.deleted"
	EventMemberJoined = "room.member_joined"
	EventMemberLeft   = "room.member_left"
)

type AmqpMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type RoomEventData struct {
	RoomID      string    `json:"roomId"`
	RoomName    string    `json:"roomName"`
	MemberCount int       `json:"memberCount"`
	OccurredAt  time.Time `json:"occurredAt"`
}
