package domain

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrInvalidPassword   = errors.New("incorrect password")
	ErrNotHost           = errors.New("only the host can control playback")
	ErrNotMember         = errors.New("not a member of this room")
	ErrAlreadyInRoom     = errors.New("already in room")
	ErrInvalidInput      = errors.New("invalid input")
)
