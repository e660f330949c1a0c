package rooms

import "time"

// createRoomRequest mirrors the creation form: only the movie link is
// mandatory.
type createRoomRequest struct {
	MovieLink   string `json:"movieLink"`
	RoomName    string `json:"roomName"`
	IsPrivate   bool   `json:"isPrivate"`
	Password    string `json:"password"`
	GenreTag    string `json:"genreTag"`
	PosterImage string `json:"posterImage"`
}

type roomSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"isPrivate"`
}

type createRoomResponse struct {
	Success bool        `json:"success"`
	RoomID  string      `json:"roomId"`
	Room    roomSummary `json:"room"`
}

// roomResponse is the public view of a room: password and history stay
// server-side.
type roomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"isPrivate"`
	GenreTag  string `json:"genreTag"`
	UserCount int    `json:"userCount"`
	MovieLink string `json:"movieLink"`
}

type listedRoom struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	GenreTag    string    `json:"genreTag"`
	PosterImage string    `json:"posterImage,omitempty"`
	UserCount   int       `json:"userCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type listRoomsResponse struct {
	Rooms []listedRoom `json:"rooms"`
}
