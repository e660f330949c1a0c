package ws

// Client -> server events.
const (
	EventJoinRoom       = "joinRoom"
	EventLeaveRoom      = "leaveRoom"
	EventSendMessage    = "sendMessage"
	EventSendReaction   = "sendReaction"
	EventSyncMovieState = "syncMovieState"
	EventRequestSync    = "requestSync"
	EventCreatePoll     = "createPoll"
	EventVotePoll       = "votePoll"
)

// Server -> client events.
const (
	EventRoomState         = "roomState"
	EventRoomError         = "roomError"
	EventNewMessage        = "newMessage"
	EventNewReaction       = "newReaction"
	EventMovieStateUpdated = "movieStateUpdated"
	EventSyncError         = "syncError"
	EventNewPoll           = "newPoll"
	EventPollVoted         = "pollVoted"
	EventUserJoined        = "userJoined"
	EventUserLeft          = "userLeft"
	EventHostChanged       = "hostChanged"
)
