package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	Rooms           Category = "Rooms"
	Sync            Category = "Sync"
	Chat            Category = "Chat"
	RabbitMQ        Category = "RabbitMQ"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
)

const (
	Startup      SubCategory = "Startup"
	Shutdown     SubCategory = "Shutdown"
	Membership   SubCategory = "Membership"
	HostElection SubCategory = "HostElection"
	Authority    SubCategory = "Authority"
	Broadcast    SubCategory = "Broadcast"
	RateLimiting SubCategory = "RateLimiting"
	Lifecycle    SubCategory = "Lifecycle"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	RoomID       ExtraKey = "RoomId"
	SessionID    ExtraKey = "SessionId"
	Username     ExtraKey = "Username"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	ErrorMessage ExtraKey = "ErrorMessage"
)
