package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/events"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/logging"
	"github.com/Rapheal-Kwabena/movieroom-app/internal/infrastructure/metrics"
)

type InboundEvent struct {
	Client *Client
	Type   string
	Data   json.RawMessage
}

// Core is the room coordinator. Run owns a single goroutine through which
// every membership change, chat append and sync request flows, so room state
// is never mutated concurrently.
type Core struct {
	register   chan *Client
	unregister chan *Client
	inbound    chan *InboundEvent

	clients     map[string]*Client            // session id -> client
	roomClients map[string]map[string]*Client // room id -> session id -> client

	roomRepository domain.RoomRepository
	publisher      *events.RoomPublisher
	metrics        *metrics.Metrics
	logger         logging.Logger
}

func NewCore(
	roomRepository domain.RoomRepository,
	publisher *events.RoomPublisher,
	m *metrics.Metrics,
	logger logging.Logger,
) *Core {
	return &Core{
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		inbound:        make(chan *InboundEvent, 256),
		clients:        make(map[string]*Client),
		roomClients:    make(map[string]map[string]*Client),
		roomRepository: roomRepository,
		publisher:      publisher,
		metrics:        m,
		logger:         logger,
	}
}

func (c *Core) Register() chan<- *Client {
	return c.register
}

func (c *Core) Unregister() chan<- *Client {
	return c.unregister
}

func (c *Core) Inbound() chan<- *InboundEvent {
	return c.inbound
}

func (c *Core) Run() {
	for {
		select {
		case cl := <-c.register:
			c.clients[cl.Session.ID] = cl
			c.metrics.ConnectedSessions.Inc()

		case cl := <-c.unregister:
			c.safely(func() { c.handleLeave(cl) })
			if _, ok := c.clients[cl.Session.ID]; ok {
				delete(c.clients, cl.Session.ID)
				close(cl.Message)
				c.metrics.ConnectedSessions.Dec()
			}

		case ev := <-c.inbound:
			c.metrics.EventsTotal.WithLabelValues(ev.Type).Inc()
			c.safely(func() { c.dispatch(ev) })
		}
	}
}

// safely isolates a faulty event handler: one panic must never take other
// rooms or sessions down with it.
func (c *Core) safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Errorf("recovered from event handler panic: %v", r)
		}
	}()
	fn()
}

func (c *Core) dispatch(ev *InboundEvent) {
	switch ev.Type {
	case EventJoinRoom:
		var p JoinRoomPayload
		if json.Unmarshal(ev.Data, &p) == nil {
			c.handleJoin(ev.Client, p)
		}
	case EventLeaveRoom:
		c.handleLeave(ev.Client)
	case EventSendMessage:
		var p SendMessagePayload
		if json.Unmarshal(ev.Data, &p) == nil {
			c.handleSendMessage(ev.Client, p)
		}
	case EventSendReaction:
		var p SendReactionPayload
		if json.Unmarshal(ev.Data, &p) == nil {
			c.handleSendReaction(ev.Client, p)
		}
	case EventSyncMovieState:
		var p SyncMovieStatePayload
		if json.Unmarshal(ev.Data, &p) == nil {
			c.handleSyncMovieState(ev.Client, p)
		}
	case EventRequestSync:
		var p RequestSyncPayload
		if json.Unmarshal(ev.Data, &p) == nil {
			c.handleRequestSync(ev.Client, p)
		}
	case EventCreatePoll:
		var p CreatePollPayload
		if json.Unmarshal(ev.Data, &p) == nil {
			c.handleCreatePoll(ev.Client, p)
		}
	case EventVotePoll:
		var p VotePollPayload
		if json.Unmarshal(ev.Data, &p) == nil {
			c.handleVotePoll(ev.Client, p)
		}
	default:
		c.logger.Debugf("unknown event type %q from session %s", ev.Type, ev.Client.Session.ID)
	}
}

func (c *Core) handleJoin(cl *Client, p JoinRoomPayload) {
	if cl.Session.RoomID != "" {
		c.send(cl, NewRoomError("Already in a room"))
		return
	}

	room, err := c.roomRepository.GetByID(context.Background(), p.RoomID)
	if err != nil {
		c.send(cl, NewRoomError("Room not found"))
		return
	}

	if p.Username != "" {
		cl.Session.Username = p.Username
	}

	becameHost, err := room.Join(cl.Session, p.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPassword):
			c.send(cl, NewRoomError("Incorrect password"))
		default:
			c.send(cl, NewRoomError("Cannot join room"))
		}
		return
	}

	members, ok := c.roomClients[room.ID]
	if !ok {
		members = make(map[string]*Client)
		c.roomClients[room.ID] = members
	}
	members[cl.Session.ID] = cl

	if becameHost {
		c.logger.Info(logging.Rooms, logging.HostElection, "session elected host", map[logging.ExtraKey]any{
			logging.RoomID:    room.ID,
			logging.SessionID: cl.Session.ID,
			logging.Username:  cl.Session.Username,
		})
	}

	c.broadcastToRoom(room.ID, NewUserJoined(cl.Session.Username, cl.Session.ID, room.MemberCount()), cl.Session.ID)

	// The joiner gets the whole room in one snapshot instead of an event
	// replay.
	c.send(cl, NewRoomState(room.Snapshot(cl.Session.ID)))

	if err := c.publisher.PublishMemberJoined(context.Background(), room); err != nil {
		c.logger.Errorf("failed to publish member joined: %v", err)
	}
}

// handleLeave covers both the explicit leaveRoom event and transport
// disconnects; the two must be indistinguishable to the rest of the room.
func (c *Core) handleLeave(cl *Client) {
	roomID := cl.Session.RoomID
	if roomID == "" {
		return
	}

	room, err := c.roomRepository.GetByID(context.Background(), roomID)
	if err != nil {
		cl.Session.RoomID = ""
		return
	}

	res, err := room.Leave(cl.Session.ID)
	if err != nil {
		cl.Session.RoomID = ""
		return
	}

	if members, ok := c.roomClients[roomID]; ok {
		delete(members, cl.Session.ID)
		if len(members) == 0 {
			delete(c.roomClients, roomID)
		}
	}

	if res.NewHost != nil {
		c.logger.Info(logging.Rooms, logging.HostElection, "host left, authority transferred", map[logging.ExtraKey]any{
			logging.RoomID:    roomID,
			logging.SessionID: res.NewHost.ID,
			logging.Username:  res.NewHost.Username,
		})
		c.broadcastToRoom(roomID, NewHostChanged(res.NewHost.ID, res.NewHost.Username), "")
	}

	c.broadcastToRoom(roomID, NewUserLeft(res.Member.Username, res.Member.ID, res.MemberCount), "")

	if res.Empty {
		if _, err := c.roomRepository.Delete(context.Background(), room); err == nil {
			c.metrics.ActiveRooms.Dec()
			c.logger.Info(logging.Rooms, logging.Lifecycle, "deleted empty room", map[logging.ExtraKey]any{
				logging.RoomID: roomID,
			})
			if err := c.publisher.PublishRoomDeleted(context.Background(), room); err != nil {
				c.logger.Errorf("failed to publish room deleted: %v", err)
			}
		}
		return
	}

	if err := c.publisher.PublishMemberLeft(context.Background(), room); err != nil {
		c.logger.Errorf("failed to publish member left: %v", err)
	}
}

func (c *Core) handleSendMessage(cl *Client, p SendMessagePayload) {
	room, ok := c.boundRoom(cl, p.RoomID)
	if !ok {
		return
	}

	msg, err := room.AppendMessage(cl.Session, p.Text)
	if err != nil {
		return
	}

	// Everyone, sender included: the sender renders from the canonical
	// broadcast so there is a single ordering truth.
	c.broadcastToRoom(room.ID, NewChatMessage(msg), "")
}

func (c *Core) handleSendReaction(cl *Client, p SendReactionPayload) {
	room, ok := c.boundRoom(cl, p.RoomID)
	if !ok {
		return
	}

	reaction, err := room.AppendReaction(cl.Session, p.Emoji, p.Timestamp)
	if err != nil {
		return
	}

	c.broadcastToRoom(room.ID, NewReaction(reaction), "")
}

func (c *Core) handleSyncMovieState(cl *Client, p SyncMovieStatePayload) {
	room, ok := c.boundRoom(cl, p.RoomID)
	if !ok {
		return
	}

	if err := room.SetPlayback(cl.Session.ID, p.CurrentTime, p.IsPlaying); err != nil {
		if errors.Is(err, domain.ErrNotHost) {
			c.metrics.SyncRejections.Inc()
			c.logger.Warn(logging.Sync, logging.Authority, "non-host tried to control playback", map[logging.ExtraKey]any{
				logging.RoomID:    room.ID,
				logging.SessionID: cl.Session.ID,
				logging.Username:  cl.Session.Username,
			})
			c.send(cl, NewSyncError("Only the host can control playback"))
		}
		return
	}

	// The host already holds this state locally; echoing it back would start
	// a feedback loop.
	c.broadcastToRoom(room.ID, NewMovieStateUpdated(p.CurrentTime, p.IsPlaying, cl.Session.Username), cl.Session.ID)
}

func (c *Core) handleRequestSync(cl *Client, p RequestSyncPayload) {
	room, ok := c.boundRoom(cl, p.RoomID)
	if !ok {
		return
	}

	syncTime, isPlaying := room.Playback()
	c.send(cl, NewMovieStateUpdated(syncTime, isPlaying, ""))
}

func (c *Core) handleCreatePoll(cl *Client, p CreatePollPayload) {
	room, ok := c.boundRoom(cl, p.RoomID)
	if !ok {
		return
	}

	if len(p.Options) < 2 {
		c.send(cl, NewRoomError("A poll needs at least two options"))
		return
	}

	options := make([]PollOption, 0, len(p.Options))
	for _, opt := range p.Options {
		options = append(options, PollOption{Text: opt, Votes: []string{}})
	}

	c.broadcastToRoom(room.ID, NewPoll(PollPayload{
		ID:        domain.NextEventID(),
		Question:  p.Question,
		Options:   options,
		CreatedBy: cl.Session.Username,
		CreatedAt: time.Now(),
	}), "")
}

func (c *Core) handleVotePoll(cl *Client, p VotePollPayload) {
	room, ok := c.boundRoom(cl, p.RoomID)
	if !ok {
		return
	}

	// Votes are relayed, not tallied; polls carry no room state.
	c.broadcastToRoom(room.ID, NewPollVoted(PollVotePayload{
		PollID:      p.PollID,
		OptionIndex: p.OptionIndex,
		UserID:      cl.Session.ID,
		Username:    cl.Session.Username,
	}), "")
}

// boundRoom resolves the room an event targets, requiring the session to be
// joined to it. Events against foreign or unknown rooms are dropped, matching
// the lenient handling of the chat surface.
func (c *Core) boundRoom(cl *Client, roomID string) (*domain.Room, bool) {
	if cl.Session.RoomID == "" || cl.Session.RoomID != roomID {
		return nil, false
	}

	room, err := c.roomRepository.GetByID(context.Background(), roomID)
	if err != nil {
		return nil, false
	}

	return room, true
}

func (c *Core) send(cl *Client, msg *WSMessage) {
	select {
	case cl.Message <- msg:
	default:
		// Client is too slow - drop the frame
		c.metrics.DroppedFrames.Inc()
		c.logger.Debugf("session %s buffer full, dropping %s", cl.Session.ID, msg.Type)
	}
}

func (c *Core) broadcastToRoom(roomID string, msg *WSMessage, exceptID string) {
	members, ok := c.roomClients[roomID]
	if !ok {
		return
	}

	for id, cl := range members {
		if id == exceptID {
			continue
		}
		c.send(cl, msg)
	}
}
