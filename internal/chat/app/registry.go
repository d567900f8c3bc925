package app

import (
	"context"
	"encoding/json"
	"sync"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session one live websocket connection bound to a user. Runtime-only state:
// a reconnecting client re-authenticates and re-joins its rooms.
type Session struct {
	ID     string
	UserID string

	conn    *websocket.Conn
	writeMu sync.Mutex

	mu            sync.Mutex
	authenticated bool
	rooms         map[string]context.CancelFunc // bus channel -> subscription cancel
}

// NewSession wraps a connection whose identity was already resolved by the
// JWT middleware.
func NewSession(userID string, conn *websocket.Conn) *Session {
	return &Session{
		ID:     uuid.New().String(),
		UserID: userID,
		conn:   conn,
		rooms:  make(map[string]context.CancelFunc),
	}
}

// Send writes an event to the peer. Writes are serialized; concurrent bus
// deliveries and handler responses share one connection.
func (s *Session) Send(event domain.WSEvent) error {
	if s.conn == nil {
		return nil
	}
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err, zap.String("userID", s.UserID))
		return err
	}
	return nil
}

// pingPeer writes a ping control frame, sharing the write lock with Send.
func (s *Session) pingPeer() error {
	if s.conn == nil {
		return nil
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.PingMessage, []byte("ping"))
}

func (s *Session) setAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authenticated {
		return false
	}
	s.authenticated = true
	return true
}

// Authenticated reports whether the authenticate handshake completed.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// trackRoom records a room subscription. Returns false when the session is
// already subscribed to that channel.
func (s *Session) trackRoom(channel string, cancel context.CancelFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[channel]; ok {
		return false
	}
	s.rooms[channel] = cancel
	return true
}

// dropRoom cancels a single room subscription. No-op when not joined.
func (s *Session) dropRoom(channel string) bool {
	s.mu.Lock()
	cancel, ok := s.rooms[channel]
	if ok {
		delete(s.rooms, channel)
	}
	s.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// CloseRooms cancels every room subscription held by the session.
func (s *Session) CloseRooms() {
	s.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(s.rooms))
	for _, cancel := range s.rooms {
		cancels = append(cancels, cancel)
	}
	s.rooms = make(map[string]context.CancelFunc)
	s.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

// Close tears down the underlying connection.
func (s *Session) Close() {
	if s.conn != nil {
		s.conn.Close()
	}
}

// Registry process-wide mapping from user id to the active live session.
// One active session per user: a later registration replaces the earlier
// one (last-writer-wins). Process-local by design; cross-instance fan-out
// rides the broadcast bus instead.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry create an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Register binds userID to session, returning the session it displaced (nil
// when the user had none).
func (r *Registry) Register(userID string, session *Session) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := r.sessions[userID]
	r.sessions[userID] = session
	if evicted == session {
		return nil
	}
	return evicted
}

// Lookup returns the active session for userID.
func (r *Registry) Lookup(userID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// Unregister removes the mapping whose session id matches. No-op when the
// session was already replaced or removed, so duplicate disconnects and
// evicted sessions can call it safely. Reports whether a mapping was removed.
func (r *Registry) Unregister(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, s := range r.sessions {
		if s.ID == sessionID {
			delete(r.sessions, userID)
			return true
		}
	}
	return false
}

// Online snapshots the ids of users with an active session.
func (r *Registry) Online() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for userID := range r.sessions {
		ids = append(ids, userID)
	}
	return ids
}
