package app

import (
	"context"
	"encoding/json"
	"time"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/internal/chat/repository"
	"workforce_chat_service/pkg/logger"
	"workforce_chat_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChatWebsocketHandler owns the websocket side of the chat protocol.
type ChatWebsocketHandler struct {
	messageUC *MessageUseCase
	groupUC   *GroupUseCase
	registry  *Registry
	bus       repository.PubSub
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(
	messageUC *MessageUseCase,
	groupUC *GroupUseCase,
	registry *Registry,
	bus repository.PubSub,
) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		messageUC: messageUC,
		groupUC:   groupUC,
		registry:  registry,
		bus:       bus,
	}
}

// HandleConnection is the websocket entry point. The JWT middleware already
// resolved the caller's identity; the authenticate action only binds the
// session and joins the personal room.
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenUser := conn.Locals(middlewares.TokenUserID)
	userID, ok := tokenUser.(string)
	if !ok || userID == "" {
		logger.Log.Error("websocket connection without identity")
		conn.Close()
		return
	}
	logger.Log.Info("websocket connected", zap.String("userID", userID))

	session := NewSession(userID, conn)
	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(ctx)

	defer func() {
		ticker.Stop()
		cancel()
		// Only the session still holding the registry slot announces the
		// user offline; an evicted session must stay silent, its
		// replacement is live.
		if h.registry.Unregister(session.ID) {
			if err := h.bus.Publish(domain.PresenceChannel, domain.PresenceEvent(domain.EventUserOffline, userID)); err != nil {
				logger.Log.Errorf("publish userOffline error:", err)
			}
		}
		session.CloseRooms()
		logger.Log.Info("websocket close", zap.String("userID", userID))
		conn.Close()
	}()

	// fiber answers close frames itself (surfaced as a read error); the
	// handler only logs.
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("websocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		logger.Log.Debug("received pong", zap.String("userID", userID))
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := session.pingPeer(); err != nil {
					logger.Log.Errorf("ping error:", err)
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Info("connection closed", zap.String("userID", userID))
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctxClose, session, mt, message)
	}
}

func (h *ChatWebsocketHandler) execWebsocketAction(ctx context.Context, session *Session, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, session, msg)
	default:
		h.sendError(session, "unsupported message type")
	}
}

func (h *ChatWebsocketHandler) textMessageAction(ctx context.Context, session *Session, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		h.sendError(session, "malformed request")
		return
	}

	if req.Action != domain.ActionAuthenticate && !session.Authenticated() {
		h.sendError(session, "not authenticated")
		return
	}

	var err error
	switch req.Action {
	case domain.ActionAuthenticate:
		err = h.authenticate(ctx, session, req)

	case domain.ActionJoinRoom:
		err = h.joinRoom(ctx, session, req.RoomID)

	case domain.ActionLeaveRoom:
		err = h.leaveRoom(session, req.RoomID)

	case domain.ActionSendMessage:
		err = h.sendMessage(ctx, session, req)

	case domain.ActionTyping:
		err = h.typing(ctx, session, req)

	case domain.ActionMessageRead:
		err = h.messageRead(ctx, session, req)

	default:
		h.sendError(session, "unknown action")
		return
	}

	if err != nil {
		logger.Log.Error("websocket action error",
			zap.String("userID", session.UserID),
			zap.String("action", string(req.Action)),
			zap.Error(err))
		h.sendError(session, err.Error())
	}
}

// authenticate binds the session to its user, evicting any previous session
// of the same user, then joins the personal room and the presence channel.
func (h *ChatWebsocketHandler) authenticate(ctx context.Context, session *Session, req domain.WSRequest) error {
	// The claimed identity must be the one the token carried.
	if req.UserID != "" && req.UserID != session.UserID {
		return domain.ErrUnauthorized
	}
	if !session.setAuthenticated() {
		return nil // already authenticated, idempotent
	}

	if evicted := h.registry.Register(session.UserID, session); evicted != nil {
		logger.Log.Info("evicting previous session", zap.String("userID", session.UserID))
		evicted.CloseRooms()
		evicted.Close()
	}

	h.joinChannel(ctx, session, domain.PersonalRoom(session.UserID).Channel(), false)
	h.joinChannel(ctx, session, domain.PresenceChannel, true)

	if err := h.bus.Publish(domain.PresenceChannel, domain.PresenceEvent(domain.EventUserOnline, session.UserID)); err != nil {
		logger.Log.Errorf("publish userOnline error:", err)
	}
	return nil
}

// joinRoom subscribes the session to a group room after a membership check.
// Personal rooms are joined implicitly at authenticate and never by request.
func (h *ChatWebsocketHandler) joinRoom(ctx context.Context, session *Session, roomID string) error {
	if roomID == "" {
		return domain.ErrValidation
	}
	allowed, err := h.groupUC.CanAccess(ctx, session.UserID, roomID)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrUnauthorized
	}
	h.joinChannel(ctx, session, domain.GroupRoom(roomID).Channel(), true)
	return nil
}

func (h *ChatWebsocketHandler) leaveRoom(session *Session, roomID string) error {
	if roomID == "" {
		return domain.ErrValidation
	}
	session.dropRoom(domain.GroupRoom(roomID).Channel())
	return nil
}

// sendMessage persists and dispatches a message. Direct sends additionally
// get a messageSent confirmation back on this connection.
func (h *ChatWebsocketHandler) sendMessage(ctx context.Context, session *Session, req domain.WSRequest) error {
	if req.SenderID != "" && req.SenderID != session.UserID {
		return domain.ErrUnauthorized
	}
	dest := domain.Destination{ReceiverID: req.ReceiverID, GroupID: req.GroupID}
	msg, err := h.messageUC.Send(ctx, session.UserID, dest, req.Content)
	if err != nil {
		return err
	}
	if msg.Kind == domain.KindDirect {
		if err := session.Send(domain.MessageEvent(domain.EventMessageSent, msg)); err != nil {
			logger.Log.Errorf("messageSent confirm error:", err)
		}
	}
	return nil
}

// typing relays an ephemeral indicator. Never persisted; a lost indicator
// costs nothing.
func (h *ChatWebsocketHandler) typing(ctx context.Context, session *Session, req domain.WSRequest) error {
	event := domain.TypingEvent(session.UserID, req.IsTyping)
	switch {
	case req.ReceiverID != "":
		return h.bus.Publish(domain.PersonalRoom(req.ReceiverID).Channel(), event)
	case req.GroupID != "":
		allowed, err := h.groupUC.CanAccess(ctx, session.UserID, req.GroupID)
		if err != nil {
			return err
		}
		if !allowed {
			return domain.ErrUnauthorized
		}
		return h.bus.Publish(domain.GroupRoom(req.GroupID).Channel(), event)
	default:
		return domain.ErrValidation
	}
}

func (h *ChatWebsocketHandler) messageRead(ctx context.Context, session *Session, req domain.WSRequest) error {
	if req.ReaderID != "" && req.ReaderID != session.UserID {
		return domain.ErrUnauthorized
	}
	_, err := h.messageUC.MarkMessageRead(ctx, req.MessageID, session.UserID)
	return err
}

// joinChannel subscribes the session to a bus channel, forwarding events to
// the peer. filterSelf drops the session's own typing and presence echoes.
func (h *ChatWebsocketHandler) joinChannel(ctx context.Context, session *Session, channel string, filterSelf bool) {
	subCtx, cancel := context.WithCancel(ctx)
	if !session.trackRoom(channel, cancel) {
		cancel()
		return
	}
	err := h.bus.Subscribe(subCtx, channel, func(event domain.WSEvent) {
		if filterSelf && event.SenderOf() == session.UserID {
			return
		}
		if err := session.Send(event); err != nil {
			logger.Log.Errorf("deliver event error:", err)
		}
	})
	if err != nil {
		session.dropRoom(channel)
		logger.Log.Errorf("subscribe error:", err)
	}
}

func (h *ChatWebsocketHandler) sendError(session *Session, message string) {
	if err := session.Send(domain.ErrorEvent(message)); err != nil {
		logger.Log.Errorf("write error event error:", err)
	}
}
