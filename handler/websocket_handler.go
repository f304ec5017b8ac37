package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"campus-chat-app/config/logger"
	"campus-chat-app/dto"
	"campus-chat-app/dto/req"
	"campus-chat-app/pubsub"
	"campus-chat-app/usecase"
)

const (
	roomSendPrefix     = "/app/chat.sendMessage/"
	privateDestination = "/app/chat.sendPrivateMessage"
	addUserDestination = "/app/chat.addUser"
)

var errMissingBody = errors.New("frame body is required")

// WebSocketHandler speaks the frame protocol on /ws. Each connection owns one
// subscription that may be attached to any number of topics.
type WebSocketHandler struct {
	Messages usecase.MessageUsecase
	Users    usecase.UserUsecase
	Broker   pubsub.Broker
	Log      *logger.AppLogger
	Buffer   int
}

func NewWebSocketHandler(messages usecase.MessageUsecase, users usecase.UserUsecase, broker pubsub.Broker, log *logger.AppLogger, buffer int) *WebSocketHandler {
	return &WebSocketHandler{
		Messages: messages,
		Users:    users,
		Broker:   broker,
		Log:      log,
		Buffer:   buffer,
	}
}

type session struct {
	sub      *pubsub.Subscription
	username string
}

// newSession starts anonymous. Only /app/chat.addUser names the session.
func (handler *WebSocketHandler) newSession() *session {
	return &session{sub: pubsub.NewSubscription(handler.Buffer)}
}

func (handler *WebSocketHandler) HandleWebSocket(c *websocket.Conn) {
	ctx := context.Background()
	s := handler.newSession()
	handler.Log.WS.Info.Info().Str("session", s.sub.ID).Msg("Client connected")

	var writeMu sync.Mutex
	write := func(frame dto.Frame) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return c.WriteJSON(frame)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case envelope := <-s.sub.C:
				if err := write(messageFrame(envelope)); err != nil {
					handler.Log.WS.Warning.Warn().Err(err).Str("session", s.sub.ID).Msg("Write failed, closing connection")
					_ = c.Close()
					return
				}
			case <-done:
				return
			}
		}
	}()

	defer func() {
		close(done)
		handler.closeSession(ctx, s)
		_ = c.Close()
	}()

	for {
		var frame dto.Frame
		if err := c.ReadJSON(&frame); err != nil {
			handler.Log.WS.Trace.Trace().Err(err).Str("session", s.sub.ID).Msg("Read loop ended")
			return
		}

		if err := handler.route(ctx, s, frame); err != nil {
			handler.Log.WS.Warning.Warn().Err(err).
				Str("command", frame.Command).
				Str("destination", frame.Destination).
				Msg("Frame rejected")
			if err := write(errorFrame(err)); err != nil {
				return
			}
		}
	}
}

// route applies one inbound frame. A returned error is reported back to the
// client as an ERROR frame and the connection stays open.
func (handler *WebSocketHandler) route(ctx context.Context, s *session, frame dto.Frame) error {
	switch frame.Command {
	case dto.CommandSubscribe:
		if err := pubsub.ValidTopic(frame.Destination); err != nil {
			return err
		}
		handler.Broker.Subscribe(frame.Destination, s.sub)
		return nil
	case dto.CommandUnsubscribe:
		handler.Broker.Unsubscribe(frame.Destination, s.sub)
		return nil
	case dto.CommandSend:
		return handler.send(ctx, s, frame)
	default:
		return fmt.Errorf("unsupported command %q", frame.Command)
	}
}

func (handler *WebSocketHandler) send(ctx context.Context, s *session, frame dto.Frame) error {
	switch {
	case strings.HasPrefix(frame.Destination, roomSendPrefix):
		roomID, err := strconv.ParseUint(strings.TrimPrefix(frame.Destination, roomSendPrefix), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid room destination %q", frame.Destination)
		}
		payload := new(req.RoomMessageRequest)
		if err := decodeBody(frame, payload); err != nil {
			return err
		}
		_, err = handler.Messages.SendRoomMessage(ctx, uint(roomID), payload)
		return err
	case frame.Destination == privateDestination:
		payload := new(req.PrivateMessageRequest)
		if err := decodeBody(frame, payload); err != nil {
			return err
		}
		_, err := handler.Messages.SendPrivateMessage(ctx, payload)
		return err
	case frame.Destination == addUserDestination:
		payload := new(req.PresenceRequest)
		if err := decodeBody(frame, payload); err != nil {
			return err
		}
		user, err := handler.Messages.AnnouncePresence(ctx, payload)
		if err != nil {
			return err
		}
		s.username = user.Username
		return nil
	default:
		return fmt.Errorf("unknown destination %q", frame.Destination)
	}
}

// closeSession detaches the subscription everywhere and marks the announced
// user OFFLINE.
func (handler *WebSocketHandler) closeSession(ctx context.Context, s *session) {
	handler.Broker.UnsubscribeAll(s.sub)
	if s.username == "" {
		handler.Log.WS.Info.Info().Str("session", s.sub.ID).Msg("Anonymous client disconnected")
		return
	}
	if err := handler.Users.Disconnect(ctx, s.username); err != nil {
		handler.Log.WS.Error.Error().Err(err).Str("username", s.username).Msg("Failed to disconnect user")
		return
	}
	handler.Log.WS.Info.Info().Str("session", s.sub.ID).Str("username", s.username).Msg("Client disconnected")
}

func decodeBody(frame dto.Frame, payload interface{}) error {
	if len(frame.Body) == 0 {
		return errMissingBody
	}
	if err := json.Unmarshal(frame.Body, payload); err != nil {
		return fmt.Errorf("invalid frame body: %w", err)
	}
	return nil
}

func messageFrame(envelope pubsub.Envelope) dto.Frame {
	return dto.Frame{
		Command:     dto.CommandMessage,
		Destination: envelope.Topic,
		Body:        envelope.Payload,
	}
}

func errorFrame(err error) dto.Frame {
	return dto.Frame{Command: dto.CommandError, Message: err.Error()}
}
