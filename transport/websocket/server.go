package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-engine/internal/session"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

type gameManager interface {
	CreateGame(ctx context.Context, req usecase.CreateGameRequest) (session.Snapshot, error)
	GetGame(ctx context.Context, id string) (session.Snapshot, error)
	SubmitHumanMove(ctx context.Context, id string, cell int) (session.Snapshot, error)
	AdvanceMachineMove(ctx context.Context, id string) (session.Snapshot, int, error)
	ResetGame(ctx context.Context, id string) (session.Snapshot, error)
	SetDifficulty(ctx context.Context, id, name string) (session.Snapshot, error)
}

type handlerFunc func(ctx context.Context, payload *Payload) (*Payload, error)

type Server struct {
	logger   *slog.Logger
	games    gameManager
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGetGame] = server.handleGetGame
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionMachine] = server.handleMachine
	server.handlers[actionReset] = server.handleReset
	server.handlers[actionDifficulty] = server.handleDifficulty

	return server
}

// Start - starts WebSocket server on /ws until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP upgrades the connection and processes messages until the client leaves.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(r.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			if isMalformed(err) {
				log.Error("failed to unmarshal message", "error", err)
				if err = that.send(conn, actionError, &Payload{Error: "malformed message"}); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		response := that.dispatch(ctx, &message)
		if err := that.send(conn, message.Action, response); err != nil {
			return err
		}
	}
}

// isMalformed reports a frame that was read whole but did not decode into a Message.
func isMalformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func (that *Server) dispatch(ctx context.Context, message *Message) *Payload {
	log := that.logger.With("method", "dispatch", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Debug("unknown action")
		return &Payload{Error: "unknown action " + message.Action}
	}

	var req Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &req); err != nil {
			log.Debug("invalid payload", "error", err)
			return &Payload{Error: "invalid payload"}
		}
	}

	resp, err := handler(ctx, &req)
	if err != nil {
		log.Debug("action failed", "error", err)
		if resp == nil {
			resp = &Payload{}
		}
		resp.Error = err.Error()
	}

	return resp
}

func (that *Server) send(conn *websocket.Conn, action string, payload *Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
