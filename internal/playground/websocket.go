// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     playground
// Description: Websocket sessions evaluating HeLang code per connection
// Author:      lwd-temp
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package playground

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang"
	"github.com/lwd-temp/helang/foundation/helang/env"
	"github.com/lwd-temp/helang/pkg/core/health"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is a client request
type Message struct {
	Type    string          `json:"type"` // "run", "env", "reset", "ping"
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is a server reply
type Response struct {
	Type    string      `json:"type"` // "session", "output", "result", "error", "env", "pong"
	Payload interface{} `json:"payload,omitempty"`
}

// RunPayload carries the code of a run request
type RunPayload struct {
	Code string `json:"code"`
}

// SessionPayload announces the id of a new connection's session
type SessionPayload struct {
	ID string `json:"id"`
}

// OutputPayload carries program output
type OutputPayload struct {
	Text string `json:"text"`
}

// ResultPayload carries the value of the last evaluated program
type ResultPayload struct {
	Value []int  `json:"value"`
	Text  string `json:"text"`
}

// ErrorPayload describes a failed request
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EnvPayload lists the variables of the session
type EnvPayload struct {
	Bindings []env.Binding `json:"bindings"`
}

type webSocketHandler struct {
	engine      *helang.Engine
	idleTimeout time.Duration
	active      atomic.Int64
	logger      *helog.Logger
}

func newWebSocketHandler(engine *helang.Engine, idleTimeout time.Duration, logger *helog.Logger) *webSocketHandler {
	return &webSocketHandler{engine: engine, idleTimeout: idleTimeout, logger: logger}
}

// ServeHTTP handles the websocket upgrade
func (h *webSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnWithErr("WebSocket upgrade failed", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// connection is one client session. Its messages are handled one after
// another on the reading goroutine, which owns the environment.
type connection struct {
	id     string
	conn   *websocket.Conn
	env    *env.Environment
	logger *helog.Logger
}

func (h *webSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.active.Add(1)
	defer h.active.Add(-1)

	c := &connection{
		id:   uuid.New().String(),
		conn: conn,
		env:  env.New(),
	}
	c.logger = h.logger.WithField("session_id", c.id)
	c.logger.Info("WebSocket connection established", helog.Fields{"remote": conn.RemoteAddr().String()})

	c.send(Response{Type: "session", Payload: SessionPayload{ID: c.id}})

	for {
		conn.SetReadDeadline(time.Now().Add(h.idleTimeout))

		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WarnWithErr("WebSocket read error", err)
			} else {
				c.logger.Info("WebSocket connection closed")
			}
			return
		}

		switch msg.Type {
		case "ping":
			c.send(Response{Type: "pong"})

		case "run":
			var payload RunPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				c.sendError(heerror.CodeInvalidInput, "invalid run payload")
				continue
			}
			h.run(ctx, c, payload.Code)

		case "env":
			c.sendEnv()

		case "reset":
			c.env.Reset()
			c.sendEnv()

		default:
			c.sendError(heerror.CodeInvalidInput, "unknown message type: "+msg.Type)
		}
	}
}

// sessionsCheck degrades once more than max connections are open
func (h *webSocketHandler) sessionsCheck(max int) health.CheckFunc {
	return func(ctx context.Context) health.CheckResult {
		active := h.active.Load()
		result := health.CheckResult{
			Status:  health.StatusHealthy,
			Details: map[string]interface{}{"active": active, "max": max},
		}
		if active > int64(max) {
			result.Status = health.StatusDegraded
			result.Message = "too many open sessions"
		}
		return result
	}
}

func (h *webSocketHandler) run(ctx context.Context, c *connection, code string) {
	var out bytes.Buffer
	value, err := h.engine.WithOutput(&out).Run(ctx, code, c.env)

	if out.Len() > 0 {
		c.send(Response{Type: "output", Payload: OutputPayload{Text: out.String()}})
	}
	if err != nil {
		c.logger.LogError(err)
		c.sendError(heerror.GetCode(err), err.Error())
		return
	}

	values := value.Values()
	if values == nil {
		values = []int{}
	}
	c.send(Response{Type: "result", Payload: ResultPayload{Value: values, Text: value.String()}})
}

func (c *connection) sendEnv() {
	bindings := c.env.Snapshot()
	c.send(Response{Type: "env", Payload: EnvPayload{Bindings: bindings}})
}

func (c *connection) send(resp Response) {
	if err := c.conn.WriteJSON(resp); err != nil {
		c.logger.WarnWithErr("WebSocket send error", err)
	}
}

func (c *connection) sendError(code heerror.Code, message string) {
	c.send(Response{Type: "error", Payload: ErrorPayload{Code: string(code), Message: message}})
}
