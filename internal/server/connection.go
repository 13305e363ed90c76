package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/duskveil-games/soultrap/internal/network"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	// WebSocket connection
	ws *websocket.Conn

	// Server reference
	server *Server

	// Client identity (set after authentication)
	client *ClientIdentity

	// Buffered channel for outbound messages
	send chan []byte
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:     ws,
		server: server,
		send:   make(chan []byte, 256),
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	// Set up connection parameters
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Start read and write pumps
	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		// Read message
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		// Parse message
		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		// Handle message based on type
		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Write message
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			// Send ping
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	log.Printf("Received message type: %s", msg.Type)

	switch msg.Type {
	case network.MsgTypeRegisterActor:
		c.handleRegisterActor(msg.Payload)

	case network.MsgTypeGrantItem:
		c.handleGrantItem(msg.Payload)

	case network.MsgTypeCapture:
		c.handleCapture(msg.Payload)

	case network.MsgTypePing:
		c.handlePing()

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// handleRegisterActor creates or updates an actor in the world
func (c *Connection) handleRegisterActor(payload json.RawMessage) {
	var p network.RegisterActorPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.SendError("invalid_actor", "Failed to parse actor registration")
		return
	}

	actor, err := c.server.world.RegisterActor(&p)
	if err != nil {
		c.SendError("invalid_actor", err.Error())
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeActorUpdate,
		Payload: actor,
	})
	log.Printf("Actor registered by %s: %s (%s soul)", c.client.Username, actor.Name, actor.Soul)
}

// handleGrantItem gives an actor items
func (c *Connection) handleGrantItem(payload json.RawMessage) {
	var p network.GrantItemPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.SendError("invalid_grant", "Failed to parse item grant")
		return
	}

	if err := c.server.world.Grant(&p); err != nil {
		c.SendError("grant_failed", err.Error())
		return
	}
	log.Printf("Granted %dx %s to %s", p.Count, p.Item, p.ActorID)
}

// handleCapture runs a soul capture and reports the outcome
func (c *Connection) handleCapture(payload json.RawMessage) {
	var p network.CapturePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.SendError("invalid_capture", "Failed to parse capture request")
		return
	}

	caster, ok := c.server.world.Actor(p.CasterID)
	if !ok {
		c.SendError("unknown_actor", "Unknown caster "+p.CasterID)
		return
	}
	victim, ok := c.server.world.Actor(p.VictimID)
	if !ok {
		c.SendError("unknown_actor", "Unknown victim "+p.VictimID)
		return
	}

	success, err := c.server.trapper.Capture(caster, victim)
	if err != nil {
		log.Printf("Capture error (%s -> %s): %v", p.CasterID, p.VictimID, err)
		c.SendError("capture_failed", "Capture aborted by an internal error")
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeCaptureResult,
		Payload: network.CaptureResultPayload{
			CasterID: p.CasterID,
			VictimID: p.VictimID,
			Success:  success,
		},
	})
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection
func (c *Connection) Close() {
	// Close send channel
	close(c.send)

	// Close WebSocket connection
	c.ws.Close()
}
