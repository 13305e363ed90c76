package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeRegisterActor = "register_actor"
	MsgTypeGrantItem     = "grant_item"
	MsgTypeCapture       = "capture"
	MsgTypePing          = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome       = "welcome"
	MsgTypeActorUpdate   = "actor_update"
	MsgTypeCaptureResult = "capture_result"
	MsgTypeNotification  = "notification"
	MsgTypeError         = "error"
	MsgTypePong          = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// RegisterActorPayload declares an actor to the capture world. Registering
// an existing ID updates its life state and soul.
type RegisterActorPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Dead      bool   `json:"dead"`
	Soul      string `json:"soul"` // none|petty|lesser|common|greater|grand|black
	PlayerRef bool   `json:"player_ref"`
	Teammate  bool   `json:"teammate"`
}

// GrantItemPayload gives an actor items (typically soul gems).
type GrantItemPayload struct {
	ActorID string `json:"actor_id"`
	Item    string `json:"item"`
	Count   int    `json:"count"`
	Owner   string `json:"owner,omitempty"`      // optional ownership metadata
	SoulTag string `json:"soul_tag,omitempty"`   // externally tagged soul level
}

// CapturePayload requests a soul capture.
type CapturePayload struct {
	CasterID string `json:"caster_id"`
	VictimID string `json:"victim_id"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to a client after successful connection.
type WelcomePayload struct {
	ClientID string `json:"client_id"`
	Username string `json:"username"`
}

// CaptureResultPayload reports the outcome of a capture request.
type CaptureResultPayload struct {
	CasterID string `json:"caster_id"`
	VictimID string `json:"victim_id"`
	Success  bool   `json:"success"`
}

// NotificationPayload carries a user-facing capture message.
type NotificationPayload struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
