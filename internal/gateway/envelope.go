package gateway

import (
	"encoding/json"

	"riskspin-backend/internal/models"
)

const (
	ActionAuth       = "handleAuth"
	ActionLogGame    = "logGameAndUpdate"
	ActionGetRanking = "getRanking"
)

type request struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload,omitempty"`
}

// Envelope is the response shape shared by every action.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	IsNewUser bool            `json:"isNewUser,omitempty"`

	// transport is set when the envelope was synthesized locally because the
	// call never produced a usable response.
	transport bool
}

func failure(msg string) Envelope {
	return Envelope{Success: false, Error: msg, transport: true}
}

type authPayload struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type logPayload struct {
	User *models.User         `json:"user"`
	Log  *models.GameLogEntry `json:"log"`
}

type AuthResult struct {
	User      *models.User
	IsNewUser bool
}

// RemoteError carries a failure envelope's message verbatim.
type RemoteError struct {
	Action    string
	Message   string
	Transport bool
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return e.Action + " failed"
	}
	return e.Message
}

func (env Envelope) err(action string) error {
	if env.Success {
		return nil
	}
	return &RemoteError{Action: action, Message: env.Error, Transport: env.transport}
}
