package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

// EventType represents the type of WebSocket event
type EventType string

const (
	// EventTypeRun reports a completed sanitization run
	EventTypeRun EventType = "run_completed"
	// EventTypeDetection reports per-run detection counts
	EventTypeDetection EventType = "detection_summary"
	// EventTypeConnection represents connection events
	EventTypeConnection EventType = "connection"
)

// Event represents a WebSocket event sent to clients
type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
	RunID     string      `json:"run_id,omitempty"`
}

// RunEvent summarizes a completed sanitization run. It carries counters
// only; original or replacement values never leave the server.
type RunEvent struct {
	RunID            string        `json:"run_id"`
	Filename         string        `json:"filename"`
	Success          bool          `json:"success"`
	RecordsProcessed int           `json:"records_processed"`
	FieldsDetected   int           `json:"pii_fields_detected"`
	ReplacementsMade int           `json:"pii_replacements_made"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	Duration         time.Duration `json:"duration"`
}

// DetectionEvent reports how many detections a run produced.
type DetectionEvent struct {
	RunID          string `json:"run_id"`
	FieldsDetected int    `json:"fields_detected"`
	Replacements   int    `json:"replacements"`
}

// ConnectionEvent represents WebSocket connection events
type ConnectionEvent struct {
	Action   string `json:"action"` // "connected", "disconnected"
	ClientID string `json:"client_id"`
	Message  string `json:"message,omitempty"`
}

// ClientMessage represents messages sent from clients to server
type ClientMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// SubscriptionRequest represents a client subscription request
type SubscriptionRequest struct {
	Events []EventType `json:"events"`
}

// Client represents a WebSocket client connection
type Client struct {
	ID           string
	Conn         *websocket.Conn
	Send         chan Event
	Subscription *SubscriptionRequest
	ConnectedAt  time.Time
	LastPing     time.Time
	IP           string
}
