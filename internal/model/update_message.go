package model

import "time"

// UpdateMessage is what the websocket hub pushes to connected dashboards so
// external filter controls stay in sync with the shared filter state.
type UpdateMessage struct {
	Type      string      `json:"type"` // "filters" | "navigation"
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
