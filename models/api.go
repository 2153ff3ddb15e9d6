package models

import "encoding/json"

// Envelope is the response wrapper used by every inventory API endpoint
// Example: {"success": true, "message": "Purchase added", "data": [...]}
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
