// Package model contains the domain models shared by the API layers.
package model

import (
	"encoding/json"
	"time"
)

// Netlist is a stored netlist record. Components and Nets are kept exactly as
// submitted; their element shapes are never interpreted by the server.
type Netlist struct {
	ID             string          `json:"_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Components     json.RawMessage `json:"components" swaggertype:"array,object"`
	Nets           json.RawMessage `json:"nets" swaggertype:"array,object"`
	ComponentCount int             `json:"component_count"`
	NetCount       int             `json:"net_count"`
	StoragePath    string          `json:"storage_path"`
	CreatedAt      time.Time       `json:"created_at"`
}
