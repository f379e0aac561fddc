package upload

import "netlister/internal/netlist"

// Metadata is the user-entered part of a netlist.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// With returns m with field set to value. Unknown fields leave m unchanged.
func (m Metadata) With(field, value string) Metadata {
	switch field {
	case "name":
		m.Name = value
	case "description":
		m.Description = value
	}
	return m
}

// State is a snapshot of an upload session for rendering.
type State struct {
	FileName string           `json:"fileName"`
	Content  string           `json:"content"`
	Preview  *netlist.Preview `json:"preview,omitempty"`
	Metadata Metadata         `json:"metadata"`
	Busy     bool             `json:"busy"`
	Error    string           `json:"error,omitempty"`
}

// CanSubmit reports whether the submit control is enabled.
func (s State) CanSubmit() bool {
	return !s.Busy && s.FileName != ""
}

// SubmitLabel is the text of the submit control.
func (s State) SubmitLabel() string {
	if s.Busy {
		return "Uploading..."
	}
	return "Upload Netlist"
}
