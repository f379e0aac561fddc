package netlist

import "errors"

// Pipeline errors. Each one is recovered by the caller and shown as a banner;
// none of them is fatal.
var (
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileRead               = errors.New("file read failed")
	ErrMalformedJSON          = errors.New("malformed json")
	ErrMissingDocument        = errors.New("missing document")
	ErrMissingComponentsArray = errors.New("missing components array")
	ErrMissingNetsArray       = errors.New("missing nets array")
)

// userMessage pairs a pipeline error with the fixed text shown to the user.
type userMessage struct {
	err     error
	message string
}

// userMessages is checked in order with errors.Is; the first match wins.
// The decoder's own diagnostic is never shown for malformed input.
var userMessages = []userMessage{
	{err: ErrUnsupportedFileType, message: "Please upload a JSON file"},
	{err: ErrFileRead, message: "Error reading file"},
	{err: ErrMalformedJSON, message: "Invalid JSON format"},
	{err: ErrMissingDocument, message: "Invalid netlist data"},
	{err: ErrMissingComponentsArray, message: "Netlist must include components array"},
	{err: ErrMissingNetsArray, message: "Netlist must include nets array"},
}

// Message returns the user-facing text for a pipeline error, or "" when err is
// nil or not a pipeline error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, um := range userMessages {
		if errors.Is(err, um.err) {
			return um.message
		}
	}
	return ""
}
