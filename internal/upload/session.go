// Package upload holds the state of one netlist upload: the selected file, its
// decoded document and preview, the user's metadata and the submission.
package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"netlister/internal/client"
	"netlister/internal/netlist"
)

// Resource is the record store collection netlists are created in.
const Resource = "netlists"

const (
	msgNoFile       = "Please upload a netlist file"
	msgUploadFailed = "Error uploading netlist"
)

var (
	// ErrBusy is returned by Submit while a previous submission is in flight.
	ErrBusy = errors.New("submission already in progress")
	// ErrPrecondition wraps every local reason a submission was refused.
	ErrPrecondition = errors.New("submission precondition failed")
	// ErrNoFile means Submit was called before a file was selected.
	ErrNoFile = errors.New("no file selected")
)

// Backend creates records in the record store.
type Backend interface {
	Create(ctx context.Context, resource string, payload any) (*client.Record, error)
}

// Navigator moves the user to another page after a successful upload.
type Navigator interface {
	NavigateTo(path string)
}

// Session is a single upload page. All methods are safe for concurrent use.
type Session struct {
	backend Backend
	nav     Navigator
	logger  *zap.Logger

	mu      sync.Mutex
	file    netlist.File
	content string
	doc     *netlist.Document
	preview *netlist.Preview
	meta    Metadata
	busy    bool
	errMsg  string
	// gen increases on every file selection; reads carrying an older value
	// are discarded.
	gen uint64
}

// NewSession returns an empty upload session.
func NewSession(backend Backend, nav Navigator, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{backend: backend, nav: nav, logger: logger}
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Content:  s.content,
		Metadata: s.meta,
		Busy:     s.busy,
		Error:    s.errMsg,
	}
	if s.file != nil {
		st.FileName = s.file.Name()
	}
	if s.preview != nil {
		p := *s.preview
		st.Preview = &p
	}
	return st
}

// SetField updates one metadata field. Unknown fields are ignored.
func (s *Session) SetField(field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta = s.meta.With(field, value)
}

// SelectFile replaces the current file. The previous file, content, preview and
// error are cleared before it returns; the file is then read in the
// background. The returned channel is closed once this selection has been
// applied or discarded. A nil file leaves the session untouched.
func (s *Session) SelectFile(ctx context.Context, f netlist.File) <-chan struct{} {
	done := make(chan struct{})
	if f == nil {
		close(done)
		return done
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.content = ""
	s.doc = nil
	s.preview = nil
	s.errMsg = ""

	if !netlist.Accepts(f) {
		s.file = nil
		s.errMsg = netlist.Message(netlist.ErrUnsupportedFileType)
		s.mu.Unlock()
		close(done)
		return done
	}
	s.file = f
	s.mu.Unlock()

	go func() {
		defer close(done)
		text, err := netlist.Ingest(ctx, f)
		s.applyRead(gen, f.Name(), text, err)
	}()
	return done
}

func (s *Session) applyRead(gen uint64, name, text string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debug("discarding stale read", zap.String("file", name))
		return
	}
	if err != nil {
		s.logger.Warn("read netlist file", zap.String("file", name), zap.Error(err))
		s.errMsg = netlist.Message(err)
		return
	}

	s.content = text
	doc, err := netlist.Decode(text)
	if err != nil {
		s.errMsg = netlist.Message(err)
		return
	}
	s.doc = doc

	valid, err := netlist.ValidateStructure(doc)
	if err != nil {
		s.errMsg = netlist.Message(err)
		return
	}
	p := netlist.BuildPreview(valid, text)
	s.preview = &p
	s.errMsg = ""
}

// Submit sends the netlist to the record store and, on success, navigates to
// the created record and returns its id. Local precondition failures wrap
// ErrPrecondition and make no backend call. Every failure is also reported on
// the session's error banner.
func (s *Session) Submit(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrBusy
	}

	valid, err := s.checkLocked()
	if err != nil {
		s.errMsg = preconditionMessage(err)
		s.mu.Unlock()
		return "", fmt.Errorf("%w: %w", ErrPrecondition, err)
	}

	payload := valid.Payload(s.meta.Name, s.meta.Description)
	s.busy = true
	s.mu.Unlock()

	rec, err := s.backend.Create(ctx, Resource, payload)

	s.mu.Lock()
	if err != nil {
		s.busy = false
		s.errMsg = failureMessage(err)
		s.mu.Unlock()
		s.logger.Warn("netlist upload failed", zap.String("name", payload.Name), zap.Error(err))
		return "", fmt.Errorf("upload netlist: %w", err)
	}
	s.resetLocked()
	s.mu.Unlock()

	s.logger.Info("netlist uploaded", zap.String("id", rec.ID), zap.String("name", payload.Name))
	if s.nav != nil {
		s.nav.NavigateTo(RecordPath(rec.ID))
	}
	return rec.ID, nil
}

// RecordPath is the page showing the record with the given id.
func RecordPath(id string) string {
	return "/" + Resource + "/" + id
}

func (s *Session) checkLocked() (*netlist.Valid, error) {
	if s.file == nil {
		return nil, ErrNoFile
	}
	if s.doc == nil {
		return nil, netlist.ErrMissingDocument
	}
	return netlist.ValidateStructure(s.doc)
}

func (s *Session) resetLocked() {
	s.gen++
	s.file = nil
	s.content = ""
	s.doc = nil
	s.preview = nil
	s.meta = Metadata{}
	s.busy = false
	s.errMsg = ""
}

func preconditionMessage(err error) string {
	if errors.Is(err, ErrNoFile) {
		return msgNoFile
	}
	return netlist.Message(err)
}

func failureMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		return apiErr.Msg
	}
	return msgUploadFailed
}
