package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"netlister/internal/client"
	"netlister/internal/netlist"
	"netlister/internal/upload/mocks"
)

const scenarioA = `{"components":[{"id":"C1","name":"R1","type":"resistor","pins":["1","2"]}],"nets":[{"id":"N1","name":"GND","connections":["C1.1"]}]}`

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gatedFile blocks Open until release is closed.
type gatedFile struct {
	name    string
	data    string
	release chan struct{}
}

func newGatedFile(name, data string) *gatedFile {
	return &gatedFile{name: name, data: data, release: make(chan struct{})}
}

func (f *gatedFile) Name() string { return f.name }
func (f *gatedFile) Type() string { return netlist.JSONMediaType }

func (f *gatedFile) Open() (io.ReadCloser, error) {
	<-f.release
	return io.NopCloser(strings.NewReader(f.data)), nil
}

type brokenFile struct{}

func (brokenFile) Name() string                 { return "broken.json" }
func (brokenFile) Type() string                 { return "" }
func (brokenFile) Open() (io.ReadCloser, error) { return nil, errors.New("permission denied") }

func jsonFile(name, data string) netlist.File {
	return netlist.NewMemFile(name, netlist.JSONMediaType, []byte(data))
}

func newSession(b *mocks.MockBackend, n *mocks.MockNavigator) *Session {
	return NewSession(b, n, zap.NewNop())
}

// loaded returns a session with text already read and applied.
func loaded(t *testing.T, b *mocks.MockBackend, n *mocks.MockNavigator, text string) *Session {
	t.Helper()
	s := newSession(b, n)
	<-s.SelectFile(context.Background(), jsonFile("netlist.json", text))
	return s
}

func TestSelectFile(t *testing.T) {
	ctx := context.Background()

	t.Run("valid netlist builds preview", func(t *testing.T) {
		s := newSession(nil, nil)
		<-s.SelectFile(ctx, jsonFile("amp.json", scenarioA))

		st := s.State()
		assert.Equal(t, "amp.json", st.FileName)
		assert.Equal(t, scenarioA, st.Content)
		assert.Empty(t, st.Error)
		require.NotNil(t, st.Preview)
		assert.Equal(t, 1, st.Preview.ComponentCount)
		assert.Equal(t, 1, st.Preview.NetCount)
		assert.Equal(t, 2, st.Preview.ComponentRows[0].PinCount)
		assert.True(t, st.CanSubmit())
	})

	t.Run("unsupported file type", func(t *testing.T) {
		s := newSession(nil, nil)
		<-s.SelectFile(ctx, jsonFile("amp.json", scenarioA))
		<-s.SelectFile(ctx, netlist.NewMemFile("notes.txt", "text/plain", []byte("hello")))

		st := s.State()
		assert.Equal(t, "Please upload a JSON file", st.Error)
		assert.Empty(t, st.FileName)
		assert.Empty(t, st.Content)
		assert.Nil(t, st.Preview)
		assert.False(t, st.CanSubmit())
	})

	t.Run("malformed json", func(t *testing.T) {
		s := newSession(nil, nil)
		<-s.SelectFile(ctx, jsonFile("bad.json", "{not valid json"))

		st := s.State()
		assert.Equal(t, "Invalid JSON format", st.Error)
		assert.Equal(t, "{not valid json", st.Content)
		assert.Nil(t, st.Preview)
	})

	t.Run("structural failure", func(t *testing.T) {
		s := newSession(nil, nil)
		<-s.SelectFile(ctx, jsonFile("half.json", `{"components":[]}`))

		st := s.State()
		assert.Equal(t, "Netlist must include nets array", st.Error)
		assert.Nil(t, st.Preview)
	})

	t.Run("read failure", func(t *testing.T) {
		s := newSession(nil, nil)
		<-s.SelectFile(ctx, brokenFile{})

		st := s.State()
		assert.Equal(t, "Error reading file", st.Error)
		assert.Equal(t, "broken.json", st.FileName)
	})

	t.Run("nil file is ignored", func(t *testing.T) {
		s := newSession(nil, nil)
		<-s.SelectFile(ctx, jsonFile("amp.json", scenarioA))
		<-s.SelectFile(ctx, nil)

		assert.Equal(t, "amp.json", s.State().FileName)
	})

	t.Run("previous state cleared before read completes", func(t *testing.T) {
		s := newSession(nil, nil)
		<-s.SelectFile(ctx, jsonFile("bad.json", "{"))
		require.NotEmpty(t, s.State().Error)

		f := newGatedFile("next.json", scenarioA)
		done := s.SelectFile(ctx, f)

		st := s.State()
		assert.Equal(t, "next.json", st.FileName)
		assert.Empty(t, st.Content)
		assert.Empty(t, st.Error)
		assert.Nil(t, st.Preview)

		close(f.release)
		<-done
		assert.NotNil(t, s.State().Preview)
	})

	t.Run("stale read is discarded", func(t *testing.T) {
		s := newSession(nil, nil)

		first := newGatedFile("first.json", `{"components":[1,2,3],"nets":[]}`)
		firstDone := s.SelectFile(ctx, first)
		<-s.SelectFile(ctx, jsonFile("second.json", scenarioA))

		close(first.release)
		<-firstDone

		st := s.State()
		assert.Equal(t, "second.json", st.FileName)
		assert.Equal(t, scenarioA, st.Content)
		require.NotNil(t, st.Preview)
		assert.Equal(t, 1, st.Preview.ComponentCount)
	})
}

func TestSubmit_Preconditions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(t *testing.T) (*Session, func())
		wantErr error
		wantMsg string
	}{
		{
			name: "no file",
			setup: func(t *testing.T) (*Session, func()) {
				return newSession(&mocks.MockBackend{}, nil), func() {}
			},
			wantErr: ErrNoFile,
			wantMsg: "Please upload a netlist file",
		},
		{
			name: "read still pending",
			setup: func(t *testing.T) (*Session, func()) {
				s := newSession(&mocks.MockBackend{}, nil)
				f := newGatedFile("slow.json", scenarioA)
				done := s.SelectFile(ctx, f)
				return s, func() { close(f.release); <-done }
			},
			wantErr: netlist.ErrMissingDocument,
			wantMsg: "Invalid netlist data",
		},
		{
			name: "malformed json",
			setup: func(t *testing.T) (*Session, func()) {
				return loaded(t, &mocks.MockBackend{}, nil, "{"), func() {}
			},
			wantErr: netlist.ErrMissingDocument,
			wantMsg: "Invalid netlist data",
		},
		{
			name: "null document",
			setup: func(t *testing.T) (*Session, func()) {
				return loaded(t, &mocks.MockBackend{}, nil, "null"), func() {}
			},
			wantErr: netlist.ErrMissingDocument,
			wantMsg: "Invalid netlist data",
		},
		{
			name: "components missing",
			setup: func(t *testing.T) (*Session, func()) {
				return loaded(t, &mocks.MockBackend{}, nil, `{"nets":[]}`), func() {}
			},
			wantErr: netlist.ErrMissingComponentsArray,
			wantMsg: "Netlist must include components array",
		},
		{
			name: "nets missing",
			setup: func(t *testing.T) (*Session, func()) {
				return loaded(t, &mocks.MockBackend{}, nil, `{"components":[]}`), func() {}
			},
			wantErr: netlist.ErrMissingNetsArray,
			wantMsg: "Netlist must include nets array",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cleanup := tt.setup(t)
			defer cleanup()

			id, err := s.Submit(ctx)
			assert.Empty(t, id)
			assert.ErrorIs(t, err, ErrPrecondition)
			assert.ErrorIs(t, err, tt.wantErr)

			st := s.State()
			assert.Equal(t, tt.wantMsg, st.Error)
			assert.False(t, st.Busy)
			s.backend.(*mocks.MockBackend).AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_Success(t *testing.T) {
	ctx := context.Background()
	b := &mocks.MockBackend{}
	n := &mocks.MockNavigator{}
	s := loaded(t, b, n, scenarioA)
	s.SetField("name", "amp")
	s.SetField("description", "stage one")

	b.On("Create", ctx, Resource, mock.MatchedBy(func(p netlist.Payload) bool {
		return p.Name == "amp" &&
			p.Description == "stage one" &&
			string(p.Components) == `[{"id":"C1","name":"R1","type":"resistor","pins":["1","2"]}]` &&
			string(p.Nets) == `[{"id":"N1","name":"GND","connections":["C1.1"]}]`
	})).Return(&client.Record{ID: "abc123"}, nil).Once()
	n.On("NavigateTo", "/netlists/abc123").Once()

	id, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	assert.Equal(t, State{}, s.State())
	b.AssertExpectations(t)
	n.AssertExpectations(t)
}

func TestSubmit_Failure(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "backend message is shown verbatim",
			err:     &client.APIError{StatusCode: http.StatusBadRequest, Msg: "Netlist name is required"},
			wantMsg: "Netlist name is required",
		},
		{
			name:    "field errors are not shown",
			err:     &client.APIError{StatusCode: http.StatusBadRequest, FieldErrors: []string{"field x bad"}},
			wantMsg: "Error uploading netlist",
		},
		{
			name:    "api error without message",
			err:     &client.APIError{StatusCode: http.StatusInternalServerError},
			wantMsg: "Error uploading netlist",
		},
		{
			name:    "transport error",
			err:     errors.New("connection refused"),
			wantMsg: "Error uploading netlist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &mocks.MockBackend{}
			n := &mocks.MockNavigator{}
			s := loaded(t, b, n, scenarioA)
			s.SetField("description", "no name")

			b.On("Create", ctx, Resource, mock.Anything).Return(nil, tt.err).Once()

			id, err := s.Submit(ctx)
			assert.Empty(t, id)
			assert.ErrorIs(t, err, tt.err)
			assert.NotErrorIs(t, err, ErrPrecondition)

			st := s.State()
			assert.Equal(t, tt.wantMsg, st.Error)
			assert.False(t, st.Busy)
			assert.Equal(t, "netlist.json", st.FileName)
			assert.Equal(t, "no name", st.Metadata.Description)
			assert.NotNil(t, st.Preview)
			assert.True(t, st.CanSubmit())
			n.AssertNotCalled(t, "NavigateTo", mock.Anything)

			b.On("Create", ctx, Resource, mock.Anything).Return(&client.Record{ID: "retry"}, nil).Once()
			n.On("NavigateTo", "/netlists/retry").Once()
			id, err = s.Submit(ctx)
			require.NoError(t, err)
			assert.Equal(t, "retry", id)
		})
	}
}

func TestSubmit_FailureBannerFromServer(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "msg", body: `{"msg":"Netlist name is required"}`, wantMsg: "Netlist name is required"},
		{name: "errors list only", body: `{"errors":[{"msg":"field x bad"}]}`, wantMsg: "Error uploading netlist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			api, err := client.New(srv.URL, time.Second, zap.NewNop())
			require.NoError(t, err)
			n := &mocks.MockNavigator{}
			s := NewSession(api, n, zap.NewNop())
			<-s.SelectFile(context.Background(), netlist.NewMemFile("netlist.json", netlist.JSONMediaType, []byte(scenarioA)))

			_, err = s.Submit(context.Background())

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, s.State().Error)
			assert.False(t, s.State().Busy)
			n.AssertNotCalled(t, "NavigateTo", mock.Anything)
			api.CloseIdleConnections()
		})
	}
}

func TestSubmit_RejectsWhileBusy(t *testing.T) {
	ctx := context.Background()
	b := &mocks.MockBackend{}
	n := &mocks.MockNavigator{}
	s := loaded(t, b, n, scenarioA)

	started := make(chan struct{})
	release := make(chan struct{})
	b.On("Create", ctx, Resource, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&client.Record{ID: "abc123"}, nil).Once()
	n.On("NavigateTo", "/netlists/abc123").Once()

	type result struct {
		id  string
		err error
	}
	first := make(chan result, 1)
	go func() {
		id, err := s.Submit(ctx)
		first <- result{id, err}
	}()
	<-started

	st := s.State()
	assert.True(t, st.Busy)
	assert.False(t, st.CanSubmit())
	assert.Equal(t, "Uploading...", st.SubmitLabel())

	_, err := s.Submit(ctx)
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	res := <-first
	require.NoError(t, res.err)
	assert.Equal(t, "abc123", res.id)

	b.AssertNumberOfCalls(t, "Create", 1)
	n.AssertExpectations(t)
}

func TestMetadata_With(t *testing.T) {
	m := Metadata{}.With("name", "amp").With("description", "stage one").With("owner", "x")
	assert.Equal(t, Metadata{Name: "amp", Description: "stage one"}, m)

	orig := Metadata{Name: "a"}
	_ = orig.With("name", "b")
	assert.Equal(t, "a", orig.Name)
}

func TestState_SubmitControl(t *testing.T) {
	assert.False(t, State{}.CanSubmit())
	assert.Equal(t, "Upload Netlist", State{FileName: "a.json"}.SubmitLabel())
	assert.True(t, State{FileName: "a.json"}.CanSubmit())
	assert.False(t, State{FileName: "a.json", Busy: true}.CanSubmit())
}

func TestRecordPath(t *testing.T) {
	assert.Equal(t, "/netlists/abc", RecordPath("abc"))
}
