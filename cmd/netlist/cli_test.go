package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"netlister/internal/form"
)

const ampNetlist = `{"components":[{"id":"C1","name":"R1","type":"resistor","pins":["1","2"]}],"nets":[{"id":"N1","name":"GND","connections":["C1.1"]}]}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmdWith(&options{logger: zap.NewNop()})
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestUploadCmd(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/netlists" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"abc123"}`))
	}))
	defer srv.Close()

	path := writeFile(t, "amp.json", ampNetlist)

	out, err := execute(t, "--api-url", srv.URL, "upload", path, "--name", "amp", "-d", "first stage")

	require.NoError(t, err)
	assert.Contains(t, out, "File: amp.json")
	assert.Contains(t, out, "Components (1)")
	assert.Contains(t, out, "Navigating to /netlists/abc123")
	assert.Contains(t, out, "Created netlist abc123")
	assert.Equal(t, "amp", got["name"])
	assert.Equal(t, "first stage", got["description"])
	assert.Len(t, got["nets"], 1)
}

func TestUploadCmdServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"msg":"Netlist name is required"}`))
	}))
	defer srv.Close()

	path := writeFile(t, "amp.json", ampNetlist)

	_, err := execute(t, "--api-url", srv.URL, "upload", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Netlist name is required")
}

func TestUploadCmdRejectsLocally(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		file    string
		content string
		args    []string
		wantMsg string
	}{
		{name: "missing nets", file: "a.json", content: `{"components":[]}`, wantMsg: "Netlist must include nets array"},
		{name: "malformed", file: "b.json", content: `{"components":`, wantMsg: "Invalid JSON format"},
		{name: "not json", file: "c.txt", content: ampNetlist, wantMsg: "Please upload a JSON file"},
		{name: "dry run invalid", file: "d.json", content: `[]`, args: []string{"--dry-run"}, wantMsg: "Netlist must include components array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			args := append([]string{"--api-url", srv.URL, "upload", path}, tt.args...)

			out, err := execute(t, args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, out, tt.wantMsg)
		})
	}
	assert.Zero(t, calls.Load())
}

func TestUploadCmdDryRun(t *testing.T) {
	path := writeFile(t, "amp.json", ampNetlist)

	out, err := execute(t, "--api-url", "http://127.0.0.1:1", "upload", path, "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "Nets (1)")
	assert.NotContains(t, out, "Created netlist")
}

func TestUploadCmdStdin(t *testing.T) {
	out, err := executeWithInput(t, ampNetlist, "--api-url", "http://127.0.0.1:1", "upload", "-", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "File: stdin.json")
	assert.Contains(t, out, "Components (1)")
}

func TestShowCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/netlists/abc123" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"abc123","name":"amp","description":"first stage",` + ampNetlist[1:]))
	}))
	defer srv.Close()

	out, err := execute(t, "--api-url", srv.URL, "show", "abc123")

	require.NoError(t, err)
	assert.Contains(t, out, "amp (abc123)")
	assert.Contains(t, out, "first stage")
	assert.Contains(t, out, "Nets (1)")
	assert.Contains(t, out, "GND")

	_, err = execute(t, "--api-url", srv.URL, "show", "missing")
	assert.Error(t, err)
}

func TestRegisterCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		if body["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"msg":"User already exists"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok"}`))
	}))
	defer srv.Close()

	base := []string{"--auth-url", srv.URL, "register", "--name", "Ada", "--password", "secret1", "--confirm-password", "secret1"}

	t.Run("success", func(t *testing.T) {
		out, err := execute(t, append(base, "--email", "ada@example.com")...)

		require.NoError(t, err)
		assert.Contains(t, out, "Navigating to /dashboard")
		assert.Contains(t, out, "Registered ada@example.com")
	})

	t.Run("rejected by service", func(t *testing.T) {
		_, err := execute(t, append(base, "--email", "taken@example.com")...)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "User already exists")
	})

	t.Run("invalid form", func(t *testing.T) {
		out, err := execute(t, "--auth-url", srv.URL, "register", "--name", "Ada", "--email", "nope")

		assert.ErrorIs(t, err, form.ErrInvalidForm)
		assert.Contains(t, out, "email: ")
		assert.Contains(t, out, "password: ")
	})
}

func TestConfigProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"from-profile"}`))
	}))
	defer srv.Close()

	profile := writeFile(t, "netlist.yaml", "api_url: "+srv.URL+"\ntimeout: 5s\n")
	path := writeFile(t, "amp.json", ampNetlist)

	out, err := execute(t, "--config", profile, "upload", path, "--name", "amp")

	require.NoError(t, err)
	assert.Contains(t, out, "Created netlist from-profile")

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "upload", path)
	assert.ErrorContains(t, err, "read client config")
}
