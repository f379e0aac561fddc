package netlist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// JSONMediaType is the only media type accepted without a .json file name.
const JSONMediaType = "application/json"

// File is a user-selected file. Type is the declared media type and may be
// empty when the source does not know it.
type File interface {
	Name() string
	Type() string
	Open() (io.ReadCloser, error)
}

// Accepts reports whether f is a JSON file by media type or by name suffix.
func Accepts(f File) bool {
	if f == nil {
		return false
	}
	return f.Type() == JSONMediaType || strings.HasSuffix(f.Name(), ".json")
}

// Ingest reads the whole of f as text. Files that are not JSON are rejected
// with ErrUnsupportedFileType before anything is opened.
func Ingest(ctx context.Context, f File) (string, error) {
	if !Accepts(f) {
		return "", ErrUnsupportedFileType
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", ErrFileRead, f.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", ErrFileRead, f.Name(), err)
	}
	return string(data), nil
}

// LocalFile is a File on the local filesystem. Its media type is derived from
// the file extension.
type LocalFile struct {
	path string
}

// OpenLocal checks that path names a regular file and returns it as a File.
func OpenLocal(path string) (*LocalFile, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &LocalFile{path: path}, nil
}

func (f *LocalFile) Name() string { return filepath.Base(f.path) }

func (f *LocalFile) Type() string {
	mt := mime.TypeByExtension(filepath.Ext(f.path))
	if mt == "" {
		return ""
	}
	base, _, err := mime.ParseMediaType(mt)
	if err != nil {
		return mt
	}
	return base
}

func (f *LocalFile) Open() (io.ReadCloser, error) { return os.Open(f.path) }

// MemFile is an in-memory File, used for standard input and tests.
type MemFile struct {
	name      string
	mediaType string
	data      []byte
}

// NewMemFile returns a File backed by data.
func NewMemFile(name, mediaType string, data []byte) *MemFile {
	return &MemFile{name: name, mediaType: mediaType, data: data}
}

func (f *MemFile) Name() string { return f.name }
func (f *MemFile) Type() string { return f.mediaType }

func (f *MemFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}
