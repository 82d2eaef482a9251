package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"nexus-daily/model"
)

// Key is the single application key the state is stored under.
const Key = "nexusDaily"

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnknownBackend     = errors.New("unknown storage backend")
)

// Store persists the whole application state as one record.
// Load reports found=false when nothing has been saved yet.
type Store interface {
	Load() (model.AppState, bool, error)
	Save(state model.AppState) error
	Close() error
}

// Open returns the store for backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return NewFileStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// decodeState unmarshals onto a fresh state so fields missing from data keep
// their defaults.
func decodeState(data []byte) (model.AppState, error) {
	state := model.NewState()
	if err := json.Unmarshal(data, &state); err != nil {
		return model.AppState{}, err
	}

	if state.Tasks == nil {
		state.Tasks = []model.Task{}
	}
	if state.Metadata.Version == 0 {
		state.Metadata.Version = 1
	}
	if strings.TrimSpace(state.Metadata.Session.View) == "" {
		state.Metadata.Session.View = model.ViewToday
	}
	return state, nil
}

func encodeState(state model.AppState) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func isCorruptStateError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
