package store

import (
	"fmt"
	"log"

	"nexus-daily/model"
)

// Persister puts a Store behind the log-and-continue policy: a failed load
// starts from defaults and a failed save leaves the in-memory state in charge.
type Persister struct {
	store  Store
	logger *log.Logger
}

func NewPersister(store Store, logger *log.Logger) *Persister {
	return &Persister{store: store, logger: logger}
}

// Load never fails. The returned message is non-empty when the store had to
// repair or discard what it found.
func (p *Persister) Load() (model.AppState, bool, string) {
	state, found, err := p.store.Load()
	if err != nil {
		p.logger.Printf("load state: %v", err)
		return model.NewState(), false, "Saved data could not be read; starting with defaults"
	}

	var msg string
	if r, ok := p.store.(interface{ Recovery() string }); ok {
		msg = r.Recovery()
	}
	if msg != "" {
		p.logger.Printf("load state: %s", msg)
	}
	return state, found, msg
}

// Save returns an error wrapping ErrStorageUnavailable so callers can warn
// the user. The failure is already logged.
func (p *Persister) Save(state model.AppState) error {
	if err := p.store.Save(state); err != nil {
		p.logger.Printf("save state: %v", err)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (p *Persister) Close() error {
	return p.store.Close()
}
