package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"nexus-daily/model"
)

const maxRotatingBackups = 10

var errNoValidBackup = errors.New("no valid backup found")

// FileStore keeps the state in a JSON file. Saves are atomic and keep a
// latest backup (.bak) plus a rotating set of timestamped backups.
type FileStore struct {
	Path string

	recovery string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the state file. A corrupted file is moved aside and the newest
// valid backup is restored; without one an empty state is started.
func (s *FileStore) Load() (model.AppState, bool, error) {
	s.recovery = ""
	state, found, err := readState(s.Path)
	if err == nil {
		return state, found, nil
	}
	if !isCorruptStateError(err) {
		return model.AppState{}, false, err
	}

	corruptPath, moveErr := moveCorruptFile(s.Path)
	if moveErr != nil {
		return model.AppState{}, false, fmt.Errorf("move corrupt state file: %w", moveErr)
	}

	recovered, backupPath, backupErr := loadLatestValidBackup(s.Path)
	if backupErr == nil {
		if err := s.Save(recovered); err != nil {
			return model.AppState{}, false, fmt.Errorf("restore backup: %w", err)
		}
		s.recovery = fmt.Sprintf("Corrupted state recovered from %s", filepath.Base(backupPath))
		if corruptPath != "" {
			s.recovery += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(corruptPath))
		}
		return recovered, true, nil
	}
	if !errors.Is(backupErr, errNoValidBackup) {
		return model.AppState{}, false, fmt.Errorf("inspect backups: %w", backupErr)
	}

	empty := model.NewState()
	if err := writeJSON(s.Path, empty); err != nil {
		return model.AppState{}, false, fmt.Errorf("initialize state after corruption: %w", err)
	}
	s.recovery = "Corrupted state with no valid backup; started fresh"
	if corruptPath != "" {
		s.recovery += fmt.Sprintf(" (bad file moved to %s)", filepath.Base(corruptPath))
	}
	return empty, false, nil
}

// Recovery describes what the last Load had to repair, if anything.
func (s *FileStore) Recovery() string {
	return s.recovery
}

// Save writes safely using a temporary file and an atomic rename.
func (s *FileStore) Save(state model.AppState) error {
	if err := ensureDir(s.Path); err != nil {
		return err
	}
	if err := backup(s.Path); err != nil {
		return err
	}

	data, err := encodeState(state)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, s.Path)
}

func (s *FileStore) Close() error {
	return nil
}

func readState(path string) (model.AppState, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewState(), false, nil
		}
		return model.AppState{}, false, err
	}
	state, err := decodeState(data)
	if err != nil {
		return model.AppState{}, false, err
	}
	return state, true, nil
}

func writeJSON(path string, state model.AppState) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
		return err
	}

	timestamp := time.Now().UTC().Format("20060102-150405.000000000")
	if err := os.WriteFile(fmt.Sprintf("%s.bak.%s", path, timestamp), data, 0o644); err != nil {
		return err
	}
	return pruneRotatingBackups(path)
}

func pruneRotatingBackups(path string) error {
	files, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return err
	}
	if len(files) <= maxRotatingBackups {
		return nil
	}

	sort.Strings(files)
	for _, old := range files[:len(files)-maxRotatingBackups] {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// loadLatestValidBackup tries .bak first, then rotating backups newest first.
func loadLatestValidBackup(path string) (model.AppState, string, error) {
	var candidates []string
	latest := path + ".bak"
	if _, err := os.Stat(latest); err == nil {
		candidates = append(candidates, latest)
	}
	rotating, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return model.AppState{}, "", err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(rotating)))
	candidates = append(candidates, rotating...)
	if len(candidates) == 0 {
		return model.AppState{}, "", errNoValidBackup
	}

	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		state, err := decodeState(data)
		if err != nil {
			continue
		}
		return state, candidate, nil
	}
	return model.AppState{}, "", errNoValidBackup
}

func moveCorruptFile(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	timestamp := time.Now().UTC().Format("20060102-150405")
	corruptPath := filepath.Join(filepath.Dir(path), fmt.Sprintf("%s.corrupt-%s%s", name, timestamp, ext))
	if err := os.Rename(path, corruptPath); err != nil {
		return "", err
	}
	return corruptPath, nil
}
