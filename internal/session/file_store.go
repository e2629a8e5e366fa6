package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dvcrn/hrms-api-client/internal/logger"
)

// FileStore implements Store using a JSON file.
type FileStore struct {
	mu       sync.Mutex
	filePath string
}

// NewFileStore creates a file-backed store. An empty path resolves to
// ~/.hrms/session.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		resolved, err := defaultFilePath()
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	return &FileStore{filePath: path}, nil
}

func defaultFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".hrms", "session.json"), nil
}

// Token reads the token from disk. A missing file means no session.
func (f *FileStore) Token() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}

	var s storedSession
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("failed to parse session file %s: %w", f.filePath, err)
	}
	return s.AccessToken, nil
}

// SetToken writes the token with owner-only permissions.
func (f *FileStore) SetToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.filePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(storedSession{
		AccessToken: token,
		SavedAt:     time.Now().Unix(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(f.filePath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session to %s: %w", f.filePath, err)
	}

	logger.Get().Debug().Str("path", f.filePath).Msg("Saved session token")
	return nil
}

// Clear deletes the session file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Path returns the file the store reads and writes.
func (f *FileStore) Path() string {
	return f.filePath
}

func (f *FileStore) Name() string {
	return fmt.Sprintf("FileStore(%s)", f.filePath)
}
