package schema

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Store holds the current schema and reloads it from disk.
type Store struct {
	path    string
	logger  *zap.SugaredLogger
	current atomic.Pointer[Schema]

	mu      sync.Mutex
	modTime time.Time
}

// NewStore loads the schema at path. An empty path serves the built-in schema.
func NewStore(path string, logger *zap.SugaredLogger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	if path == "" {
		s.current.Store(Default())
		return s, nil
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the schema in effect.
func (s *Store) Current() *Schema {
	return s.current.Load()
}

// Reload re-reads the schema file. On error the previous schema stays in effect.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("schema: stat %s: %w", s.path, err)
	}
	// Recorded before parsing so a broken file is reported once per change.
	s.modTime = info.ModTime()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("schema: read %s: %w", s.path, err)
	}
	parsed, err := Parse(data)
	if err != nil {
		return fmt.Errorf("schema: %s: %w", s.path, err)
	}

	s.current.Store(parsed)
	s.logger.Infow("registration schema loaded", "path", s.path, "fields", len(parsed.Fields))
	return nil
}

func (s *Store) changed() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		s.logger.Warnw("registration schema unreadable", "path", s.path, "error", err)
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !info.ModTime().Equal(s.modTime)
}

// Watch polls the file's modification time every interval and reloads on
// change until ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	if s.path == "" || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.changed() {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Errorw("registration schema reload failed, keeping previous", "error", err)
			}
		}
	}
}
