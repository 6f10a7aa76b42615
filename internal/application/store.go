package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
)

// Store is the single handle on the offline cache. Build it once and pass it around.
type Store struct {
	medium ports.Medium
	logger *slog.Logger

	mu   sync.RWMutex
	open bool

	Designs  *Collection[domain.DesignID, domain.Design]
	Artworks *Collection[domain.ArtworkID, domain.Artwork]
	Posts    *Collection[domain.PostID, domain.Post]
	Settings *Settings
	Session  *SessionCache
}

func NewStore(medium ports.Medium, clock ports.Clock, logger *slog.Logger, sessionWindow time.Duration) *Store {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{medium: medium, logger: logger}
	s.Designs = newCollection(domain.KindDesigns, medium.Designs(), s.IsOpen, logger)
	s.Artworks = newCollection(domain.KindArtworks, medium.Artworks(), s.IsOpen, logger)
	s.Posts = newCollection(domain.KindPosts, medium.Posts(), s.IsOpen, logger)
	s.Settings = newSettings(medium.Settings(), s.IsOpen, logger)
	s.Session = newSessionCache(s.Settings, clock, sessionWindow)

	return s
}

// Open prepares the medium. Calling it on an open store does nothing.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return nil
	}

	if err := s.medium.Open(ctx); err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	s.open = true
	s.logger.Debug("store opened")
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}

	s.open = false
	if err := s.medium.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	s.logger.Debug("store closed")
	return nil
}

func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.open
}
