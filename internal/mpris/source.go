package mpris

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pliske/mprisctl/internal/domain"
)

// Source discovers running MPRIS players on the session bus and opens
// control handles to them. The connection is dialed on first use, so
// invocations that never touch the bus do not require one.
type Source struct {
	logger *zap.Logger

	mu   sync.Mutex
	conn BusClient
	dial func() (BusClient, error)
}

// NewSource creates a Source that dials the session bus on demand
func NewSource(logger *zap.Logger) *Source {
	return &Source{
		logger: logger,
		dial: func() (BusClient, error) {
			return NewStdBusClient()
		},
	}
}

// List returns the short names of every running player, sorted
func (s *Source) List(ctx context.Context) ([]string, error) {
	conn, err := s.client()
	if err != nil {
		return nil, err
	}

	names, err := conn.ListNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}

	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, BusPrefix) {
			players = append(players, strings.TrimPrefix(name, BusPrefix))
		}
	}
	sort.Strings(players)

	s.logger.Debug("Player detection complete", zap.Int("count", len(players)))
	return players, nil
}

// Connect returns a control handle for the named instance
func (s *Source) Connect(ctx context.Context, name string) (domain.Player, error) {
	conn, err := s.client()
	if err != nil {
		return nil, err
	}
	return NewPlayer(name, conn), nil
}

// Close releases the bus connection if one was dialed
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// client returns the shared connection, dialing it on first call
func (s *Source) client() (BusClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return s.conn, nil
	}

	conn, err := s.dial()
	if err != nil {
		return nil, fmt.Errorf("session bus connection failed: %w", err)
	}
	s.conn = conn
	s.logger.Debug("Connected to session bus")
	return s.conn, nil
}
