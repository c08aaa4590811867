package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidKind is returned for an unknown usage event type
var ErrInvalidKind = errors.New("invalid stat type")

// Kind is a usage event type
type Kind string

const (
	KindVisit Kind = "visit"
	KindScan  Kind = "scan"
	KindShare Kind = "share"
	KindMoon  Kind = "moon"
)

// counterNames maps each kind to the counter it bumps
var counterNames = map[Kind]string{
	KindVisit: "visits",
	KindScan:  "scans",
	KindShare: "shares",
	KindMoon:  "moon",
}

// ParseKind validates an event type
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := counterNames[k]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidKind)
	}
	return k, nil
}

// Counter returns the counter name bumped by this kind
func (k Kind) Counter() string {
	return counterNames[k]
}

// Counters are the global usage totals
type Counters struct {
	Visits int64 `json:"visits"`
	Scans  int64 `json:"scans"`
	Shares int64 `json:"shares"`
	Moon   int64 `json:"moon"`
}

// set assigns a counter by name, ignoring unknown names
func (c *Counters) set(counter string, v int64) {
	switch counter {
	case "visits":
		c.Visits = v
	case "scans":
		c.Scans = v
	case "shares":
		c.Shares = v
	case "moon":
		c.Moon = v
	}
}

// Store persists global usage counters
// ⭐ SSOT: 전역 사용량 카운터 저장 인터페이스
type Store interface {
	Get(ctx context.Context) (Counters, error)
	Increment(ctx context.Context, kind Kind) (Counters, error)
}

// MemoryStore keeps counters in process memory
type MemoryStore struct {
	mu       sync.Mutex
	counters Counters
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the current totals
func (s *MemoryStore) Get(ctx context.Context) (Counters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters, nil
}

// Increment bumps the counter for kind and returns the new totals
func (s *MemoryStore) Increment(ctx context.Context, kind Kind) (Counters, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case KindVisit:
		s.counters.Visits++
	case KindScan:
		s.counters.Scans++
	case KindShare:
		s.counters.Shares++
	case KindMoon:
		s.counters.Moon++
	default:
		return s.counters, fmt.Errorf("%q: %w", kind, ErrInvalidKind)
	}
	return s.counters, nil
}
