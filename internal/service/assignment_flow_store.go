package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

// AssignmentFlowStore keeps open assignment flows in memory. A flow expires after ttl
// without activity.
type AssignmentFlowStore struct {
	ttl     time.Duration
	metrics *MetricsService
	now     func() time.Time

	mu    sync.RWMutex
	flows map[string]*flowEntry
}

type flowEntry struct {
	orchestrator *AssignmentOrchestrator
	expiresAt    time.Time
}

// NewAssignmentFlowStore builds an empty store.
func NewAssignmentFlowStore(ttl time.Duration, metrics *MetricsService) *AssignmentFlowStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &AssignmentFlowStore{
		ttl:     ttl,
		metrics: metrics,
		now:     time.Now,
		flows:   make(map[string]*flowEntry),
	}
}

// Put registers an orchestrator and returns its flow id.
func (s *AssignmentFlowStore) Put(orchestrator *AssignmentOrchestrator) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.flows[id] = &flowEntry{orchestrator: orchestrator, expiresAt: s.now().Add(s.ttl)}
	count := len(s.flows)
	s.mu.Unlock()
	s.metrics.SetActiveFlows(count)
	return id
}

// Get returns the flow and extends its expiry.
func (s *AssignmentFlowStore) Get(id string) (*AssignmentOrchestrator, error) {
	s.mu.Lock()
	entry, ok := s.flows[id]
	if ok && s.now().After(entry.expiresAt) {
		delete(s.flows, id)
		ok = false
	}
	if ok {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	count := len(s.flows)
	s.mu.Unlock()
	s.metrics.SetActiveFlows(count)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment flow not found or expired")
	}
	return entry.orchestrator, nil
}

// Delete closes a flow. Unknown ids are ignored.
func (s *AssignmentFlowStore) Delete(id string) {
	s.mu.Lock()
	delete(s.flows, id)
	count := len(s.flows)
	s.mu.Unlock()
	s.metrics.SetActiveFlows(count)
}

// Sweep drops expired flows and returns how many were removed.
func (s *AssignmentFlowStore) Sweep() int {
	s.mu.Lock()
	now := s.now()
	removed := 0
	for id, entry := range s.flows {
		if now.After(entry.expiresAt) {
			delete(s.flows, id)
			removed++
		}
	}
	count := len(s.flows)
	s.mu.Unlock()
	s.metrics.SetActiveFlows(count)
	return removed
}

// Len returns the number of open flows, expired ones included until swept.
func (s *AssignmentFlowStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flows)
}
