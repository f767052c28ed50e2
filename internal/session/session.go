// Package session holds the in-memory per-user conversation state. Sessions
// are lost on restart by design; entries are removed only when a flow
// completes, is cancelled or rejected, never by time.
package session

import (
	"sync"

	"github.com/telepathbot/telepath/internal/domain"
)

// Mode identifies the single active conversation flow for a user. Starting a
// new flow replaces the previous session wholesale, so exactly one mode is
// ever active and flows cannot clobber each other's fields.
type Mode int

const (
	ModeIdle Mode = iota
	ModeAwaitingDecision
	ModeSetup
	ModeEditingLink
)

type state struct {
	mode             Mode
	pendingLink      *domain.Suggestion
	availableDomains []string
	awaitingSlug     bool
	setupStep        domain.SetupStep
	editingLinkID    string
}

// Store is the process-wide session table, keyed by user id. Handlers for
// different users run concurrently, so access is guarded.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*state
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*state)}
}

// Mode returns the user's active flow; absent sessions are Idle.
func (s *Store) Mode(userID int64) Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.sessions[userID]; ok {
		return st.mode
	}
	return ModeIdle
}

// Clear removes the user's session entirely, returning the user to Idle.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// SetPendingSuggestion enters AwaitingDecision with a fresh suggestion.
func (s *Store) SetPendingSuggestion(userID int64, suggestion *domain.Suggestion, availableDomains []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &state{
		mode:             ModeAwaitingDecision,
		pendingLink:      suggestion,
		availableDomains: availableDomains,
	}
}

// PendingSuggestion returns a copy of the pending suggestion, if any.
func (s *Store) PendingSuggestion(userID int64) (domain.Suggestion, []string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[userID]
	if !ok || st.mode != ModeAwaitingDecision || st.pendingLink == nil {
		return domain.Suggestion{}, nil, false
	}
	return *st.pendingLink, st.availableDomains, true
}

// AwaitCustomSlug marks that the next text message carries a custom slug for
// the pending suggestion.
func (s *Store) AwaitCustomSlug(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[userID]
	if !ok || st.mode != ModeAwaitingDecision {
		return false
	}
	st.awaitingSlug = true
	return true
}

// AwaitingCustomSlug reports whether the user was prompted for a custom slug.
func (s *Store) AwaitingCustomSlug(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[userID]
	return ok && st.mode == ModeAwaitingDecision && st.awaitingSlug
}

// UpdatePendingSlug mutates the pending suggestion in place; the session
// stays in AwaitingDecision.
func (s *Store) UpdatePendingSlug(userID int64, newSlug, reasoning string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[userID]
	if !ok || st.mode != ModeAwaitingDecision || st.pendingLink == nil {
		return false
	}
	st.pendingLink.SuggestedSlug = newSlug
	st.pendingLink.Reasoning = reasoning
	st.awaitingSlug = false
	return true
}

// UpdatePendingDomain switches the pending suggestion's domain.
func (s *Store) UpdatePendingDomain(userID int64, domainSlug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[userID]
	if !ok || st.mode != ModeAwaitingDecision || st.pendingLink == nil {
		return false
	}
	st.pendingLink.Domain = domainSlug
	return true
}

// BeginSetup enters the setup wizard at the given step.
func (s *Store) BeginSetup(userID int64, step domain.SetupStep) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &state{mode: ModeSetup, setupStep: step}
}

// SetSetupStep advances the wizard; the session must already be in setup.
func (s *Store) SetSetupStep(userID int64, step domain.SetupStep) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[userID]
	if !ok || st.mode != ModeSetup {
		return false
	}
	st.setupStep = step
	return true
}

// SetupStep returns the wizard step the user is on.
func (s *Store) SetupStep(userID int64) (domain.SetupStep, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[userID]
	if !ok || st.mode != ModeSetup {
		return "", false
	}
	return st.setupStep, true
}

// BeginEditLink enters the slug-editing flow for a managed link.
func (s *Store) BeginEditLink(userID int64, linkID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = &state{mode: ModeEditingLink, editingLinkID: linkID}
}

// EditingLink returns the link id being edited.
func (s *Store) EditingLink(userID int64) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[userID]
	if !ok || st.mode != ModeEditingLink {
		return "", false
	}
	return st.editingLinkID, true
}
