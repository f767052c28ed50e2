package session

import (
	"strings"
	"sync"
)

// ShortIDMap maps truncated link ids to full provider ids so callback
// payloads stay inside Telegram's 64-byte limit. Entries are kept for the
// process lifetime; the population is bounded by the links a user pages
// through in one run.
type ShortIDMap struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewShortIDMap() *ShortIDMap {
	return &ShortIDMap{m: make(map[string]string)}
}

// Derive produces the short form of a provider link id: the token after the
// last underscore, clipped to eight characters. Ids without an underscore
// are clipped whole.
func Derive(fullID string) string {
	token := fullID
	if i := strings.LastIndex(fullID, "_"); i >= 0 {
		token = fullID[i+1:]
	}
	if len(token) > 8 {
		token = token[:8]
	}
	return token
}

// Put registers a full id and returns its short form.
func (s *ShortIDMap) Put(fullID string) string {
	short := Derive(fullID)
	s.mu.Lock()
	s.m[short] = fullID
	s.mu.Unlock()
	return short
}

// Resolve returns the full id for a short id. Unknown ids resolve to
// themselves, which lets full ids pass through untouched.
func (s *ShortIDMap) Resolve(shortID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if full, ok := s.m[shortID]; ok {
		return full
	}
	return shortID
}
