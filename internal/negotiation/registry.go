package negotiation

import (
	"errors"
	"log"
	"strings"
	"sync"
)

var errBlankCompany = errors.New("company id is blank")

// Registry hands out one Session per acting company. A session lives until
// End is called for its company.
type Registry struct {
	mu        sync.RWMutex
	store     *Store
	assistant *Assistant
	sessions  map[string]*Session
}

func NewRegistry(store *Store, assistant *Assistant) *Registry {
	return &Registry{
		store:     store,
		assistant: assistant,
		sessions:  make(map[string]*Session),
	}
}

func (r *Registry) Store() *Store {
	return r.store
}

// Session returns the session of companyID, starting one if needed.
func (r *Registry) Session(companyID string) (*Session, error) {
	companyID = strings.TrimSpace(companyID)
	if companyID == "" {
		return nil, errBlankCompany
	}

	r.mu.RLock()
	s, ok := r.sessions[companyID]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[companyID]; ok {
		return s, nil
	}
	s = NewSession(companyID, r.store, r.assistant)
	r.sessions[companyID] = s
	log.Printf("[svc] session started company=%s", companyID)
	return s, nil
}

// End tears down the session of companyID. It reports whether one existed.
func (r *Registry) End(companyID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[companyID]; !ok {
		return false
	}
	delete(r.sessions, companyID)
	log.Printf("[svc] session ended company=%s", companyID)
	return true
}
