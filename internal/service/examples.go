package service

import (
	"sync"

	"github.com/ricirt/api-stub/internal/domain"
)

// Example pairs a content-type label with the sample payload served for it.
type Example struct {
	ContentType string
	Payload     domain.APIResponse
}

// Examples is an insertion-ordered set of example payloads keyed by content
// type. The first entry is the one served when no preference is expressed.
type Examples struct {
	mu      sync.RWMutex
	entries []Example
}

// NewExamples builds a set from entries, keeping their order. A later entry
// for an already-present content type replaces the earlier payload in place.
func NewExamples(entries ...Example) *Examples {
	e := &Examples{}
	for _, ex := range entries {
		e.Set(ex.ContentType, ex.Payload)
	}
	return e
}

// DefaultExamples returns the set the stub ships with: the canned health
// record as application/json.
func DefaultExamples() *Examples {
	return NewExamples(Example{ContentType: domain.ContentTypeJSON, Payload: domain.HealthExample()})
}

// Set adds or replaces the payload for contentType.
func (e *Examples) Set(contentType string, payload domain.APIResponse) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.entries {
		if e.entries[i].ContentType == contentType {
			e.entries[i].Payload = payload
			return
		}
	}
	e.entries = append(e.entries, Example{ContentType: contentType, Payload: payload})
}

// Remove deletes the entry for contentType. It reports whether one existed.
func (e *Examples) Remove(contentType string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.entries {
		if e.entries[i].ContentType == contentType {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			return true
		}
	}
	return false
}

// First returns the earliest inserted example. ok is false for an empty set.
func (e *Examples) First() (ex Example, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.entries) == 0 {
		return Example{}, false
	}
	return e.entries[0], true
}

func (e *Examples) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.entries)
}
