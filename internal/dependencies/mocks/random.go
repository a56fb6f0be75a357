package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/penalties-go/internal/dependencies/random"
)

// MockRandom returns queued values so tests can predict IDs and tokens
type MockRandom struct {
	mu sync.Mutex

	stringResults []string
	tokenResults  []string
	tokensIssued  int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// String returns the next queued string, or "" once the queue is empty
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.stringResults) == 0 {
		return ""
	}
	result := r.stringResults[0]
	r.stringResults = r.stringResults[1:]
	return result
}

// Token returns the next queued token, falling back to "token-N" so
// sessions stay distinct when nothing is queued
func (r *MockRandom) Token(n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokensIssued++
	if len(r.tokenResults) == 0 {
		return fmt.Sprintf("token-%d", r.tokensIssued)
	}
	result := r.tokenResults[0]
	r.tokenResults = r.tokenResults[1:]
	return result
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	r.stringResults = append(r.stringResults, values...)
	r.mu.Unlock()
}

// QueueToken adds values to the Token result queue
func (r *MockRandom) QueueToken(values ...string) {
	r.mu.Lock()
	r.tokenResults = append(r.tokenResults, values...)
	r.mu.Unlock()
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	r.stringResults = nil
	r.tokenResults = nil
	r.tokensIssued = 0
	r.mu.Unlock()
}
