package factory

import (
	"time"

	"github.com/mcoot/penalties-go/internal/dependencies/mocks"
	"github.com/mcoot/penalties-go/internal/services/auth"
	"github.com/mcoot/penalties-go/internal/storage"
	"github.com/mcoot/penalties-go/internal/storage/memory"
	"github.com/mcoot/penalties-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App backed by memory storage with mocked clock and random
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage creates a TestApp over the given storage
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
