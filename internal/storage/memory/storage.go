package memory

import (
	"context"
	"sync"

	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	referees           map[model.RefereeID]*model.Referee
	registeredReferees map[model.RefereeID]*model.RegisteredReferee
	usernameIndex      map[string]model.RefereeID
	shootouts          map[model.ShootoutID]*model.Shootout
	valuations         map[string]*model.Valuation
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		referees:           make(map[model.RefereeID]*model.Referee),
		registeredReferees: make(map[model.RefereeID]*model.RegisteredReferee),
		usernameIndex:      make(map[string]model.RefereeID),
		shootouts:          make(map[model.ShootoutID]*model.Shootout),
		valuations:         make(map[string]*model.Valuation),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Referee operations

func (s *Storage) SaveReferee(ctx context.Context, referee *model.Referee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.referees[referee.ID] = referee
	return nil
}

func (s *Storage) GetReferee(ctx context.Context, id model.RefereeID) (*model.Referee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	referee, ok := s.referees[id]
	if !ok {
		return nil, model.ErrRefereeNotFound
	}
	return referee, nil
}

func (s *Storage) DeleteReferee(ctx context.Context, id model.RefereeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.referees, id)
	return nil
}

// Registered referee operations

func (s *Storage) SaveRegisteredReferee(ctx context.Context, rr *model.RegisteredReferee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredReferees[rr.RefereeID] = rr
	s.usernameIndex[rr.Username] = rr.RefereeID
	return nil
}

func (s *Storage) GetRegisteredReferee(ctx context.Context, refereeID model.RefereeID) (*model.RegisteredReferee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rr, ok := s.registeredReferees[refereeID]
	if !ok {
		return nil, model.ErrRefereeNotFound
	}
	return rr, nil
}

func (s *Storage) GetRegisteredRefereeByUsername(ctx context.Context, username string) (*model.RegisteredReferee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refereeID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrRefereeNotFound
	}
	rr, ok := s.registeredReferees[refereeID]
	if !ok {
		return nil, model.ErrRefereeNotFound
	}
	return rr, nil
}

// Shootout operations
// Shootouts are copied on the way in and out so callers never share kick slices.

func (s *Storage) SaveShootout(ctx context.Context, shootout *model.Shootout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shootouts[shootout.ID] = cloneShootout(shootout)
	return nil
}

func (s *Storage) GetShootout(ctx context.Context, id model.ShootoutID) (*model.Shootout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shootout, ok := s.shootouts[id]
	if !ok {
		return nil, model.ErrShootoutNotFound
	}
	return cloneShootout(shootout), nil
}

func (s *Storage) DeleteShootout(ctx context.Context, id model.ShootoutID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shootouts, id)
	return nil
}

func cloneShootout(src *model.Shootout) *model.Shootout {
	dst := *src
	dst.Kicks = make([]model.Kick, len(src.Kicks))
	copy(dst.Kicks, src.Kicks)
	return &dst
}

// Valuation operations

func (s *Storage) SaveValuation(ctx context.Context, valuation *model.Valuation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := *valuation
	s.valuations[valuation.Player] = &v
	return nil
}

func (s *Storage) GetValuation(ctx context.Context, player string) (*model.Valuation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	valuation, ok := s.valuations[player]
	if !ok {
		return nil, model.ErrValuationNotFound
	}
	v := *valuation
	return &v, nil
}

// GetValuations returns the valuations that exist for the given players.
// Players without a valuation are absent from the result.
func (s *Storage) GetValuations(ctx context.Context, players []string) (map[string]*model.Valuation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]*model.Valuation, len(players))
	for _, p := range players {
		if valuation, ok := s.valuations[p]; ok {
			v := *valuation
			result[p] = &v
		}
	}
	return result, nil
}
