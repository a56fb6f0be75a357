package storage

import (
	"context"

	"github.com/mcoot/penalties-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Referee operations
	SaveReferee(ctx context.Context, referee *model.Referee) error
	GetReferee(ctx context.Context, id model.RefereeID) (*model.Referee, error)
	DeleteReferee(ctx context.Context, id model.RefereeID) error

	// Registered referee operations
	SaveRegisteredReferee(ctx context.Context, rr *model.RegisteredReferee) error
	GetRegisteredReferee(ctx context.Context, refereeID model.RefereeID) (*model.RegisteredReferee, error)
	GetRegisteredRefereeByUsername(ctx context.Context, username string) (*model.RegisteredReferee, error)

	// Shootout operations
	SaveShootout(ctx context.Context, shootout *model.Shootout) error
	GetShootout(ctx context.Context, id model.ShootoutID) (*model.Shootout, error)
	DeleteShootout(ctx context.Context, id model.ShootoutID) error

	// Valuation operations
	SaveValuation(ctx context.Context, valuation *model.Valuation) error
	GetValuation(ctx context.Context, player string) (*model.Valuation, error)
	GetValuations(ctx context.Context, players []string) (map[string]*model.Valuation, error)
}
