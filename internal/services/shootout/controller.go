package shootout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/penalties-go/internal/dependencies/clock"
	"github.com/mcoot/penalties-go/internal/dependencies/random"
	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/services/pricing"
	"github.com/mcoot/penalties-go/internal/storage"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Controller manages the shootout lifecycle around the kick state machine
type Controller struct {
	storage        storage.Storage
	pricingService *pricing.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewController creates a new ShootoutController
func NewController(
	storage storage.Storage,
	pricingService *pricing.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		pricingService: pricingService,
		clock:          clock,
		random:         random,
		logger:         logger,
	}
}

// CreateShootout starts a new shootout owned by the given referee
func (c *Controller) CreateShootout(ctx context.Context, refereeID model.RefereeID, teamA, teamB string, rules model.Rules) (*model.Shootout, error) {
	id := model.ShootoutID(c.random.String(12, idAlphabet))

	shootout, err := model.NewShootout(id, teamA, teamB, rules)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	shootout.RefereeID = refereeID
	shootout.CreatedAt = now
	shootout.UpdatedAt = now

	if err := c.storage.SaveShootout(ctx, shootout); err != nil {
		c.logger.Error("failed to save shootout",
			slog.String("shootout_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("shootout created",
		slog.String("shootout_id", string(id)),
		slog.String("team_a", teamA),
		slog.String("team_b", teamB),
		slog.String("referee_id", string(refereeID)),
		slog.Int("regulation_rounds", shootout.Rules.RegulationRounds),
	)

	return shootout, nil
}

// GetShootout retrieves a shootout by ID
func (c *Controller) GetShootout(ctx context.Context, id model.ShootoutID) (*model.Shootout, error) {
	return c.storage.GetShootout(ctx, id)
}

// GetPricedShootout loads a shootout with its price lookup attached when the score needs it
func (c *Controller) GetPricedShootout(ctx context.Context, id model.ShootoutID) (*model.Shootout, error) {
	shootout, err := c.storage.GetShootout(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.attachPrices(ctx, shootout); err != nil {
		return nil, err
	}
	return shootout, nil
}

// Kick records an implicit-turn kick for whichever team is due
func (c *Controller) Kick(ctx context.Context, id model.ShootoutID, refereeID model.RefereeID, success bool) (*model.Shootout, error) {
	shootout, err := c.getOwned(ctx, id, refereeID)
	if err != nil {
		return nil, err
	}

	team := shootout.DueTeam()
	if err := shootout.Kick(success); err != nil {
		c.logRejected(ctx, shootout, team, "", err)
		return nil, err
	}

	if err := c.save(ctx, shootout); err != nil {
		return nil, err
	}

	c.logKick(shootout, team, "", success)
	if err := c.attachPrices(ctx, shootout); err != nil {
		return nil, err
	}
	return shootout, nil
}

// KickBy records a kick by a named player for the team they claim to kick for.
// It returns the updated shootout and the player's kick history.
func (c *Controller) KickBy(ctx context.Context, id model.ShootoutID, refereeID model.RefereeID, player, team string, success bool) (*model.Shootout, []bool, error) {
	shootout, err := c.getOwned(ctx, id, refereeID)
	if err != nil {
		return nil, nil, err
	}

	history, err := shootout.KickBy(player, team, success)
	if err != nil {
		c.logRejected(ctx, shootout, team, player, err)
		return nil, nil, err
	}

	if err := c.save(ctx, shootout); err != nil {
		return nil, nil, err
	}

	c.logKick(shootout, team, player, success)
	if err := c.attachPrices(ctx, shootout); err != nil {
		return nil, nil, err
	}
	return shootout, history, nil
}

// History returns a player's explicit kick history in a shootout
func (c *Controller) History(ctx context.Context, id model.ShootoutID, player string) ([]bool, error) {
	shootout, err := c.storage.GetShootout(ctx, id)
	if err != nil {
		return nil, err
	}
	return shootout.KicksHistoryForPlayer(player), nil
}

// Score returns the score string, priced once the series has run long
func (c *Controller) Score(ctx context.Context, id model.ShootoutID) (string, error) {
	shootout, err := c.GetPricedShootout(ctx, id)
	if err != nil {
		return "", err
	}
	return shootout.Score(), nil
}

// Summary returns the derived state of a shootout
func (c *Controller) Summary(ctx context.Context, id model.ShootoutID) (*model.ShootoutSummary, error) {
	shootout, err := c.GetPricedShootout(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := shootout.Summary()
	return &summary, nil
}

// DeleteShootout removes a shootout. Only its referee may delete it.
func (c *Controller) DeleteShootout(ctx context.Context, id model.ShootoutID, refereeID model.RefereeID) error {
	if _, err := c.getOwned(ctx, id, refereeID); err != nil {
		return err
	}

	if err := c.storage.DeleteShootout(ctx, id); err != nil {
		return err
	}

	c.logger.Info("shootout deleted",
		slog.String("shootout_id", string(id)),
		slog.String("referee_id", string(refereeID)),
	)
	return nil
}

// getOwned loads a shootout and checks the referee owns it
func (c *Controller) getOwned(ctx context.Context, id model.ShootoutID, refereeID model.RefereeID) (*model.Shootout, error) {
	shootout, err := c.storage.GetShootout(ctx, id)
	if err != nil {
		return nil, err
	}
	if shootout.RefereeID != refereeID {
		return nil, model.ErrNotReferee
	}
	return shootout, nil
}

func (c *Controller) attachPrices(ctx context.Context, shootout *model.Shootout) error {
	if !shootout.ExtendedScore() {
		return nil
	}
	prices, err := c.pricingService.PriceLookupFor(ctx, shootout)
	if err != nil {
		return err
	}
	shootout.SetPriceLookup(prices)
	return nil
}

func (c *Controller) save(ctx context.Context, shootout *model.Shootout) error {
	shootout.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveShootout(ctx, shootout); err != nil {
		c.logger.Error("failed to save shootout",
			slog.String("shootout_id", string(shootout.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (c *Controller) logKick(shootout *model.Shootout, team, player string, success bool) {
	goalsA, goalsB := shootout.Goals()
	attrs := []any{
		slog.String("shootout_id", string(shootout.ID)),
		slog.String("team", team),
		slog.Bool("success", success),
		slog.Int("turn", shootout.Turn()),
		slog.Int("goals_a", goalsA),
		slog.Int("goals_b", goalsB),
	}
	if player != "" {
		attrs = append(attrs, slog.String("player", player))
	}
	c.logger.Info("kick recorded", attrs...)

	if shootout.Finished() {
		c.logger.Info("shootout finished",
			slog.String("shootout_id", string(shootout.ID)),
			slog.String("winner", shootout.Winner()),
			slog.Int("total_kicks", shootout.Turn()),
		)
	}
}

func (c *Controller) logRejected(ctx context.Context, shootout *model.Shootout, team, player string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, model.ErrInvalidPlayer) {
		level = slog.LevelInfo
	}
	c.logger.Log(ctx, level, "kick rejected",
		slog.String("shootout_id", string(shootout.ID)),
		slog.String("team", team),
		slog.String("player", player),
		slog.String("due_team", shootout.DueTeam()),
		slog.String("error", err.Error()),
	)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateShootout(ctx context.Context, refereeID model.RefereeID, teamA, teamB string, rules model.Rules) (*model.Shootout, error)
	GetShootout(ctx context.Context, id model.ShootoutID) (*model.Shootout, error)
	GetPricedShootout(ctx context.Context, id model.ShootoutID) (*model.Shootout, error)
	Kick(ctx context.Context, id model.ShootoutID, refereeID model.RefereeID, success bool) (*model.Shootout, error)
	KickBy(ctx context.Context, id model.ShootoutID, refereeID model.RefereeID, player, team string, success bool) (*model.Shootout, []bool, error)
	History(ctx context.Context, id model.ShootoutID, player string) ([]bool, error)
	Score(ctx context.Context, id model.ShootoutID) (string, error)
	Summary(ctx context.Context, id model.ShootoutID) (*model.ShootoutSummary, error)
	DeleteShootout(ctx context.Context, id model.ShootoutID, refereeID model.RefereeID) error
}

var _ ControllerInterface = (*Controller)(nil)
