package pricing

import (
	"context"
	"log/slog"

	"github.com/mcoot/penalties-go/internal/dependencies/clock"
	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/storage"
)

// Service manages player valuations and prices missed kicks
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new PricingService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// SetValuation records the price of a player
func (s *Service) SetValuation(ctx context.Context, player string, price int64) (*model.Valuation, error) {
	if player == "" {
		return nil, model.ErrInvalidPlayer
	}
	if price < 0 {
		return nil, model.ErrInvalidPrice
	}

	valuation := &model.Valuation{
		Player:    player,
		Price:     price,
		UpdatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveValuation(ctx, valuation); err != nil {
		return nil, err
	}

	s.logger.Info("valuation set",
		slog.String("player", player),
		slog.Int64("price", price),
	)
	return valuation, nil
}

// GetValuation returns the price of a player
func (s *Service) GetValuation(ctx context.Context, player string) (*model.Valuation, error) {
	return s.storage.GetValuation(ctx, player)
}

// PriceLookupFor builds the lookup used by a shootout's priced score.
// A team's price is the sum of the valuations of its players behind each
// missed explicit kick; a player's price is the same restricted to that player.
// Players without a valuation cost nothing.
func (s *Service) PriceLookupFor(ctx context.Context, shootout *model.Shootout) (model.PriceLookup, error) {
	var players []string
	seen := make(map[string]bool)
	for _, k := range shootout.Kicks {
		if k.Success || k.Player == "" || seen[k.Player] {
			continue
		}
		seen[k.Player] = true
		players = append(players, k.Player)
	}

	valuations, err := s.storage.GetValuations(ctx, players)
	if err != nil {
		return nil, err
	}

	if len(valuations) < len(players) {
		s.logger.Debug("missing valuations for missed kickers",
			slog.String("shootout_id", string(shootout.ID)),
			slog.Int("kickers", len(players)),
			slog.Int("valued", len(valuations)),
		)
	}

	return model.PriceLookupFunc(func(name string) int64 {
		var total int64
		for _, k := range shootout.MissedKicksBy(name) {
			if v, ok := valuations[k.Player]; ok {
				total += v.Price
			}
		}
		return total
	}), nil
}
