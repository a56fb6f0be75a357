package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/penalties-go/internal/model"
	"github.com/mcoot/penalties-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid REDIS_URL")
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrapf(err, "ping redis at %s", opts.Addr)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Referee operations

func (s *Storage) SaveReferee(ctx context.Context, referee *model.Referee) error {
	data, err := json.Marshal(referee)
	if err != nil {
		return crerr.Wrap(err, "marshal referee")
	}
	return s.client.Set(ctx, refereeKey(referee.ID), data, 0).Err()
}

func (s *Storage) GetReferee(ctx context.Context, id model.RefereeID) (*model.Referee, error) {
	data, err := s.client.Get(ctx, refereeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRefereeNotFound
		}
		return nil, err
	}

	var referee model.Referee
	if err := json.Unmarshal(data, &referee); err != nil {
		return nil, crerr.Wrapf(err, "decode referee %s", id)
	}
	return &referee, nil
}

func (s *Storage) DeleteReferee(ctx context.Context, id model.RefereeID) error {
	return s.client.Del(ctx, refereeKey(id)).Err()
}

// Registered referee operations

func (s *Storage) SaveRegisteredReferee(ctx context.Context, rr *model.RegisteredReferee) error {
	data, err := json.Marshal(rr)
	if err != nil {
		return crerr.Wrap(err, "marshal registered referee")
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredRefereeKey(rr.RefereeID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rr.Username), string(rr.RefereeID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredReferee(ctx context.Context, refereeID model.RefereeID) (*model.RegisteredReferee, error) {
	data, err := s.client.Get(ctx, registeredRefereeKey(refereeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRefereeNotFound
		}
		return nil, err
	}

	var rr model.RegisteredReferee
	if err := json.Unmarshal(data, &rr); err != nil {
		return nil, crerr.Wrapf(err, "decode registered referee %s", refereeID)
	}
	return &rr, nil
}

func (s *Storage) GetRegisteredRefereeByUsername(ctx context.Context, username string) (*model.RegisteredReferee, error) {
	refereeIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRefereeNotFound
		}
		return nil, err
	}

	return s.GetRegisteredReferee(ctx, model.RefereeID(refereeIDStr))
}

// Shootout operations

func (s *Storage) SaveShootout(ctx context.Context, shootout *model.Shootout) error {
	data, err := json.Marshal(shootout)
	if err != nil {
		return crerr.Wrapf(err, "marshal shootout %s", shootout.ID)
	}

	return s.client.Set(ctx, shootoutKey(shootout.ID), data, s.cfg.ShootoutTTL).Err()
}

func (s *Storage) GetShootout(ctx context.Context, id model.ShootoutID) (*model.Shootout, error) {
	data, err := s.client.Get(ctx, shootoutKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrShootoutNotFound
		}
		return nil, err
	}

	var shootout model.Shootout
	if err := json.Unmarshal(data, &shootout); err != nil {
		return nil, crerr.Wrapf(err, "decode shootout %s", id)
	}
	if shootout.Kicks == nil {
		shootout.Kicks = []model.Kick{}
	}
	return &shootout, nil
}

func (s *Storage) DeleteShootout(ctx context.Context, id model.ShootoutID) error {
	return s.client.Del(ctx, shootoutKey(id)).Err()
}

// Valuation operations
// All valuations live in one HASH keyed by player name.

func (s *Storage) SaveValuation(ctx context.Context, valuation *model.Valuation) error {
	data, err := json.Marshal(valuation)
	if err != nil {
		return crerr.Wrapf(err, "marshal valuation for %q", valuation.Player)
	}
	return s.client.HSet(ctx, valuationsKey(), valuation.Player, data).Err()
}

func (s *Storage) GetValuation(ctx context.Context, player string) (*model.Valuation, error) {
	data, err := s.client.HGet(ctx, valuationsKey(), player).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrValuationNotFound
		}
		return nil, err
	}

	var valuation model.Valuation
	if err := json.Unmarshal(data, &valuation); err != nil {
		return nil, crerr.Wrapf(err, "decode valuation for %q", player)
	}
	return &valuation, nil
}

func (s *Storage) GetValuations(ctx context.Context, players []string) (map[string]*model.Valuation, error) {
	result := make(map[string]*model.Valuation, len(players))
	if len(players) == 0 {
		return result, nil
	}

	values, err := s.client.HMGet(ctx, valuationsKey(), players...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // Missing field
		}
		var valuation model.Valuation
		if err := json.Unmarshal([]byte(raw), &valuation); err != nil {
			return nil, crerr.Wrapf(err, "decode valuation for %q", players[i])
		}
		result[players[i]] = &valuation
	}
	return result, nil
}
