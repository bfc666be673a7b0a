package build

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/guardianforge/loadout-api/internal/errors"
	"github.com/guardianforge/loadout-api/internal/redis"
)

const buildKeyPrefix = "build:"

type redisRepository struct {
	client redis.Client
}

// RedisConfig holds the dependencies for the Redis repository
type RedisConfig struct {
	Client redis.Client
}

// Validate ensures all required fields are set
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("redis client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed build repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Build == nil {
		return nil, errors.InvalidArgument("build cannot be nil")
	}
	if input.Build.ID == "" {
		return nil, errors.InvalidArgument("build ID cannot be empty")
	}

	payload, err := json.Marshal(input.Build)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal build")
	}

	if err := r.client.Set(ctx, buildKeyPrefix+input.Build.ID, payload, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save build %s", input.Build.ID)
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("build ID cannot be empty")
	}

	payload, err := r.client.Get(ctx, buildKeyPrefix+input.ID).Result()
	if err != nil {
		if redis.IsNil(err) {
			return nil, errors.NotFoundf("build %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get build %s", input.ID)
	}

	var saved SavedBuild
	if err := json.Unmarshal([]byte(payload), &saved); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal build")
	}

	return &GetOutput{Build: &saved}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	keys, err := r.client.Keys(ctx, buildKeyPrefix+"*").Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list build keys")
	}

	builds := make([]*SavedBuild, 0, len(keys))
	for _, key := range keys {
		payload, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if redis.IsNil(err) {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		var saved SavedBuild
		if err := json.Unmarshal([]byte(payload), &saved); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal build")
		}
		builds = append(builds, &saved)
	}

	sort.Slice(builds, func(i, j int) bool {
		if !builds[i].CreatedAt.Equal(builds[j].CreatedAt) {
			return builds[i].CreatedAt.Before(builds[j].CreatedAt)
		}
		return builds[i].ID < builds[j].ID
	})

	return &ListOutput{Builds: builds}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("build ID cannot be empty")
	}

	deleted, err := r.client.Del(ctx, buildKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete build %s", input.ID)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("build %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}
