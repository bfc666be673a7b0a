package equipment

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/errors"
	"github.com/guardianforge/loadout-api/internal/redis"
)

const equipmentKeyPrefix = "equipment:"

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

// NewRedis creates a Redis-backed equipment repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

// equipmentData is the stored shape. Derived fields (stat slots) are
// rebuilt through the entity constructor on load so every record read
// back is revalidated.
type equipmentData struct {
	ID               string                        `json:"id"`
	Name             string                        `json:"name"`
	Type             destiny.EquipmentType         `json:"type"`
	Rarity           destiny.Rarity                `json:"rarity"`
	Tag              destiny.Tag                   `json:"tag,omitempty"`
	Attributes       map[destiny.Attribute]float64 `json:"attributes"`
	ClassRestriction []destiny.GuardianClass       `json:"class_restriction,omitempty"`
	SetName          string                        `json:"set_name,omitempty"`
	Level            int                           `json:"level"`
	LockedAttr       destiny.Attribute             `json:"locked_attr,omitempty"`
	PenaltyAttr      destiny.Attribute             `json:"penalty_attr,omitempty"`
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Equipment == nil {
		return nil, errors.InvalidArgument("equipment cannot be nil")
	}
	if input.Equipment.ID == "" {
		return nil, errors.InvalidArgument("equipment ID cannot be empty")
	}

	data := equipmentData{
		ID:               input.Equipment.ID,
		Name:             input.Equipment.Name,
		Type:             input.Equipment.Type,
		Rarity:           input.Equipment.Rarity,
		Tag:              input.Equipment.Tag,
		Attributes:       input.Equipment.Attributes,
		ClassRestriction: input.Equipment.ClassRestriction,
		SetName:          input.Equipment.SetName,
		Level:            input.Equipment.Level,
		LockedAttr:       input.Equipment.LockedAttr,
		PenaltyAttr:      input.Equipment.PenaltyAttr,
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal equipment")
	}

	key := equipmentKeyPrefix + input.Equipment.ID
	if err := r.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save equipment %s", input.Equipment.ID)
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("equipment ID cannot be empty")
	}

	payload, err := r.client.Get(ctx, equipmentKeyPrefix+input.ID).Result()
	if err != nil {
		if redis.IsNil(err) {
			return nil, errors.NotFoundf("equipment %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get equipment %s", input.ID)
	}

	piece, err := unmarshalEquipment([]byte(payload))
	if err != nil {
		return nil, err
	}

	return &GetOutput{Equipment: piece}, nil
}

func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	keys, err := r.client.Keys(ctx, equipmentKeyPrefix+"*").Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list equipment keys")
	}
	sort.Strings(keys)

	pieces := make([]*destiny.Equipment, 0, len(keys))
	for _, key := range keys {
		payload, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if redis.IsNil(err) {
				// deleted between scan and read
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		piece, err := unmarshalEquipment([]byte(payload))
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
	}

	return &ListOutput{Equipment: pieces}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument("equipment ID cannot be empty")
	}

	deleted, err := r.client.Del(ctx, equipmentKeyPrefix+input.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete equipment %s", input.ID)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("equipment %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

func unmarshalEquipment(payload []byte) (*destiny.Equipment, error) {
	var data equipmentData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal equipment")
	}

	piece, err := destiny.New(&destiny.Config{
		ID:               data.ID,
		Name:             data.Name,
		Type:             data.Type,
		Rarity:           data.Rarity,
		Tag:              data.Tag,
		Attributes:       data.Attributes,
		ClassRestriction: data.ClassRestriction,
		SetName:          data.SetName,
		Level:            data.Level,
		LockedAttr:       data.LockedAttr,
		PenaltyAttr:      data.PenaltyAttr,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "stored equipment %s is invalid", data.ID)
	}

	return piece, nil
}
