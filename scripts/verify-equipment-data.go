// Command verify-equipment-data scans stored equipment records and reports
// any that no longer pass entity validation, for example after a manual
// edit or a bad migration. Pass -delete to remove the invalid records.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
)

type storedEquipment struct {
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

func main() {
	deleteInvalid := flag.Bool("delete", false, "delete records that fail validation")
	flag.Parse()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning equipment records...")

	keys, err := client.Keys(ctx, "equipment:*").Result()
	if err != nil {
		log.Fatal("Failed to scan keys:", err)
	}

	var invalid []string
	for _, key := range keys {
		payload, err := client.Get(ctx, key).Result()
		if err != nil {
			log.Printf("Failed to read %s: %v", key, err)
			continue
		}

		if reason := validate([]byte(payload)); reason != "" {
			fmt.Printf("INVALID %s: %s\n", key, reason)
			invalid = append(invalid, key)
		}
	}

	fmt.Printf("Checked %d records, %d invalid\n", len(keys), len(invalid))

	if *deleteInvalid && len(invalid) > 0 {
		for _, key := range invalid {
			if err := client.Del(ctx, key).Err(); err != nil {
				log.Printf("Failed to delete %s: %v", key, err)
				continue
			}
			fmt.Println("Deleted", key)
		}
	}
}

func validate(payload []byte) string {
	var data storedEquipment
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Sprintf("unmarshal failed: %v", err)
	}

	_, err := destiny.New(&destiny.Config{
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
		return err.Error()
	}
	return ""
}
