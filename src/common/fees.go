package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
)

const roomTypeCacheTTL = 10 * time.Minute

// Round2 rounds half up to 2 decimal places. Fee math goes through here so
// the computed floor is reproducible.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roomTypeCacheKey(id uint) string {
	return fmt.Sprintf("roomtype:%d", id)
}

// GetRoomType resolves a room type, going through the redis cache when a
// client is configured. Cache faults only get logged; the database stays
// authoritative.
func GetRoomType(id uint) (*models.RoomType, error) {
	ctx := context.Background()
	rd := lib.GetRedisClient()
	if rd != nil {
		if cached, err := rd.Get(ctx, roomTypeCacheKey(id)).Result(); err == nil {
			var roomType models.RoomType
			if err := json.Unmarshal([]byte(cached), &roomType); err == nil {
				return &roomType, nil
			}
		}
	}
	var roomType models.RoomType
	err := db.GetDb().First(&roomType, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if rd != nil {
		if payload, err := json.Marshal(&roomType); err == nil {
			if err := rd.Set(ctx, roomTypeCacheKey(id), payload, roomTypeCacheTTL).Err(); err != nil {
				log.Printf("[redis] Failed to cache room type %d: %s\n", id, err.Error())
			}
		}
	}
	return &roomType, nil
}

// InvalidateRoomType drops the cached copy after an administrative edit.
func InvalidateRoomType(id uint) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(context.Background(), roomTypeCacheKey(id)).Err(); err != nil {
		log.Printf("[redis] Failed to invalidate room type %d: %s\n", id, err.Error())
	}
}

// MinimumReservationFee is the floor for the declared payment amount when
// reserving a room of the given type: basePrice x feePercentage / 100,
// rounded to 2 places. The boundary is inclusive; validation lives with the
// booking creation path.
func MinimumReservationFee(roomTypeID uint) (float64, error) {
	roomType, err := GetRoomType(roomTypeID)
	if err != nil {
		return 0, err
	}
	return Round2(roomType.BasePrice * roomType.ReservationFeePercentage / 100), nil
}
