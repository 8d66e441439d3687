package main

import (
	"errors"
	"hbs/src/common"
	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/models/scopes"
	"hbs/src/types"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func publicRoomRoutes(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rooms", func(ctx *gin.Context) {
			db := db.GetDb()
			var rooms []models.Room
			err := db.
				Model(&models.Room{}).
				Preload("RoomType").
				Scopes(scopes.ByRoomNumber).
				Find(&rooms).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms, "count": len(rooms)})
		}).
		GET("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var room models.Room
			err := db.
				Preload("RoomType").
				First(&room, params.ID).
				Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					writeDomainError(ctx, types.ErrNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		GET("/rooms/types", func(ctx *gin.Context) {
			db := db.GetDb()
			var roomTypes []models.RoomType
			err := db.
				Model(&models.RoomType{}).
				Order("base_price ASC").
				Find(&roomTypes).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": roomTypes, "count": len(roomTypes)})
		})
	return g
}

func roomHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/rooms", func(ctx *gin.Context) {
			var body types.CreateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			roomType, err := common.GetRoomType(body.RoomTypeID)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			price := body.Price
			if price == 0 {
				price = roomType.BasePrice
			}
			room := models.Room{
				RoomNumber: body.RoomNumber,
				RoomTypeID: body.RoomTypeID,
				Price:      price,
			}
			db := db.GetDb()
			if err := db.Create(&room).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": room})
		}).
		PUT("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateRoomRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.RoomNumber != nil {
				updates["room_number"] = *body.RoomNumber
			}
			if body.RoomTypeID != nil {
				if _, err := common.GetRoomType(*body.RoomTypeID); err != nil {
					writeDomainError(ctx, err)
					return
				}
				updates["room_type_id"] = *body.RoomTypeID
			}
			if body.Price != nil {
				updates["price"] = common.Round2(*body.Price)
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
				return
			}
			db := db.GetDb()
			var room models.Room
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&room, params.ID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.ErrNotFound
					}
					return err
				}
				if err := tx.
					Model(&models.Room{}).
					Scopes(scopes.WithID(params.ID)).
					Updates(updates).
					Error; err != nil {
					return err
				}
				if err := tx.Preload("RoomType").First(&room, params.ID).Error; err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": room})
		}).
		DELETE("/rooms/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				var room models.Room
				if err := tx.First(&room, params.ID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.ErrNotFound
					}
					return err
				}
				var active int64
				err := tx.
					Model(&models.RoomOccupancy{}).
					Where("room_id = ?", room.ID).
					Scopes(scopes.WithActiveStatus).
					Count(&active).
					Error
				if err != nil {
					return err
				}
				if active > 0 {
					return &types.ConflictError{RoomID: room.ID, Reason: "room has active reservations"}
				}
				if err := tx.Delete(&models.Room{}, room.ID).Error; err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PUT("/rooms/types/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.UpdateRoomTypeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Rate != nil {
				updates["base_price"] = common.Round2(*body.Rate)
			}
			if body.Type != nil {
				updates["type"] = *body.Type
			}
			if body.Description != nil {
				updates["description"] = *body.Description
			}
			if body.ReservationFeePercentage != nil {
				updates["reservation_fee_percentage"] = *body.ReservationFeePercentage
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
				return
			}
			db := db.GetDb()
			var roomType models.RoomType
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.First(&roomType, params.ID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.ErrNotFound
					}
					return err
				}
				if err := tx.
					Model(&models.RoomType{}).
					Scopes(scopes.WithID(params.ID)).
					Updates(updates).
					Error; err != nil {
					return err
				}
				if err := tx.First(&roomType, params.ID).Error; err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			common.InvalidateRoomType(params.ID)
			ctx.JSON(http.StatusOK, gin.H{"data": roomType})
		}).
		GET("/rooms/stats", func(ctx *gin.Context) {
			// Occupancy is derived from the ledger, there is no stored
			// per-room flag to drift out of sync.
			today := time.Now().UTC().Truncate(24 * time.Hour)
			tomorrow := today.Add(24 * time.Hour)
			db := db.GetDb()
			var total int64
			if err := db.Model(&models.Room{}).Count(&total).Error; err != nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrUnavailable.Error()})
				return
			}
			var occupied int64
			err := db.
				Model(&models.RoomOccupancy{}).
				Distinct("room_id").
				Scopes(scopes.WithActiveStatus).
				Where("check_in < ? AND check_out > ?", tomorrow, today).
				Count(&occupied).
				Error
			if err != nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrUnavailable.Error()})
				return
			}
			var reserved int64
			if err := db.Model(&models.Booking{}).Where("status = ?", types.BOOKING_RESERVED).Count(&reserved).Error; err != nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrUnavailable.Error()})
				return
			}
			var checkedIn int64
			if err := db.Model(&models.Booking{}).Where("status = ?", types.BOOKING_CHECKED_IN).Count(&checkedIn).Error; err != nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": types.ErrUnavailable.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"totalRooms":    total,
				"occupiedToday": occupied,
				"freeToday":     total - occupied,
				"reserved":      reserved,
				"checkedIn":     checkedIn,
			}})
		})
	return g
}
