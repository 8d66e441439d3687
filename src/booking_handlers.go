package main

import (
	"errors"
	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// writeDomainError maps the error taxonomy onto HTTP statuses. Validation
// problems are 400, business conflicts 409, unresolved ids 404 and storage
// faults 503. Unknown errors stay opaque.
func writeDomainError(ctx *gin.Context, err error) {
	var validation *types.ValidationError
	var feeTooLow *types.FeeTooLowError
	var insufficient *types.InsufficientAvailabilityError
	var conflict *types.ConflictError
	var transition *types.InvalidTransitionError
	switch {
	case errors.As(err, &validation), errors.As(err, &feeTooLow):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error(), "shortfall": insufficient.Shortfall()})
	case errors.As(err, &conflict), errors.As(err, &transition):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("Could not complete request: %s\n", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
	}
}

func publicBookingRoutes(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			bookings, err := utils.CreateBooking(&body)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": bookings, "count": len(bookings)})
		})
	return g
}

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			var query struct {
				Status string `form:"status"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var bookings []models.Booking
			err := db.Transaction(func(tx *gorm.DB) error {
				q := tx.
					Model(&models.Booking{}).
					Preload("Room").
					Preload("Room.RoomType").
					Order("check_in ASC")
				if query.Status != "" {
					q = q.Where("status = ?", query.Status)
				}
				if err := q.Find(&bookings).Error; err != nil {
					return err
				}
				return nil
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			booking, err := utils.GetBooking(params.ID)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/extend", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var body types.ExtendBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := utils.ExtendBooking(params.ID, &body)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/checkin", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			booking, err := utils.CheckInBooking(params.ID)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		PUT("/bookings/:id/checkout", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			booking, err := utils.CheckOutBooking(params.ID)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			if _, err := utils.ArchiveBooking(params.ID); err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
