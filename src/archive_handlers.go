package main

import (
	"errors"
	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func archiveHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/archives", func(ctx *gin.Context) {
			var query struct {
				Email string `form:"email"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			q := db.
				Model(&models.ArchivedBooking{}).
				Order("deleted_at DESC")
			if query.Email != "" {
				q = q.Where("guest_email = ?", query.Email)
			}
			var archives []models.ArchivedBooking
			if err := q.Find(&archives).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": archives, "count": len(archives)})
		}).
		GET("/archives/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			db := db.GetDb()
			var archive models.ArchivedBooking
			err := db.
				Where("booking_id = ?", params.ID).
				First(&archive).
				Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					writeDomainError(ctx, types.ErrNotFound)
					return
				}
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": archive})
		})
	return g
}
