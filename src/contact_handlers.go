package main

import (
	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func publicContactRoutes(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/contact-messages", func(ctx *gin.Context) {
			var body types.CreateContactMessageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			msg := models.ContactMessage{
				Name:    body.Name,
				Email:   body.Email,
				Subject: body.Subject,
				Message: body.Message,
			}
			db := db.GetDb()
			if err := db.Create(&msg).Error; err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": msg})
		})
	return g
}

func contactHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/contact-messages", func(ctx *gin.Context) {
			db := db.GetDb()
			var messages []models.ContactMessage
			err := db.
				Model(&models.ContactMessage{}).
				Order("created_at DESC").
				Find(&messages).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": messages, "count": len(messages)})
		})
	return g
}
