package main

import (
	"hbs/src/common"
	"hbs/src/types"
	"hbs/src/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func publicAvailabilityRoutes(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/room-availability", func(ctx *gin.Context) {
			var query struct {
				CheckIn    string `form:"checkIn" binding:"required"`
				CheckOut   string `form:"checkOut" binding:"required"`
				RoomTypeID uint   `form:"roomTypeId"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkIn, err := utils.ParseStayDate("checkIn", query.CheckIn)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			checkOut, err := utils.ParseStayDate("checkOut", query.CheckOut)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			if !checkOut.After(checkIn) {
				writeDomainError(ctx, &types.ValidationError{Field: "checkOut", Reason: "must be after checkIn"})
				return
			}
			rooms, err := common.FindAvailableRooms(checkIn, checkOut, query.RoomTypeID)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": rooms, "count": len(rooms)})
		}).
		GET("/room-availability/calendar", func(ctx *gin.Context) {
			var query struct {
				Start      string `form:"start" binding:"required"`
				End        string `form:"end" binding:"required"`
				RoomTypeID uint   `form:"roomTypeId"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			start, err := utils.ParseStayDate("start", query.Start)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			end, err := utils.ParseStayDate("end", query.End)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			if !end.After(start) {
				writeDomainError(ctx, &types.ValidationError{Field: "end", Reason: "must be after start"})
				return
			}
			calendar, err := common.GetAvailabilityCalendar(start, end, query.RoomTypeID)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": calendar, "count": len(calendar)})
		}).
		GET("/room-availability/check/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			var query struct {
				CheckIn  string `form:"checkIn" binding:"required"`
				CheckOut string `form:"checkOut" binding:"required"`
			}
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			checkIn, err := utils.ParseStayDate("checkIn", query.CheckIn)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			checkOut, err := utils.ParseStayDate("checkOut", query.CheckOut)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			if !checkOut.After(checkIn) {
				writeDomainError(ctx, &types.ValidationError{Field: "checkOut", Reason: "must be after checkIn"})
				return
			}
			free, err := common.CheckRoomAvailability(params.ID, checkIn, checkOut, 0)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"available": free})
		})
	return g
}

func availabilityHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/rooms/:id/occupancy", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			entries, err := common.GetRoomOccupancy(params.ID, nil, nil)
			if err != nil {
				writeDomainError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": entries, "count": len(entries)})
		})
	return g
}
