package controllers

import (
	"net/http"

	"saltbay-backend/models"
	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

type createRoomRequest struct {
	Number         string `json:"number" binding:"required"`
	RoomCategoryID uint   `json:"roomCategoryId" binding:"required"`
	Status         string `json:"status"`
	Floor          string `json:"floor"`
}

func (ctl *RoomController) Create(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	room := models.Room{
		Number:         req.Number,
		RoomCategoryID: req.RoomCategoryID,
		Status:         models.RoomStatus(req.Status),
		Floor:          req.Floor,
	}
	if err := ctl.Rooms.Create(&room); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctl *RoomController) GetAll(c *gin.Context) {
	rooms, err := ctl.Rooms.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctl *RoomController) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	room, err := ctl.Rooms.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type updateRoomRequest struct {
	Number         *string `json:"number"`
	RoomCategoryID *uint   `json:"roomCategoryId"`
	Status         *string `json:"status"`
	Floor          *string `json:"floor"`
}

func (ctl *RoomController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	in := services.UpdateRoomInput{
		Number:         req.Number,
		RoomCategoryID: req.RoomCategoryID,
		Floor:          req.Floor,
	}
	if req.Status != nil {
		status := models.RoomStatus(*req.Status)
		in.Status = &status
	}
	room, err := ctl.Rooms.Update(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Rooms.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
