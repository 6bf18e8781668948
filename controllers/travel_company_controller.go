package controllers

import (
	"net/http"

	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
)

type TravelCompanyController struct {
	TravelCompany *services.TravelCompanyService
}

func NewTravelCompanyController(tc *services.TravelCompanyService) *TravelCompanyController {
	return &TravelCompanyController{TravelCompany: tc}
}

type groupReservationRequest struct {
	RoomType      string `json:"roomType" binding:"required"`
	CheckInDate   string `json:"checkInDate" binding:"required"`
	CheckOutDate  string `json:"checkOutDate" binding:"required"`
	Occupants     int    `json:"occupants"`
	NumberOfRooms int    `json:"numberOfRooms" binding:"required"`
}

// Submit files a group reservation (POST /api/travel-company/reservations).
func (ctl *TravelCompanyController) Submit(c *gin.Context) {
	var req groupReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkInDate format")
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOutDate format")
		return
	}

	actor := currentActor(c)
	reservation, err := ctl.TravelCompany.Submit(actor.UserID, services.GroupReservationInput{
		RoomType:      req.RoomType,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Occupants:     req.Occupants,
		NumberOfRooms: req.NumberOfRooms,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// Confirm approves a group reservation and assigns its rooms
// (POST /api/travel-company/reservations/:id/confirm).
func (ctl *TravelCompanyController) Confirm(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	confirmation, err := ctl.TravelCompany.Confirm(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, confirmation)
}

// Cancel releases a group reservation's rooms
// (POST /api/travel-company/reservations/:id/cancel).
func (ctl *TravelCompanyController) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cancellation, err := ctl.TravelCompany.Cancel(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cancellation)
}

// List shows every group booking (GET /api/travel-company/reservations).
func (ctl *TravelCompanyController) List(c *gin.Context) {
	reservations, err := ctl.TravelCompany.List()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}
