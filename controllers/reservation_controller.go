package controllers

import (
	"net/http"

	"saltbay-backend/models"
	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

type createReservationRequest struct {
	RoomCategoryID   uint   `json:"roomCategoryId"`
	RoomType         string `json:"roomType"`
	CheckInDate      string `json:"checkInDate" binding:"required"`
	CheckOutDate     string `json:"checkOutDate" binding:"required"`
	Occupants        int    `json:"occupants"`
	CreditCard       string `json:"creditCard"`
	CreditCardExpiry string `json:"creditCardExpiry"`
	CreditCardCVV    string `json:"creditCardCVV"`
}

// Create books a room in the caller's name (POST /api/reservations).
func (ctl *ReservationController) Create(c *gin.Context) {
	var req createReservationRequest
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
	reservation, err := ctl.Reservations.Create(actor.UserID, services.CreateReservationInput{
		RoomCategoryID:   req.RoomCategoryID,
		RoomType:         req.RoomType,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Occupants:        req.Occupants,
		CreditCard:       req.CreditCard,
		CreditCardExpiry: req.CreditCardExpiry,
		CreditCardCVV:    req.CreditCardCVV,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// FindMine lists the caller's own reservations (GET /api/reservations/my).
func (ctl *ReservationController) FindMine(c *gin.Context) {
	actor := currentActor(c)
	reservations, err := ctl.Reservations.FindMine(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservations)
}

// FindAll is the staff-side filtered listing (GET /api/reservations).
func (ctl *ReservationController) FindAll(c *gin.Context) {
	filter := services.ReservationFilter{
		Status: models.ReservationStatus(c.Query("status")),
	}
	if id := parseQueryUint(c, "roomCategoryId"); id != 0 {
		filter.RoomCategoryID = id
	}
	if id := parseQueryUint(c, "customerId"); id != 0 {
		filter.CustomerID = id
	}
	items, err := ctl.Reservations.FindAll(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

type updateReservationRequest struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Occupants    *int   `json:"occupants"`
	Status       string `json:"status"`
}

// Update patches a reservation (PATCH /api/reservations/:id).
func (ctl *ReservationController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	in := services.UpdateReservationInput{Occupants: req.Occupants}
	if req.CheckInDate != "" {
		t, err := parseDate(req.CheckInDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkInDate format")
			return
		}
		in.CheckInDate = &t
	}
	if req.CheckOutDate != "" {
		t, err := parseDate(req.CheckOutDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid checkOutDate format")
			return
		}
		in.CheckOutDate = &t
	}
	if req.Status != "" {
		status := models.ReservationStatus(req.Status)
		in.Status = &status
	}

	reservation, err := ctl.Reservations.Update(id, currentActor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// Remove hard-deletes a CHECKED_OUT reservation (DELETE /api/reservations/:id).
func (ctl *ReservationController) Remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Reservations.Remove(id, currentActor(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// Checkout transitions to CHECKED_OUT (POST /api/reservations/:id/checkout).
func (ctl *ReservationController) Checkout(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := ctl.Reservations.Checkout(id, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type updateCheckoutDateRequest struct {
	CheckOutDate string `json:"checkOutDate" binding:"required"`
}

// UpdateCheckoutDate changes the check-out date only
// (PATCH /api/reservations/:id/checkout-date).
func (ctl *ReservationController) UpdateCheckoutDate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateCheckoutDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOutDate")
		return
	}
	reservation, err := ctl.Reservations.UpdateCheckoutDate(id, currentActor(c), checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}
