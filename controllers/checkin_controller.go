package controllers

import (
	"net/http"

	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
)

type CheckInController struct {
	CheckIn *services.CheckInService
}

func NewCheckInController(checkin *services.CheckInService) *CheckInController {
	return &CheckInController{CheckIn: checkin}
}

type checkInRequest struct {
	RoomID           uint   `json:"roomId"`
	RoomCategoryID   uint   `json:"roomCategoryId"`
	RoomType         string `json:"roomType"`
	CheckOutDate     string `json:"checkOutDate"`
	Occupants        int    `json:"occupants"`
	CreditCard       string `json:"creditCard"`
	CreditCardExpiry string `json:"creditCardExpiry"`
	CreditCardCVV    string `json:"creditCardCVV"`
}

func (r checkInRequest) toInput(c *gin.Context) (services.CheckInInput, bool) {
	checkOut, err := parseOptionalDate(r.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkOutDate format")
		return services.CheckInInput{}, false
	}
	return services.CheckInInput{
		RoomID:           r.RoomID,
		RoomCategoryID:   r.RoomCategoryID,
		RoomType:         r.RoomType,
		CheckOutDate:     checkOut,
		Occupants:        r.Occupants,
		CreditCard:       r.CreditCard,
		CreditCardExpiry: r.CreditCardExpiry,
		CreditCardCVV:    r.CreditCardCVV,
	}, true
}

// Self handles a customer checking themselves in (POST /api/checkin/self).
func (ctl *CheckInController) Self(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	actor := currentActor(c)
	reservation, err := ctl.CheckIn.SelfCheckIn(actor.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type emailCheckInRequest struct {
	Email string `json:"email" binding:"required"`
	checkInRequest
}

// ByEmail is the clerk-side entry point (POST /api/checkin/by-email). With an
// email only it is a status probe; with more fields it checks in or allocates.
func (ctl *CheckInController) ByEmail(c *gin.Context) {
	var req emailCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	result, err := ctl.CheckIn.CheckInByEmail(services.EmailCheckInInput{
		Email:        req.Email,
		CheckInInput: in,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

type pendingCheckInRequest struct {
	Email string `json:"email" binding:"required"`
}

// Pending checks in the customer's first pending reservation
// (POST /api/checkin/pending).
func (ctl *CheckInController) Pending(c *gin.Context) {
	var req pendingCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	result, err := ctl.CheckIn.CheckInPendingByEmail(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

type manualCheckInRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"name"`
	checkInRequest
}

// Manual is the walk-in flow (POST /api/checkin/manual). The customer account
// is created on the fly when it does not exist yet.
func (ctl *CheckInController) Manual(c *gin.Context) {
	var req manualCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	reservation, err := ctl.CheckIn.ManualCheckIn(services.ManualCheckInInput{
		Email:        req.Email,
		Name:         req.Name,
		CheckInInput: in,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// ByID checks in a specific pending reservation (POST /api/checkin/:id).
func (ctl *CheckInController) ByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := ctl.CheckIn.CheckInByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}
