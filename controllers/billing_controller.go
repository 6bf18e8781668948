package controllers

import (
	"net/http"

	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
)

type BillingController struct {
	Billing *services.BillingService
}

func NewBillingController(billing *services.BillingService) *BillingController {
	return &BillingController{Billing: billing}
}

type createBillingRequest struct {
	ReservationID uint    `json:"reservationId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
}

func (ctl *BillingController) Create(c *gin.Context) {
	var req createBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	record, err := ctl.Billing.Create(req.ReservationID, req.Amount, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, record)
}

func (ctl *BillingController) GetAll(c *gin.Context) {
	records, err := ctl.Billing.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, records)
}

func (ctl *BillingController) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := ctl.Billing.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, record)
}

func (ctl *BillingController) GetByReservation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	record, err := ctl.Billing.GetByReservationID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, record)
}
