package controllers

import (
	"net/http"

	"saltbay-backend/models"
	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"

	"gorm.io/datatypes"
)

type RoomCategoryController struct {
	Categories *services.RoomCategoryService
}

func NewRoomCategoryController(categories *services.RoomCategoryService) *RoomCategoryController {
	return &RoomCategoryController{Categories: categories}
}

type createRoomCategoryRequest struct {
	Name        string         `json:"name" binding:"required"`
	Price       float64        `json:"price" binding:"required"`
	Capacity    int            `json:"capacity"`
	BedType     string         `json:"bedType"`
	Description string         `json:"description"`
	Amenities   datatypes.JSON `json:"amenities"`
}

func (ctl *RoomCategoryController) Create(c *gin.Context) {
	var req createRoomCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	category := models.RoomCategory{
		Name:        req.Name,
		Price:       req.Price,
		Capacity:    req.Capacity,
		BedType:     req.BedType,
		Description: req.Description,
		Amenities:   req.Amenities,
	}
	if err := ctl.Categories.Create(&category); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, category)
}

func (ctl *RoomCategoryController) GetAll(c *gin.Context) {
	categories, err := ctl.Categories.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, categories)
}

func (ctl *RoomCategoryController) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	category, err := ctl.Categories.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, category)
}

func (ctl *RoomCategoryController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in services.UpdateRoomCategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	category, err := ctl.Categories.Update(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, category)
}

func (ctl *RoomCategoryController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Categories.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
