package services

import (
	"errors"
	"strings"

	"saltbay-backend/models"

	"gorm.io/gorm"
)

type RoomCategoryService struct {
	DB *gorm.DB
}

func NewRoomCategoryService(db *gorm.DB) *RoomCategoryService {
	return &RoomCategoryService{DB: db}
}

func (s *RoomCategoryService) Create(category *models.RoomCategory) error {
	category.Name = strings.ToUpper(strings.TrimSpace(category.Name))
	if category.Name == "" {
		return badRequest("category name is required")
	}
	if category.Price < 0 {
		return badRequest("price must not be negative")
	}
	if err := s.DB.Create(category).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return conflict("category name is already in use")
		}
		return err
	}
	return nil
}

func (s *RoomCategoryService) GetAll() ([]models.RoomCategory, error) {
	var categories []models.RoomCategory
	err := s.DB.Preload("Rooms").Order("id").Find(&categories).Error
	return categories, err
}

func (s *RoomCategoryService) GetByID(id uint) (*models.RoomCategory, error) {
	var category models.RoomCategory
	if err := s.DB.Preload("Rooms").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room category not found")
		}
		return nil, err
	}
	return &category, nil
}

type UpdateRoomCategoryInput struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Capacity    *int     `json:"capacity"`
	BedType     *string  `json:"bedType"`
	Description *string  `json:"description"`
}

func (s *RoomCategoryService) Update(id uint, in UpdateRoomCategoryInput) (*models.RoomCategory, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.ToUpper(strings.TrimSpace(*in.Name))
		if name == "" {
			return nil, badRequest("category name is required")
		}
		updates["name"] = name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, badRequest("price must not be negative")
		}
		updates["price"] = *in.Price
	}
	if in.Capacity != nil {
		updates["capacity"] = *in.Capacity
	}
	if in.BedType != nil {
		updates["bed_type"] = *in.BedType
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) == 0 {
		return category, nil
	}
	if err := s.DB.Model(category).Updates(updates).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, conflict("category name is already in use")
		}
		return nil, err
	}
	return category, nil
}

// Delete removes the category for good so its name can be reused. A soft
// delete would keep the row in the name unique index.
func (s *RoomCategoryService) Delete(id uint) error {
	category, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Unscoped().Delete(category).Error
}
