package services

import (
	"errors"
	"strings"

	"saltbay-backend/models"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysqldriver.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint failed")
}

func (s *RoomService) Create(room *models.Room) error {
	room.Number = strings.TrimSpace(room.Number)
	if room.Number == "" {
		return badRequest("room number is required")
	}
	if room.RoomCategoryID == 0 {
		return badRequest("roomCategoryId is required")
	}
	var category models.RoomCategory
	if err := s.DB.First(&category, room.RoomCategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badRequest("invalid roomCategoryId")
		}
		return err
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !room.Status.IsValid() {
		return badRequest("invalid room status %q", room.Status)
	}
	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return conflict("room number is already in use")
		}
		return err
	}
	return nil
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("RoomCategory").Order("number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomCategory").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("room not found")
		}
		return nil, err
	}
	return &room, nil
}

type UpdateRoomInput struct {
	Number         *string            `json:"number"`
	RoomCategoryID *uint              `json:"roomCategoryId"`
	Status         *models.RoomStatus `json:"status"`
	Floor          *string            `json:"floor"`
}

func (s *RoomService) Update(id uint, in UpdateRoomInput) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.Number != nil {
		number := strings.TrimSpace(*in.Number)
		if number == "" {
			return nil, badRequest("room number is required")
		}
		updates["number"] = number
	}
	if in.RoomCategoryID != nil {
		updates["room_category_id"] = *in.RoomCategoryID
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, badRequest("invalid room status %q", *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.Floor != nil {
		updates["floor"] = *in.Floor
	}
	if len(updates) == 0 {
		return room, nil
	}
	if err := s.DB.Model(room).Updates(updates).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, conflict("room number is already in use")
		}
		return nil, err
	}
	return room, nil
}

// Delete removes the room for good so its number can be reused. A soft
// delete would keep the row in the number unique index.
func (s *RoomService) Delete(id uint) error {
	room, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Unscoped().Delete(room).Error
}
