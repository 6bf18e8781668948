package services

import (
	"errors"
	"strings"

	"saltbay-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// FindAll lists users, optionally filtered by role. An empty match on a role
// filter is NotFound, matching the management UI's expectation.
func (s *UserService) FindAll(role models.Role) ([]models.User, error) {
	q := s.DB.Order("id")
	if role != "" {
		if !role.IsValid() {
			return nil, badRequest("invalid role %q", role)
		}
		q = q.Where("role = ?", role)
	}
	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	if role != "" && len(users) == 0 {
		return nil, notFound("no users found with role %s", role)
	}
	return users, nil
}

func (s *UserService) FindOne(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

type CreateUserInput struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

func (s *UserService) Create(in CreateUserInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, badRequest("email is required")
	}
	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !role.IsValid() {
		return nil, badRequest("invalid role %q", role)
	}

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, conflict("email is already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{Email: email, Name: in.Name, Role: role}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type UpdateUserInput struct {
	Name *string      `json:"name"`
	Role *models.Role `json:"role"`
}

func (s *UserService) Update(id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Role != nil {
		if !in.Role.IsValid() {
			return nil, badRequest("invalid role %q", *in.Role)
		}
		updates["role"] = *in.Role
	}
	if len(updates) == 0 {
		return user, nil
	}
	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account for good. A soft delete would keep the row in
// the email unique index and block re-registration of the address.
func (s *UserService) Delete(id uint) error {
	user, err := s.FindOne(id)
	if err != nil {
		return err
	}
	return s.DB.Unscoped().Delete(user).Error
}
