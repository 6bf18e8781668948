package services

import (
	"crypto/sha256"
	"errors"
	"strings"
	"time"

	"saltbay-backend/models"
	"saltbay-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 1 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

type RegisterInput struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

type AuthResult struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

// Register creates a user account and issues the initial token pair.
func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, badRequest("email and password are required")
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

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:    email,
		Name:     in.Name,
		Password: string(hash),
		Role:     role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return s.issueTokens(&user)
}

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized("invalid credentials")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, unauthorized("invalid credentials")
	}
	return s.issueTokens(&user)
}

// Refresh validates a refresh token against its stored hash and rotates the
// pair.
func (s *AuthService) Refresh(userID uint, refreshToken string) (*AuthResult, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized("access denied")
		}
		return nil, err
	}
	if user.RefreshToken == "" {
		return nil, unauthorized("access denied")
	}
	// bcrypt rejects inputs over 72 bytes, so tokens are digested first.
	digest := sha256.Sum256([]byte(refreshToken))
	if bcrypt.CompareHashAndPassword([]byte(user.RefreshToken), digest[:]) != nil {
		return nil, unauthorized("access denied")
	}
	return s.issueTokens(&user)
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResult, error) {
	token, err := utils.SignAccessToken(user.ID, user.Email, user.Role.String(), utils.JWTSecret(), accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := utils.SignRefreshToken(user.ID, utils.RefreshSecret(), refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	// Store only the hash; a stolen database row cannot replay the token.
	digest := sha256.Sum256([]byte(refreshToken))
	hash, err := bcrypt.GenerateFromPassword(digest[:], bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(user).Update("refresh_token", string(hash)).Error; err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, RefreshToken: refreshToken, User: *user}, nil
}
