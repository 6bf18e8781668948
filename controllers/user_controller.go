package controllers

import (
	"net/http"

	"saltbay-backend/models"
	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (ctl *UserController) FindAll(c *gin.Context) {
	users, err := ctl.Users.FindAll(models.Role(c.Query("role")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (ctl *UserController) FindOne(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := ctl.Users.FindOne(id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// Me returns the caller's own account (GET /api/users/me).
func (ctl *UserController) Me(c *gin.Context) {
	actor := currentActor(c)
	user, err := ctl.Users.FindOne(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (ctl *UserController) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	user, err := ctl.Users.Create(services.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

type updateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

func (ctl *UserController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	in := services.UpdateUserInput{Name: req.Name}
	if req.Role != nil {
		role := models.Role(*req.Role)
		in.Role = &role
	}
	user, err := ctl.Users.Update(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (ctl *UserController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Users.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
