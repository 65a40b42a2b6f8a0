package controller

import (
	"errors"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type RegisterRequest struct {
	Email     string         `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required,min=6"`
	FirstName string         `json:"firstName" binding:"required"`
	LastName  string         `json:"lastName" binding:"required"`
	Role      model.UserRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user and returns it together with a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} util.Response{data=AuthResponse}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/users/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Invalid registration payload: "+err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = model.Student
	}
	if role != model.Student && role != model.Instructor {
		util.BadRequest(c, "Role must be STUDENT or INSTRUCTOR")
		return
	}

	user := &model.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}

	token, err := ctrl.AuthService.Register(user)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(c, 409, "Email is already registered")
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, AuthResponse{User: user, Token: token})
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns the user with a signed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} util.Response{data=AuthResponse}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/users/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Invalid login payload: "+err.Error())
		return
	}

	user, token, err := ctrl.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(c, 401, "Invalid email or password")
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, AuthResponse{User: user, Token: token})
}
