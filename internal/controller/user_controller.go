package controller

import (
	"errors"
	"strings"

	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/service"
	"quiz_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
	}
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/users/me [get]
func (ctrl *UserController) Me(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	user, err := ctrl.UserService.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c, "User not found")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, user)
}

// GetUser godoc
// @Summary Get a user by ID
// @Description Users can read their own profile; instructors can read any
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [get]
func (ctrl *UserController) GetUser(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id := util.ParseID(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "Invalid user ID")
		return
	}

	if claims.UserID != id && claims.Role != model.Instructor {
		util.Forbidden(c, "You can only view your own profile")
		return
	}

	user, err := ctrl.UserService.GetByID(id)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c, "User not found")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, user)
}

// UpdateUser godoc
// @Summary Update a user's profile
// @Description Only the account owner may update; role is immutable
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body service.ProfileUpdate true "Profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [put]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	id := util.ParseID(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "Invalid user ID")
		return
	}

	if claims.UserID != id {
		util.Forbidden(c, "You can only update your own profile")
		return
	}

	var update service.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		util.BadRequest(c, "Invalid profile payload: "+err.Error())
		return
	}

	user, err := ctrl.UserService.UpdateProfile(id, &update)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(c, "User not found")
		case errors.Is(err, util.ErrEmailRegistered):
			util.Error(c, 409, "Email is already registered")
		default:
			util.LogInternalError(c, err)
		}
		return
	}
	util.Success(c, user)
}

// ListUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 403 {object} util.Response
// @Router /api/users [get]
func (ctrl *UserController) ListUsers(c *gin.Context) {
	users, err := ctrl.UserService.List()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, users)
}

// DeleteUser godoc
// @Summary Delete a user and everything they own
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id := util.ParseID(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "Invalid user ID")
		return
	}

	if err := ctrl.UserService.Delete(id); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c, "User not found")
			return
		}
		util.LogInternalError(c, err)
		return
	}
	util.NoContent(c)
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Image file"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response
// @Router /api/users/me/avatar [post]
func (ctrl *UserController) UploadAvatar(c *gin.Context) {
	claims := util.GetUserFromContext(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		util.BadRequest(c, "Missing avatar file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		util.BadRequest(c, "Avatar must be an image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer file.Close()

	url, err := ctrl.StorageService.SaveUpload(c.Request.Context(), fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	user, err := ctrl.UserService.SetAvatar(claims.UserID, url)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	util.Success(c, user)
}
