package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AryanVohra-Kiwi/library-management-system/internals/service"
)

type SubAdminController struct {
	subAdmins *service.SubAdminService
}

func NewSubAdminController(subAdmins *service.SubAdminService) *SubAdminController {
	return &SubAdminController{subAdmins: subAdmins}
}

type SubAdminRequest struct {
	FirstName   string   `json:"first_name" binding:"required"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	Permissions []string `json:"permissions"`
}

func (sc *SubAdminController) Create(c *gin.Context) {
	var request SubAdminRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := sc.subAdmins.Create(service.SubAdminInput{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Password:  request.Password,
		Codenames: request.Permissions,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "sub-admin created successfully",
		"sub_admin": view,
	})
}

func (sc *SubAdminController) List(c *gin.Context) {
	views, err := sc.subAdmins.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sub_admins": views})
}

type SubAdminPermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

func (sc *SubAdminController) UpdatePermissions(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var request SubAdminPermissionsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := sc.subAdmins.UpdatePermissions(id, request.Permissions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "permissions updated",
		"sub_admin": view,
	})
}

func (sc *SubAdminController) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := sc.subAdmins.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sub-admin deleted"})
}
