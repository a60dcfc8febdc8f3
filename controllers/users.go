package controllers

import (
	"net/http"

	dbpkg "dealdesk/db"
	"dealdesk/models"
	"dealdesk/tools"

	"github.com/gin-gonic/gin"
)

// POST /api/users (public)
func CreateUser(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	user := models.User{}
	if err := c.Bind(&user); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if missing := user.MissingFields(); missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(user.Email) {
		RespondError(c, "invalid e-mail", http.StatusBadRequest)
		return
	}

	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		RespondError(c, "user already exists", http.StatusConflict)
		return
	}

	user.Password = hashUserPassword(user.Email, user.Password)
	user.Admin = false
	user.Status = models.USER_STATUS_AVAILABLE

	if err := db.Create(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondCreated(c, gin.H{"user": user})
}

// GET /api/users (validated) - agent/assignee pickers
func GetUsers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var users []models.User
	if err := db.Order("name asc").Find(&users).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	RespondSuccess(c, gin.H{"users": users})
}

type UserUpdateRequest struct {
	Name          string `json:"name" form:"name"`
	Phone         string `json:"phone" form:"phone"`
	LicenseNumber string `json:"license_number" form:"license_number"`
	Brokerage     string `json:"brokerage" form:"brokerage"`
	// Pointers: 0 is a valid value for both (normal type, available status),
	// so "omitted" has to be distinguishable from "set to zero".
	Type   *int `json:"type" form:"type"`
	Status *int `json:"status" form:"status"`
}

// PUT /api/users/:id (admin)
func UpdateUser(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body UserUpdateRequest
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		RespondError(c, "user not found", http.StatusNotFound)
		return
	}

	if body.Name != "" {
		user.Name = body.Name
	}
	if body.Phone != "" {
		user.Phone = body.Phone
	}
	if body.LicenseNumber != "" {
		user.LicenseNumber = body.LicenseNumber
	}
	if body.Brokerage != "" {
		user.Brokerage = body.Brokerage
	}
	if body.Type != nil {
		user.Type = *body.Type
	}
	if body.Status != nil {
		user.Status = *body.Status
	}

	if err := db.Save(&user).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	user.Password = ""
	RespondSuccess(c, gin.H{"user": user})
}
