package controllers

import (
	"net/http"

	dbpkg "dealdesk/db"
	"dealdesk/models"

	"github.com/gin-gonic/gin"
)

// GET /api/properties (validated)
func GetProperties(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	q := db.Order("id asc")
	if search := c.Query("search"); search != "" {
		q = q.Where("address_street LIKE ? OR address_city LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var properties []models.Property
	if err := q.Find(&properties).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"properties": properties})
}

// GET /api/properties/:id (validated)
func GetPropertyByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var property models.Property
	if err := db.First(&property, id).Error; err != nil {
		RespondError(c, "property not found", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"property": property})
}

// POST /api/properties (validated)
func CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.Bind(&property); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := property.MissingFields(); missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Create(&property).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"property": property})
}

// PUT /api/properties/:id (validated)
func UpdateProperty(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Property
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var property models.Property
	if err := db.First(&property, id).Error; err != nil {
		RespondError(c, "property not found", http.StatusNotFound)
		return
	}

	if body.AddressStreet != "" {
		property.AddressStreet = body.AddressStreet
	}
	property.AddressCity = body.AddressCity
	property.AddressState = body.AddressState
	property.AddressZip = body.AddressZip
	if body.ListPriceCents >= 0 {
		property.ListPriceCents = body.ListPriceCents
	}
	property.Bedrooms = body.Bedrooms
	property.Bathrooms = body.Bathrooms
	property.SquareFeet = body.SquareFeet

	if err := db.Save(&property).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"property": property})
}

// DELETE /api/properties/:id (admin)
func DeleteProperty(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Delete(&models.Property{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}
