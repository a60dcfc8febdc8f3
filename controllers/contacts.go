package controllers

import (
	"net/http"

	dbpkg "dealdesk/db"
	"dealdesk/models"

	"github.com/gin-gonic/gin"
)

// Attorneys and lenders are plain contact books; both get the same thin CRUD.

// GET /api/attorneys (validated)
func GetAttorneys(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var attorneys []models.Attorney
	if err := db.Order("name asc").Find(&attorneys).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"attorneys": attorneys})
}

// POST /api/attorneys (validated)
func CreateAttorney(c *gin.Context) {
	var attorney models.Attorney
	if err := c.Bind(&attorney); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := attorney.MissingFields(); missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Create(&attorney).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"attorney": attorney})
}

// PUT /api/attorneys/:id (validated)
func UpdateAttorney(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Attorney
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var attorney models.Attorney
	if err := db.First(&attorney, id).Error; err != nil {
		RespondError(c, "attorney not found", http.StatusNotFound)
		return
	}

	if body.Name != "" {
		attorney.Name = body.Name
	}
	attorney.Firm = body.Firm
	attorney.Email = body.Email
	attorney.Phone = body.Phone

	if err := db.Save(&attorney).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"attorney": attorney})
}

// DELETE /api/attorneys/:id (admin)
func DeleteAttorney(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Delete(&models.Attorney{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}

// GET /api/lenders (validated)
func GetLenders(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var lenders []models.Lender
	if err := db.Order("name asc").Find(&lenders).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"lenders": lenders})
}

// POST /api/lenders (validated)
func CreateLender(c *gin.Context) {
	var lender models.Lender
	if err := c.Bind(&lender); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := lender.MissingFields(); missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Create(&lender).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"lender": lender})
}

// PUT /api/lenders/:id (validated)
func UpdateLender(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Lender
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var lender models.Lender
	if err := db.First(&lender, id).Error; err != nil {
		RespondError(c, "lender not found", http.StatusNotFound)
		return
	}

	if body.Name != "" {
		lender.Name = body.Name
	}
	lender.Company = body.Company
	lender.Email = body.Email
	lender.Phone = body.Phone

	if err := db.Save(&lender).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"lender": lender})
}

// DELETE /api/lenders/:id (admin)
func DeleteLender(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Delete(&models.Lender{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}
