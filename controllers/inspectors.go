package controllers

import (
	"net/http"

	dbpkg "dealdesk/db"
	"dealdesk/models"
	"dealdesk/tools"

	"github.com/gin-gonic/gin"
)

// GET /api/inspectors (validated)
func GetInspectors(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	q := db.Order("name asc")
	if search := c.Query("search"); search != "" {
		q = q.Where("name LIKE ? OR company LIKE ? OR specialties LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	var inspectors []models.Inspector
	if err := q.Find(&inspectors).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"inspectors": inspectors})
}

// GET /api/inspectors/:id (validated)
func GetInspectorByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var inspector models.Inspector
	if err := db.First(&inspector, id).Error; err != nil {
		RespondError(c, "inspector not found", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"inspector": inspector})
}

// POST /api/inspectors (validated)
func CreateInspector(c *gin.Context) {
	var inspector models.Inspector
	if err := c.Bind(&inspector); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := inspector.MissingFields(); missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}
	if !tools.ValidateEmail(inspector.Email) {
		RespondError(c, "invalid e-mail", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Create(&inspector).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"inspector": inspector})
}

// PUT /api/inspectors/:id (validated)
func UpdateInspector(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Inspector
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var inspector models.Inspector
	if err := db.First(&inspector, id).Error; err != nil {
		RespondError(c, "inspector not found", http.StatusNotFound)
		return
	}

	if body.Name != "" {
		inspector.Name = body.Name
	}
	if body.Email != "" {
		if !tools.ValidateEmail(body.Email) {
			RespondError(c, "invalid e-mail", http.StatusBadRequest)
			return
		}
		inspector.Email = body.Email
	}
	inspector.Company = body.Company
	inspector.Phone = body.Phone
	inspector.Specialties = body.Specialties

	if err := db.Save(&inspector).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"inspector": inspector})
}

// DELETE /api/inspectors/:id (admin)
func DeleteInspector(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Delete(&models.Inspector{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}

// GET /api/inspection-types (validated)
func GetInspectionTypes(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var types []models.InspectionType
	if err := db.Order("name asc").Find(&types).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"inspection_types": types})
}

// POST /api/inspection-types (admin)
func CreateInspectionType(c *gin.Context) {
	var inspectionType models.InspectionType
	if err := c.Bind(&inspectionType); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if inspectionType.Name == "" {
		RespondError(c, "name is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Create(&inspectionType).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"inspection_type": inspectionType})
}

// DELETE /api/inspection-types/:id (admin)
func DeleteInspectionType(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Delete(&models.InspectionType{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}
