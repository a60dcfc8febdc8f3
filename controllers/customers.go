package controllers

import (
	"net/http"

	dbpkg "dealdesk/db"
	"dealdesk/models"
	"dealdesk/tools"

	"github.com/gin-gonic/gin"
)

// GET /api/customers (validated)
func GetCustomers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	q := db.Order("name asc")
	if search := c.Query("search"); search != "" {
		q = q.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"customers": customers})
}

// GET /api/customers/:id (validated)
func GetCustomerByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		RespondError(c, "customer not found", http.StatusNotFound)
		return
	}
	RespondSuccess(c, gin.H{"customer": customer})
}

// POST /api/customers (validated)
// Every customer gets a portal access code on creation.
func CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := customer.MissingFields(); missing != "" {
		RespondError(c, "missing field "+missing, http.StatusBadRequest)
		return
	}
	if customer.Email != "" && !tools.ValidateEmail(customer.Email) {
		RespondError(c, "invalid e-mail", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if customer.AccessCode == "" {
		customer.AccessCode = tools.RandomAccessCode(accessCodeLength)
	}

	if err := db.Create(&customer).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondCreated(c, gin.H{"customer": customer})
}

// PUT /api/customers/:id (validated)
func UpdateCustomer(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Customer
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		RespondError(c, "customer not found", http.StatusNotFound)
		return
	}

	if body.Name != "" {
		customer.Name = body.Name
	}
	customer.Email = body.Email
	customer.Phone = body.Phone
	customer.Notes = body.Notes

	if err := db.Save(&customer).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"customer": customer})
}

// DELETE /api/customers/:id (admin)
func DeleteCustomer(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	if err := db.Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, true)
}
