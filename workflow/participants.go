package workflow

import (
	"dealdesk/models"

	"github.com/jinzhu/gorm"
)

// TransactionCustomers returns every customer attached to a transaction,
// buyer and seller side together, deduplicated by customer id.
func TransactionCustomers(db *gorm.DB, transactionID int64) ([]models.Customer, error) {
	var customers []models.Customer
	err := db.Table("customers").
		Select("DISTINCT customers.*").
		Joins("JOIN transaction_customers ON transaction_customers.customer_id = customers.id").
		Where("transaction_customers.transaction_id = ?", transactionID).
		Scan(&customers).Error
	return customers, err
}

// CustomersBySide returns a transaction's customers on one side of the deal.
func CustomersBySide(db *gorm.DB, transactionID int64, side string) ([]models.Customer, error) {
	var customers []models.Customer
	err := db.Table("customers").
		Select("customers.*").
		Joins("JOIN transaction_customers ON transaction_customers.customer_id = customers.id").
		Where("transaction_customers.transaction_id = ? AND transaction_customers.side = ?", transactionID, side).
		Order("customers.id asc").
		Scan(&customers).Error
	return customers, err
}
