package workflow

import (
	"fmt"

	"dealdesk/models"
	"dealdesk/tools"

	"github.com/jinzhu/gorm"
)

// MergeVariables builds the token map for one transaction. All values are
// pre-formatted strings (dates MM/DD/YYYY, money as dollars); absent optional
// fields map to "" so a draft never shows a literal null.
func MergeVariables(transaction models.Transaction, property models.Property, buyers []models.Customer, sellers []models.Customer, agent models.User) map[string]string {
	vars := map[string]string{
		"{{transaction.id}}":           fmt.Sprintf("%d", transaction.ID),
		"{{transaction.status}}":       transaction.Status,
		"{{transaction.price}}":        tools.FormatCents(transaction.PriceCents),
		"{{transaction.start_date}}":   tools.FormatDate(transaction.StartDate),
		"{{transaction.closing_date}}": tools.FormatDate(transaction.ClosingDate),
		"{{property.address}}":         property.FullAddress(),
		"{{property.street}}":          property.AddressStreet,
		"{{property.city}}":            property.AddressCity,
		"{{property.state}}":           property.AddressState,
		"{{property.zip}}":             property.AddressZip,
		"{{property.list_price}}":      tools.FormatCents(property.ListPriceCents),
		"{{agent.name}}":               agent.Name,
		"{{agent.email}}":              agent.Email,
		"{{agent.phone}}":              agent.Phone,
		"{{agent.license}}":            agent.LicenseNumber,
		"{{agent.brokerage}}":          agent.Brokerage,
		"{{buyer.name}}":               "",
		"{{buyer.email}}":              "",
		"{{seller.name}}":              "",
		"{{seller.email}}":             "",
	}

	if len(buyers) > 0 {
		vars["{{buyer.name}}"] = buyers[0].Name
		vars["{{buyer.email}}"] = buyers[0].Email
	}
	if len(sellers) > 0 {
		vars["{{seller.name}}"] = sellers[0].Name
		vars["{{seller.email}}"] = sellers[0].Email
	}

	return vars
}

// LoadMergeVariables fetches a transaction's context (property, both
// customer sides) and builds the merge map against the acting agent.
func LoadMergeVariables(db *gorm.DB, transactionID int64, agent models.User) (map[string]string, error) {
	var transaction models.Transaction
	if err := db.First(&transaction, transactionID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	var property models.Property
	if err := db.First(&property, transaction.PropertyID).Error; err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	buyers, err := CustomersBySide(db, transaction.ID, models.CUSTOMER_SIDE_BUYER)
	if err != nil {
		return nil, err
	}
	sellers, err := CustomersBySide(db, transaction.ID, models.CUSTOMER_SIDE_SELLER)
	if err != nil {
		return nil, err
	}

	return MergeVariables(transaction, property, buyers, sellers, agent), nil
}
