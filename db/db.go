package db

import (
	"log"
	"os"
	"path/filepath"

	"dealdesk/config"
	"dealdesk/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

// Connect opens the database (sqlite3 by default) and, when AUTOMIGRATE=1,
// migrates the full model set. Keep automigrate off in production.
func Connect() (*gorm.DB, error) {
	database := conf.Database
	if database == "" {
		database = "sqlite3"
	}

	var (
		db  *gorm.DB
		err error
	)

	if database == "postgres" || database == "postgresql" {
		log.Println("Connecting to postgresql...")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass
		db, err = gorm.Open("postgres", path)
	} else {
		log.Println("Connecting to sqlite3...")
		dir := filepath.Dir("db/database.db")
		db, err = gorm.Open("sqlite3", dir+"/database.db")
	}

	if err != nil {
		log.Println("Got error when connect database, the error is: " + err.Error())
		return nil, err
	}

	db.LogMode(true)

	if getenv("AUTOMIGRATE", "0") == "1" {
		db.AutoMigrate(
			&models.User{},
			&models.Customer{},
			&models.Property{},
			&models.Attorney{},
			&models.Lender{},
			&models.Inspector{},
			&models.InspectionType{},
			&models.Transaction{},
			&models.TransactionCustomer{},
			&models.FollowUpEvent{},
			&models.TaskTemplate{},
			&models.TemplateTask{},
			&models.InspectionRequest{},
			&models.InspectionRequestHistory{},
		)
	}

	return db, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
