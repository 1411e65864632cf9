package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database named by the environment. DB_DRIVER picks
// postgres (default) or mysql; TranslateError is on so duplicate-key
// violations surface as gorm.ErrDuplicatedKey on every driver.
func Connect() {
	var err error

	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "postgres"
	}

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "postgres"
	}
	dbPass := os.Getenv("DB_PASS")
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "taxiconnect"
	}

	cfg := &gorm.Config{TranslateError: true}

	switch driver {
	case "mysql":
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "3306"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbUser, dbPass, dbHost, port, dbName)
		log.Printf("Connecting to MySQL at %s:%s", dbHost, port)
		DB, err = gorm.Open(mysql.Open(dsn), cfg)
	default:
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}

		var dsn string
		// Cloud SQL connects via Unix socket when the instance name is set.
		if instance := os.Getenv("INSTANCE_CONNECTION_NAME"); instance != "" {
			dsn = fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
				instance, dbUser, dbPass, dbName)
			log.Printf("Connecting to Cloud SQL via socket: %s", instance)
		} else {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				dbHost, dbUser, dbPass, dbName, port)
			log.Printf("Connecting to PostgreSQL at %s:%s", dbHost, port)
		}
		DB, err = gorm.Open(postgres.Open(dsn), cfg)
	}

	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		panic(err)
	}

	log.Println("✅ Database connected successfully!")
}
