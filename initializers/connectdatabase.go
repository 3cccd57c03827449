package initializers

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "host=localhost user=library password= dbname=library port=5432 sslmode=disable"
	}

	var err error
	// TranslateError turns unique violations into gorm.ErrDuplicatedKey,
	// which the copy-number allocation retry depends on.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Println("failed to connect to database", err)
		panic("failed to connect to database")
	}
}
