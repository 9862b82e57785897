// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/plateful/plateful/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetDBConnection get a connection to the database specified by env
func GetDBConnection() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	return getDB(dsn)
}

func getDB(connectionString string) (db *gorm.DB, err error) {
	return gorm.Open(postgres.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Duplicate-key violations must surface as gorm.ErrDuplicatedKey so
		// the route layer can map them to a conflict.
		TranslateError: true,
	})
}

// DatabaseSetupAndMigration migrates every entity of the application. The
// composite-key relation tables (saved recipes, likes) get their uniqueness
// from the primary key, no separate join-table setup is needed.
func DatabaseSetupAndMigration(db *gorm.DB) {
	err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.SavedRecipe{},
		&model.Post{},
		&model.PostLike{},
		&model.PostComment{},
	)
	if err != nil {
		panic("failed to migrate database")
	}
}

// CreateTempDB creates an isolated in-memory database for a single test case,
// fully migrated. The database disappears with its connection, so cleanup is
// automatic; the connection pool is capped at one so every query sees the same
// in-memory instance.
func CreateTempDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalln("cannot open temp DB")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalln("cannot get the underlying SQL DB")
	}
	sqlDB.SetMaxOpenConns(1)

	DatabaseSetupAndMigration(db)

	t.Cleanup(func() {
		// Proactively close instead of deferring to GC, otherwise a large
		// test run might exceed the open file limit.
		sqlDB.Close()
	})

	return db
}
