// database_utils should be the canonical place to put shared DB utils.
// It should not include:
// 1. Any util that doesn't manipulate DB
// 2. Any util that contains business logic
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Luismorlan/newsdash/model"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSqlitePath = "newsdash.db"

	TestDBPrefix         = "testonlydb_"
	TestDBNameCharLength = 8
)

// GetDBConnection get a connection to the database specified by env.
// DB_DRIVER selects sqlite (default, file at DB_PATH) or postgres (DB_HOST,
// DB_PORT, DB_USER, DB_PASS, DB_NAME).
func GetDBConnection() (*gorm.DB, error) {
	switch driver := os.Getenv("DB_DRIVER"); driver {
	case "", DriverSqlite:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = defaultSqlitePath
		}
		return GetSqliteConnection(path)
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
		return getDB(postgres.Open(dsn))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// GetSqliteConnection opens the sqlite file at path with foreign keys
// enforced.
func GetSqliteConnection(path string) (*gorm.DB, error) {
	return getDB(sqlite.Open(path + "?_foreign_keys=1"))
}

// Create a temp DB for testing, note that this function should only be called
// in a testing environment with test state manager testing.T
// The database file lives in t.TempDir() and is removed with it, the
// connection is closed on cleanup.
func CreateTempDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	dbName := TestDBPrefix + RandomAlphabetString(TestDBNameCharLength)
	db, err := GetSqliteConnection(filepath.Join(t.TempDir(), dbName+".db"))
	if err != nil {
		t.Fatalf("fail to create temp DB with name %s: %v", dbName, err)
	}
	if err := DatabaseSetupAndMigration(db); err != nil {
		t.Fatalf("fail to migrate temp DB %s: %v", dbName, err)
	}
	t.Cleanup(func() {
		// Proactively close the connection so the file can be removed.
		conn, _ := db.DB()
		conn.Close()
	})

	return db, dbName
}

func getDB(dialector gorm.Dialector) (db *gorm.DB, err error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

// DatabaseSetupAndMigration creates or updates every table. It is idempotent.
func DatabaseSetupAndMigration(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.UserPreferences{},
		&model.ReadingHistory{},
		&model.ArticleFeedback{},
		&model.ArticleCache{},
	)
	return errors.Wrap(err, "fail to migrate database")
}
