package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luismorlan/newsdash/model"
)

func TestCreateTempDB(t *testing.T) {
	db, dbName := CreateTempDB(t)
	assert.Contains(t, dbName, TestDBPrefix)

	for _, table := range []interface{}{
		&model.User{}, &model.UserPreferences{}, &model.ReadingHistory{}, &model.ArticleFeedback{}, &model.ArticleCache{},
	} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestDatabaseSetupAndMigrationIsIdempotent(t *testing.T) {
	db, _ := CreateTempDB(t)
	require.NoError(t, DatabaseSetupAndMigration(db))
	require.NoError(t, DatabaseSetupAndMigration(db))
}

func TestForeignKeysEnforced(t *testing.T) {
	db, _ := CreateTempDB(t)
	err := db.Create(&model.ReadingHistory{UserID: 42, ArticleUrl: "https://example.com"}).Error
	require.Error(t, err)
}
