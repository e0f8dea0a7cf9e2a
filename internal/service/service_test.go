package service

import (
	"path/filepath"
	"testing"

	"hoaxify/social-api/internal/model"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(model.User{}, model.Token{}, model.Hoax{}, model.FileAttachment{})
	require.NoError(t, err)

	return db
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()

	viper.Set("upload.dir", t.TempDir())
	viper.Set("upload.profile_dir", "profile")
	viper.Set("upload.attachment_dir", "attachment")

	files, err := NewFileStore(newTestDB(t))
	require.NoError(t, err)

	return files
}

func createUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()

	user := model.User{
		Username:     "user1",
		Email:        "user1@mail.com",
		PasswordHash: "irrelevant",
		Inactive:     false,
	}
	require.NoError(t, db.Create(&user).Error)

	return &user
}
