// Package database owns the sqlite handle, migrations, and the seeded user
// accounts of the library panel.
package database

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path"

	"library-ui/config"
	"library-ui/database/model"
	"library-ui/util/crypto"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultGuestUsername = "user1"
	defaultGuestPassword = "user123"
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.Book{},
		&model.Borrower{},
		&model.Borrow{},
		&model.Setting{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initUsers seeds the admin/guest account pair when the users table is empty.
func initUsers() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}

	adminHash, err := crypto.HashPasswordAsBcrypt(defaultAdminPassword)
	if err != nil {
		return err
	}
	guestHash, err := crypto.HashPasswordAsBcrypt(defaultGuestPassword)
	if err != nil {
		return err
	}

	users := []*model.User{
		{
			Username: defaultAdminUsername,
			Password: adminHash,
			RealName: "Admin User",
			Email:    "admin@example.com",
			Role:     model.RoleAdmin,
		},
		{
			Username: defaultGuestUsername,
			Password: guestHash,
			RealName: "User One",
			Email:    "user1@example.com",
			Role:     model.RoleGuest,
		},
	}
	return db.Create(users).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	// refuse to open a non-empty file that is not a sqlite database
	if info, statErr := os.Stat(dbPath); statErr == nil && info.Size() > 0 {
		file, err := os.Open(dbPath)
		if err != nil {
			return err
		}
		ok, err := IsSQLiteDB(file)
		file.Close()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not a sqlite database", dbPath)
		}
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		PrepareStmt:    true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return initUsers()
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err stems from a uniqueness constraint.
// Relies on gorm's TranslateError being enabled on the handle.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func IsSQLiteDB(file io.ReaderAt) (bool, error) {
	signature := []byte("SQLite format 3\x00")
	buf := make([]byte, len(signature))
	_, err := file.ReadAt(buf, 0)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, signature), nil
}

// Checkpoint flushes the sqlite WAL into the main database file.
func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
