// Package database provides MySQL and Redis initialization for the service.
package database

import (
	"time"

	"blkout_community_go/internal/model"
	"blkout_community_go/pkg/log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

// DB is the global GORM instance, available after InitMySQL succeeds.
var DB *gorm.DB

// InitMySQL connects to MySQL using the given DSN and configures the pool.
// SQL statements are logged through zap via zapgorm2. Exits on failure.
func InitMySQL(dsn string) {
	gormLogger := zapgorm2.New(log.GetLogger())
	gormLogger.SetAsDefault()

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		log.Fatal("Failed to connect to MySQL", err)
	}
	log.Info("Connected to MySQL")

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get SQL DB", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("MySQL initialized successfully")
}

// RunMigrate creates or updates the tables for all persisted models.
func RunMigrate() error {
	log.Info("Running migrations...")

	if err := DB.AutoMigrate(
		&model.Event{},
		&model.NewsroomArticle{},
		&model.Category{},
		&model.Tag{},
		&model.CommunityMember{},
		&model.IvorCategory{},
		&model.IvorTag{},
		&model.IvorResource{},
		&model.IvorResourceTag{},
		&model.ContentRating{},
		&model.OutboxTask{},
		&model.Moderator{},
	); err != nil {
		log.Errorf("Failed to run migrations: %v", err)
		return err
	}

	log.Info("Migrations completed successfully")
	return nil
}
