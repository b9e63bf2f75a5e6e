// file: database/connect.go
package database

import (
	"CTFQuest/config"
	"CTFQuest/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"log"
	"time"
)

func Connect(cfg *config.Config) *gorm.DB {
	// TranslateError 让唯一键冲突以 gorm.ErrDuplicatedKey 暴露，
	// 完成记录和注册去重都依赖这一点
	db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// SetConnMaxLifetime 设置为1小时，避免 MySQL wait_timeout 掐断空闲连接
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
	return db
}

func MigrateTables(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Level{},
		&models.Challenge{},
		&models.UserChallenge{},
		&models.FlagSubmission{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
