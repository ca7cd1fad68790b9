package database

import (
	"fmt"
	"log"

	"program_hub_backend/internal/config"
	"program_hub_backend/internal/repository"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// 文档单表即全部 schema；集合/实体关系都在 JSON 里
	if err := db.AutoMigrate(&repository.DocumentRecord{}); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
