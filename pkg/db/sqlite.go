package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/pkg/logging"
)

var gormDB *gorm.DB

// InitDB 初始化 GORM 数据库连接并执行迁移
// 数据库文件路径来自配置 SQLITE_DB_PATH，默认 "data/hr_management.db"
func InitDB(dbPath string) {
	var err error
	gormDB, err = Open(dbPath, logger.Warn)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("Failed to connect to database")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get underlying sql.DB from GORM")
	}

	// 设置数据库连接池参数 (可选)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Str("path", dbPath).Msg("Successfully connected to database using GORM")

	if err := Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("Failed to auto migrate database tables")
	}
	log.Info().Msg("Database tables migrated successfully.")
}

// Open 打开 SQLite 数据库。文件路径的目录不存在时自动创建；内存数据库 (":memory:" 或 "file:...mode=memory") 直接打开。
func Open(dbPath string, level logger.LogLevel) (*gorm.DB, error) {
	if !isMemoryDSN(dbPath) {
		// 确保数据库文件所在的目录存在
		dbDir := filepath.Dir(dbPath)
		if _, err := os.Stat(dbDir); os.IsNotExist(err) {
			log.Info().Str("dir", dbDir).Msg("Database directory does not exist, creating it...")
			if mkErr := os.MkdirAll(dbDir, 0755); mkErr != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dbDir, mkErr)
			}
		}
	}

	conn, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logging.GormLogger(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	return conn, nil
}

// Migrate 自动迁移数据库表结构
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Employee{},
		&models.AttendanceRecord{},
		&models.Setting{},
	)
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// GetDB 返回 GORM 数据库实例
func GetDB() *gorm.DB {
	if gormDB == nil {
		log.Fatal().Msg("Database not initialized. Call InitDB first.")
	}
	return gormDB
}

// CloseDB 关闭 GORM 数据库连接 (通常在应用退出时调用)
func CloseDB() {
	if gormDB != nil {
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Error().Err(err).Msg("Error getting underlying sql.DB for closing")
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
		log.Info().Msg("Database connection closed.")
	}
}
