package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ==================== 数据库初始化 ====================

// InitDB 打开 PostgreSQL 连接并迁移餐厅业务表
// dsn: 连接串；models: 需要自动建表/迁移的结构体指针
func InitDB(dsn string, models ...interface{}) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// 只打印慢查询和错误，点餐高峰期全量 SQL 日志太吵
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}

	// 单体服务，连接池不用开太大
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("自动迁移失败: %w", err)
		}
	}

	log.Println("数据库就绪")
	return db, nil
}
