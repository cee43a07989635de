package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/cram-school-study/pybo/config"
    "github.com/cram-school-study/pybo/internal/model"
)

// InitDB 按配置打开数据库并迁移表结构。
// sqlite 用于本地/测试（支持 :memory:），postgres 用于线上。
func InitDB(cfg *config.Config) (*gorm.DB, error) {
    var dialector gorm.Dialector
    switch cfg.Database.Driver {
    case "postgres":
        dialector = postgres.Open(cfg.Database.DSN)
    case "sqlite", "":
        dialector = sqlite.Open(cfg.Database.DSN)
    default:
        return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
    }

    db, err := gorm.Open(dialector, &gorm.Config{})
    if err != nil {
        return nil, fmt.Errorf("open database: %w", err)
    }

    if err := db.AutoMigrate(&model.User{}, &model.Question{}, &model.Answer{}); err != nil {
        return nil, fmt.Errorf("migrate: %w", err)
    }
    return db, nil
}
