package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/libraryapi/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate，仅开发环境依赖）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&LoanModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/book/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的手写转换(不用反射映射)
// 4. ISBN有唯一索引,数据库层兜底防重复
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author    string    `gorm:"index:idx_search;size:100;not null;comment:作者"`
	ISBN      string    `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// LoanModel GORM借阅模型
// 设计说明:
// 1. Returned用*bool映射数据库的三态(NULL/0/1)
// 2. LoanDate按天存储(入库前已截断到零点)
// 3. (book_id, returned)复合索引服务"未归还借阅"存在性检查
// 4. 借阅记录永不删除，没有DeletedAt
type LoanModel struct {
	ID            uint       `gorm:"primaryKey"`
	BookID        uint       `gorm:"index:idx_active,priority:1;not null;comment:图书ID"`
	Book          *BookModel `gorm:"foreignKey:BookID"` // 多对一关联
	Customer      string     `gorm:"index;size:100;not null;comment:借阅人姓名"`
	CustomerEmail string     `gorm:"size:100;not null;comment:借阅人邮箱"`
	LoanDate      time.Time  `gorm:"index;not null;comment:借出日期"`
	Returned      *bool      `gorm:"index:idx_active,priority:2;comment:归还标记(NULL=未登记)"`
	CreatedAt     time.Time  `gorm:"comment:创建时间"`
	UpdatedAt     time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}
