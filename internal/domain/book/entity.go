package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. ISBN作为业务唯一标识(数据库层保证唯一性)，创建后不可修改
// 2. Title/Author可通过Update修改
// 3. 图书与借阅是一对多关系，借阅记录不在本聚合内
type Book struct {
	ID        uint
	Title     string // 书名
	Author    string // 作者
	ISBN      string // ISBN号(国际标准书号)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(title, author, isbn string) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateInfo 更新图书基本信息
// 业务规则:只允许修改书名和作者，ISBN创建后不可变
func (b *Book) UpdateInfo(title, author string) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	b.UpdatedAt = time.Now()
}
