package book

import (
	"time"
)

// Book 图书实体
// 设计说明：
// 1. 每本图书归属且仅归属一个用户（OwnerID外键，NOT NULL）
// 2. OwnerID在写入路径上由聚合层赋值为刚创建/更新的用户ID，落库后不再变更
// 3. PageCount非负，页数可能很大，使用int64
type Book struct {
	ID        uint
	Title     string
	Author    string
	PageCount int64
	OwnerID   uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书（工厂方法）
// 说明：OwnerID由聚合层在持久化前赋值，这里不作为参数
func NewBook(title, author string, pageCount int64) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		PageCount: pageCount,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
