package person

import (
	"time"
)

// Person 用户实体（聚合根）
// DDD设计说明：
// 1. Person是用户聚合的根实体，名下可以拥有零或多本图书
// 2. ID由数据库自增分配，创建时不允许客户端指定
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type Person struct {
	ID        uint
	FullName  string
	Title     string // 全局唯一（数据库UNIQUE索引保证）
	Age       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPerson 创建新用户（工厂方法）
func NewPerson(fullName, title string, age int) *Person {
	now := time.Now()
	return &Person{
		FullName:  fullName,
		Title:     title,
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename 更新基础信息（领域行为）
// 说明：id不变，可变字段整体替换
func (p *Person) Rename(fullName, title string, age int) {
	p.FullName = fullName
	p.Title = title
	p.Age = age
	p.UpdatedAt = time.Now()
}
