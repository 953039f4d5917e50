package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xiebiao/booklib/internal/domain/person"
	apperrors "github.com/xiebiao/booklib/pkg/errors"
)

// 用户表SQL语句
// 说明：手写参数化SQL，占位符防注入；表结构与映射后端完全一致
const (
	personInsertSQL = `INSERT INTO person (full_name, title, age, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())`

	personSelectByIDSQL = `SELECT id, full_name, title, age, created_at, updated_at
		FROM person WHERE id = ?`

	personUpdateSQL = `UPDATE person SET full_name = ?, title = ?, age = ?, updated_at = NOW()
		WHERE id = ?`

	personDeleteSQL = `DELETE FROM person WHERE id = ?`

	personExistsSQL = `SELECT 1 FROM person WHERE id = ?`
)

// personSQLRepository 用户仓储实现（database/sql直连后端）
// 设计说明：
// 1. 与personRepository（GORM）实现同一个domain接口，可互换
// 2. 自增ID通过LastInsertId在写入后同步获得，不靠二次查询
// 3. 行到实体的转换是一个无共享状态的纯函数（scanPerson）
type personSQLRepository struct {
	db *sql.DB
}

// NewPersonSQLRepository 创建用户仓储（直连后端）
func NewPersonSQLRepository(db *sql.DB) person.Repository {
	return &personSQLRepository{db: db}
}

// Create 创建用户
func (r *personSQLRepository) Create(ctx context.Context, p *person.Person) error {
	if p == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "创建用户失败: 用户数据为空")
	}

	result, err := r.db.ExecContext(ctx, personInsertSQL, p.FullName, p.Title, p.Age)
	if err != nil {
		if isDuplicateError(err) {
			return person.ErrTitleDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	// 同步获取数据库分配的自增ID
	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "创建用户失败: 读取自增ID失败")
	}
	p.ID = uint(id)

	return nil
}

// FindByID 根据ID查找用户
func (r *personSQLRepository) FindByID(ctx context.Context, id uint) (*person.Person, error) {
	if id == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询用户失败: id为空")
	}

	row := r.db.QueryRowContext(ctx, personSelectByIDSQL, id)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, person.ErrPersonNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return p, nil
}

// Update 按ID整体覆盖可变字段
// 说明：与映射后端语义统一——行不存在返回ErrPersonNotFound。
// MySQL对"值未变化"的UPDATE报告0行受影响，所以0行时回查一次区分两种情况
func (r *personSQLRepository) Update(ctx context.Context, p *person.Person) error {
	if p == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "更新用户失败: 用户数据为空")
	}
	if p.ID == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "更新用户失败: id为空")
	}

	result, err := r.db.ExecContext(ctx, personUpdateSQL, p.FullName, p.Title, p.Age, p.ID)
	if err != nil {
		if isDuplicateError(err) {
			return person.ErrTitleDuplicate
		}
		return apperrors.Wrap(err, "更新用户失败")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "更新用户失败")
	}
	if affected == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, personExistsSQL, p.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return person.ErrPersonNotFound
		}
		if err != nil {
			return apperrors.Wrap(err, "更新用户失败")
		}
	}

	return nil
}

// Delete 删除用户
func (r *personSQLRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "删除用户失败: id为空")
	}

	result, err := r.db.ExecContext(ctx, personDeleteSQL, id)
	if err != nil {
		if isReferencedRow(err) {
			return person.ErrHasBooks
		}
		return apperrors.Wrap(err, "删除用户失败")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "删除用户失败")
	}
	if affected == 0 {
		return person.ErrPersonNotFound
	}

	return nil
}

// scanPerson 行 → 领域实体（纯函数，无共享状态）
func scanPerson(row *sql.Row) (*person.Person, error) {
	var p person.Person
	err := row.Scan(&p.ID, &p.FullName, &p.Title, &p.Age, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
