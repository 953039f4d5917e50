package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xiebiao/booklib/internal/domain/book"
	apperrors "github.com/xiebiao/booklib/pkg/errors"
)

// 图书表SQL语句
const (
	bookInsertSQL = `INSERT INTO book (title, author, page_count, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())`

	bookSelectByIDSQL = `SELECT id, title, author, page_count, user_id, created_at, updated_at
		FROM book WHERE id = ?`

	bookUpdateSQL = `UPDATE book SET title = ?, author = ?, page_count = ?, updated_at = NOW()
		WHERE id = ?`

	bookDeleteSQL = `DELETE FROM book WHERE id = ?`

	bookExistsSQL = `SELECT 1 FROM book WHERE id = ?`

	bookSelectByOwnerSQL = `SELECT id, title, author, page_count, user_id, created_at, updated_at
		FROM book WHERE user_id = ? ORDER BY id`
)

// bookSQLRepository 图书仓储实现（database/sql直连后端）
// 设计说明：与bookRepository（GORM）实现同一个domain接口，行为一致，可互换
type bookSQLRepository struct {
	db *sql.DB
}

// NewBookSQLRepository 创建图书仓储（直连后端）
func NewBookSQLRepository(db *sql.DB) book.Repository {
	return &bookSQLRepository{db: db}
}

// Create 创建图书
func (r *bookSQLRepository) Create(ctx context.Context, b *book.Book) error {
	if b == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "创建图书失败: 图书数据为空")
	}

	result, err := r.db.ExecContext(ctx, bookInsertSQL, b.Title, b.Author, b.PageCount, b.OwnerID)
	if err != nil {
		if isDanglingForeignKey(err) {
			return book.ErrOwnerNotFound
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "创建图书失败: 读取自增ID失败")
	}
	b.ID = uint(id)

	return nil
}

// FindByID 根据ID查找图书
func (r *bookSQLRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	if id == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询图书失败: id为空")
	}

	row := r.db.QueryRowContext(ctx, bookSelectByIDSQL, id)

	var b book.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.PageCount, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return &b, nil
}

// Update 按ID整体覆盖可变字段（归属关系不变）
func (r *bookSQLRepository) Update(ctx context.Context, b *book.Book) error {
	if b == nil {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "更新图书失败: 图书数据为空")
	}
	if b.ID == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "更新图书失败: id为空")
	}

	result, err := r.db.ExecContext(ctx, bookUpdateSQL, b.Title, b.Author, b.PageCount, b.ID)
	if err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}
	if affected == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, bookExistsSQL, b.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return book.ErrBookNotFound
		}
		if err != nil {
			return apperrors.Wrap(err, "更新图书失败")
		}
	}

	return nil
}

// Delete 删除图书
func (r *bookSQLRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "删除图书失败: id为空")
	}

	result, err := r.db.ExecContext(ctx, bookDeleteSQL, id)
	if err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}
	if affected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// FindAllByOwnerID 列举某用户名下的全部图书（ORDER BY id）
func (r *bookSQLRepository) FindAllByOwnerID(ctx context.Context, ownerID uint) ([]*book.Book, error) {
	if ownerID == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "查询图书失败: 归属用户id为空")
	}

	rows, err := r.db.QueryContext(ctx, bookSelectByOwnerSQL, ownerID)
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户图书列表失败")
	}
	defer rows.Close()

	books := make([]*book.Book, 0)
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PageCount, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "查询用户图书列表失败")
		}
		books = append(books, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "查询用户图书列表失败")
	}

	return books, nil
}
