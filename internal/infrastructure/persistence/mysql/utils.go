package mysql

import (
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL错误码
// - 1062: Duplicate entry（唯一索引冲突）
// - 1451: Cannot delete or update a parent row（父表行被子表引用）
// - 1452: Cannot add or update a child row（子表外键指向不存在的父行）
const (
	mysqlErrDuplicateEntry   = 1062
	mysqlErrRowIsReferenced  = 1451
	mysqlErrNoReferencedRow  = 1452
)

// mysqlErrNumber 提取go-sql-driver的错误码（两个后端共用）
func mysqlErrNumber(err error) uint16 {
	var mysqlErr *mysqldrv.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}

// isDuplicateError 判断是否为唯一索引冲突错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// GORM v2的错误判断
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if mysqlErrNumber(err) == mysqlErrDuplicateEntry {
		return true
	}
	// 兼容检查：错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isDanglingForeignKey 判断是否为"子行外键指向不存在的父行"错误
// 场景：插入图书时user_id指向不存在的用户
func isDanglingForeignKey(err error) bool {
	if err == nil {
		return false
	}
	return mysqlErrNumber(err) == mysqlErrNoReferencedRow
}

// isReferencedRow 判断是否为"父行被子表引用"错误
// 场景：用户名下还有图书时直接删除用户
func isReferencedRow(err error) bool {
	if err == nil {
		return false
	}
	return mysqlErrNumber(err) == mysqlErrRowIsReferenced
}
