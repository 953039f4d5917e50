package person

import (
	apperrors "github.com/xiebiao/booklib/pkg/errors"
)

// 用户领域错误定义
// 设计说明：
// 1. 领域错误在domain层定义，Repository实现负责把数据库错误翻译成这里的错误
// 2. 约束冲突（title重复、名下还有图书）原样上抛，不在中间层改写
var (
	// ErrPersonNotFound 用户不存在
	ErrPersonNotFound = apperrors.New(apperrors.ErrCodePersonNotFound, "用户不存在")

	// ErrTitleDuplicate title已被占用（数据库UNIQUE索引冲突）
	ErrTitleDuplicate = apperrors.New(apperrors.ErrCodeTitleDuplicate, "用户title已存在")

	// ErrHasBooks 用户名下还有图书，外键约束拒绝删除
	// 说明：聚合工作流会先删图书再删用户，正常路径不会触发此错误
	ErrHasBooks = apperrors.New(apperrors.ErrCodeOwnerHasBooks, "用户名下还有图书，无法删除")
)
