package book

import (
	apperrors "github.com/xiebiao/booklib/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrOwnerNotFound 归属用户不存在（外键约束拒绝写入悬空的OwnerID）
	ErrOwnerNotFound = apperrors.New(apperrors.ErrCodeOwnerNotFound, "图书归属的用户不存在")
)
