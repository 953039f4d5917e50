package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAppErrorUnwrap 验证AppError与标准errors包的兼容性
func TestAppErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	wrapped := Wrap(inner, "查询用户失败")

	// errors.Is可以穿透AppError找到内部错误
	assert.True(t, errors.Is(wrapped, inner))

	// errors.As可以提取AppError
	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, "查询用户失败", appErr.Message)
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样提取", func(t *testing.T) {
		src := New(ErrCodePersonNotFound, "用户不存在")
		got := GetAppError(src)
		assert.Equal(t, ErrCodePersonNotFound, got.Code)
	})

	t.Run("普通error包装为内部错误", func(t *testing.T) {
		got := GetAppError(fmt.Errorf("boom"))
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.NotNil(t, got.Err)
	})
}

// TestErrorClassifiers 验证错误码分段判断
func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		notFound    bool
		invalid     bool
		constraint  bool
	}{
		{"用户不存在", New(ErrCodePersonNotFound, "用户不存在"), true, false, false},
		{"图书不存在", New(ErrCodeBookNotFound, "图书不存在"), true, false, false},
		{"参数错误", Newf(ErrCodeInvalidParams, "更新用户失败: id为空"), false, true, false},
		{"title重复", New(ErrCodeTitleDuplicate, "title已存在"), false, false, true},
		{"外键冲突", New(ErrCodeOwnerNotFound, "归属用户不存在"), true, false, false},
		{"内部错误", ErrInternal, false, false, false},
		{"非AppError", errors.New("plain"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.invalid, IsInvalidParams(tt.err))
			assert.Equal(t, tt.constraint, IsConstraint(tt.err))
		})
	}
}

func TestErrorMessageFormat(t *testing.T) {
	err := Newf(ErrCodePersonNotFound, "用户不存在: id=%d", 42)
	assert.Contains(t, err.Error(), "40401")
	assert.Contains(t, err.Error(), "id=42")
}
