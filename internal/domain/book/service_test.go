package book

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/booklib/pkg/errors"
)

// fakeRepository 手写的Repository桩实现（内存map模拟数据库）
type fakeRepository struct {
	books  map[uint]*Book
	owners map[uint]bool // 模拟person表，外键校验用
	nextID uint

	createCalls int
}

func newFakeRepository(ownerIDs ...uint) *fakeRepository {
	owners := make(map[uint]bool)
	for _, id := range ownerIDs {
		owners[id] = true
	}
	return &fakeRepository{books: make(map[uint]*Book), owners: owners, nextID: 1}
}

func (f *fakeRepository) Create(ctx context.Context, b *Book) error {
	f.createCalls++
	if !f.owners[b.OwnerID] {
		return ErrOwnerNotFound
	}
	b.ID = f.nextID
	f.nextID++
	cp := *b
	f.books[b.ID] = &cp
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uint) (*Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepository) Update(ctx context.Context, b *Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return ErrBookNotFound
	}
	cp := *b
	f.books[b.ID] = &cp
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := f.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeRepository) FindAllByOwnerID(ctx context.Context, ownerID uint) ([]*Book, error) {
	var result []*Book
	for _, b := range f.books {
		if b.OwnerID == ownerID {
			cp := *b
			result = append(result, &cp)
		}
	}
	// 与真实实现一致：按主键升序
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func TestServiceCreate(t *testing.T) {
	t.Run("正常创建回填ID", func(t *testing.T) {
		svc := NewService(newFakeRepository(1))

		b := NewBook("War and Peace", "Tolstoy", 1225)
		b.OwnerID = 1

		created, err := svc.Create(context.Background(), b)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, uint(1), created.OwnerID)
	})

	t.Run("空图书拒绝并且不触达仓储", func(t *testing.T) {
		repo := newFakeRepository(1)
		svc := NewService(repo)

		_, err := svc.Create(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidParams(err))
		assert.Zero(t, repo.createCalls)
	})

	t.Run("归属用户id为空拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository(1))

		_, err := svc.Create(context.Background(), NewBook("No Owner", "Nobody", 10))
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidParams(err))
	})

	t.Run("页数为负拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository(1))

		b := NewBook("Negative", "Pages", -5)
		b.OwnerID = 1
		_, err := svc.Create(context.Background(), b)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidParams(err))
	})

	t.Run("悬空的OwnerID上抛外键错误", func(t *testing.T) {
		svc := NewService(newFakeRepository(1))

		b := NewBook("Dangling", "FK", 100)
		b.OwnerID = 999
		_, err := svc.Create(context.Background(), b)
		require.ErrorIs(t, err, ErrOwnerNotFound)
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Run("id为空拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository(1))

		_, err := svc.Update(context.Background(), &Book{Title: "X"})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidParams(err))
	})

	t.Run("不存在的id返回图书不存在", func(t *testing.T) {
		svc := NewService(newFakeRepository(1))

		_, err := svc.Update(context.Background(), &Book{ID: 77, Title: "X"})
		require.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestServiceDelete(t *testing.T) {
	svc := NewService(newFakeRepository(1))

	t.Run("id为空拒绝", func(t *testing.T) {
		err := svc.Delete(context.Background(), 0)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidParams(err))
	})

	t.Run("删除后再查询返回图书不存在", func(t *testing.T) {
		b := NewBook("Ephemeral", "Author", 50)
		b.OwnerID = 1
		created, err := svc.Create(context.Background(), b)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), created.ID))

		_, err = svc.GetByID(context.Background(), created.ID)
		require.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestServiceGetAllByOwnerID(t *testing.T) {
	t.Run("归属用户id为空拒绝", func(t *testing.T) {
		svc := NewService(newFakeRepository(1))

		_, err := svc.GetAllByOwnerID(context.Background(), 0)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidParams(err))
	})

	t.Run("无图书返回空切片而非错误", func(t *testing.T) {
		svc := NewService(newFakeRepository(1))

		books, err := svc.GetAllByOwnerID(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, books)
	})

	t.Run("按主键升序返回", func(t *testing.T) {
		svc := NewService(newFakeRepository(1))

		titles := []string{"first", "second", "third"}
		for _, title := range titles {
			b := NewBook(title, "Author", 100)
			b.OwnerID = 1
			_, err := svc.Create(context.Background(), b)
			require.NoError(t, err)
		}

		books, err := svc.GetAllByOwnerID(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, books, 3)
		for i, b := range books {
			assert.Equal(t, titles[i], b.Title)
		}
	})
}
