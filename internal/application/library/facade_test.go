package library

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/booklib/internal/domain/book"
	"github.com/xiebiao/booklib/internal/domain/person"
)

// 聚合用例测试
// 说明：用手写的领域服务桩验证编排契约——调用顺序、ID回填、nil项过滤、
// 追加语义、删除顺序、部分失败不回滚。持久化行为由仓储层和集成测试覆盖

// opLog 跨服务共享的操作日志，用于断言编排顺序
type opLog struct {
	ops []string
}

// fakePersonService 用户领域服务桩
type fakePersonService struct {
	people map[uint]*person.Person
	nextID uint
	log    *opLog
}

func newFakePersonService(log *opLog) *fakePersonService {
	return &fakePersonService{people: make(map[uint]*person.Person), nextID: 1, log: log}
}

func (f *fakePersonService) Create(ctx context.Context, p *person.Person) (*person.Person, error) {
	f.log.ops = append(f.log.ops, "person.create")
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.people[p.ID] = &cp
	return p, nil
}

func (f *fakePersonService) Update(ctx context.Context, p *person.Person) (*person.Person, error) {
	f.log.ops = append(f.log.ops, "person.update")
	if _, ok := f.people[p.ID]; !ok {
		return nil, person.ErrPersonNotFound
	}
	cp := *p
	f.people[p.ID] = &cp
	return p, nil
}

func (f *fakePersonService) GetByID(ctx context.Context, id uint) (*person.Person, error) {
	p, ok := f.people[id]
	if !ok {
		return nil, person.ErrPersonNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePersonService) Delete(ctx context.Context, id uint) error {
	f.log.ops = append(f.log.ops, "person.delete")
	if _, ok := f.people[id]; !ok {
		return person.ErrPersonNotFound
	}
	delete(f.people, id)
	return nil
}

// fakeBookService 图书领域服务桩
// failOnTitle：创建到指定书名时返回错误，模拟中途失败
type fakeBookService struct {
	books       map[uint]*book.Book
	nextID      uint
	log         *opLog
	failOnTitle string
}

func newFakeBookService(log *opLog) *fakeBookService {
	return &fakeBookService{books: make(map[uint]*book.Book), nextID: 100, log: log}
}

func (f *fakeBookService) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	f.log.ops = append(f.log.ops, "book.create")
	if f.failOnTitle != "" && b.Title == f.failOnTitle {
		return nil, book.ErrOwnerNotFound
	}
	b.ID = f.nextID
	f.nextID++
	cp := *b
	f.books[b.ID] = &cp
	return b, nil
}

func (f *fakeBookService) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	if _, ok := f.books[b.ID]; !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	f.books[b.ID] = &cp
	return b, nil
}

func (f *fakeBookService) GetByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookService) Delete(ctx context.Context, id uint) error {
	f.log.ops = append(f.log.ops, "book.delete")
	if _, ok := f.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookService) GetAllByOwnerID(ctx context.Context, ownerID uint) ([]*book.Book, error) {
	var result []*book.Book
	for _, b := range f.books {
		if b.OwnerID == ownerID {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func newFakes() (*fakePersonService, *fakeBookService, *opLog) {
	log := &opLog{}
	return newFakePersonService(log), newFakeBookService(log), log
}

func TestCreateUserBooks(t *testing.T) {
	t.Run("三本图书其中一个为nil_响应只含两个ID且保持输入顺序", func(t *testing.T) {
		personSvc, bookSvc, _ := newFakes()
		uc := NewCreateUserBooksUseCase(personSvc, bookSvc, nil)

		req := UserBooksRequest{
			User: UserPayload{FullName: "Ivanov Ivan", Title: "reader", Age: 22},
			Books: []*BookPayload{
				{Title: "first", Author: "A", PageCount: 100},
				nil,
				{Title: "second", Author: "B", PageCount: 200},
			},
		}

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.NotZero(t, resp.UserID)
		assert.Equal(t, "Ivanov Ivan", resp.FullName)
		assert.Equal(t, "reader", resp.Title)
		assert.Equal(t, 22, resp.Age)

		// nil项被过滤，ID按对应非nil载荷的输入顺序排列
		require.Len(t, resp.BooksIDList, 2)
		first, err := bookSvc.GetByID(context.Background(), resp.BooksIDList[0])
		require.NoError(t, err)
		second, err := bookSvc.GetByID(context.Background(), resp.BooksIDList[1])
		require.NoError(t, err)
		assert.Equal(t, "first", first.Title)
		assert.Equal(t, "second", second.Title)

		// 每本图书的归属都是刚创建的用户
		assert.Equal(t, resp.UserID, first.OwnerID)
		assert.Equal(t, resp.UserID, second.OwnerID)
	})

	t.Run("先建用户后建图书", func(t *testing.T) {
		personSvc, bookSvc, log := newFakes()
		uc := NewCreateUserBooksUseCase(personSvc, bookSvc, nil)

		_, err := uc.Execute(context.Background(), UserBooksRequest{
			User:  UserPayload{FullName: "X", Title: "t", Age: 1},
			Books: []*BookPayload{{Title: "b", Author: "a", PageCount: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"person.create", "book.create"}, log.ops)
	})

	t.Run("图书中途失败_用户和已建图书保留不回滚", func(t *testing.T) {
		personSvc, bookSvc, _ := newFakes()
		bookSvc.failOnTitle = "bad"
		uc := NewCreateUserBooksUseCase(personSvc, bookSvc, nil)

		_, err := uc.Execute(context.Background(), UserBooksRequest{
			User: UserPayload{FullName: "Partial", Title: "partial", Age: 30},
			Books: []*BookPayload{
				{Title: "good", Author: "A", PageCount: 10},
				{Title: "bad", Author: "B", PageCount: 20},
				{Title: "never", Author: "C", PageCount: 30},
			},
		})
		require.Error(t, err)

		// 用户已提交
		assert.Len(t, personSvc.people, 1)
		// 第一本已提交，第二本失败，第三本未尝试
		assert.Len(t, bookSvc.books, 1)
	})
}

func TestUpdateUserBooks(t *testing.T) {
	// seed 预置一个用户和若干图书
	seed := func(t *testing.T, personSvc *fakePersonService, bookSvc *fakeBookService, titles ...string) uint {
		t.Helper()
		p, err := personSvc.Create(context.Background(), person.NewPerson("Seed", "seed-title", 20))
		require.NoError(t, err)
		for _, title := range titles {
			b := book.NewBook(title, "Author", 100)
			b.OwnerID = p.ID
			_, err := bookSvc.Create(context.Background(), b)
			require.NoError(t, err)
		}
		return p.ID
	}

	t.Run("已有两本再追加一本_响应含三个ID", func(t *testing.T) {
		personSvc, bookSvc, _ := newFakes()
		personID := seed(t, personSvc, bookSvc, "old-1", "old-2")

		existing, err := bookSvc.GetAllByOwnerID(context.Background(), personID)
		require.NoError(t, err)
		require.Len(t, existing, 2)

		uc := NewUpdateUserBooksUseCase(personSvc, bookSvc, nil)
		resp, err := uc.Execute(context.Background(), UserBooksRequest{
			User:  UserPayload{FullName: "Renamed", Title: "new-title", Age: 44},
			Books: []*BookPayload{{Title: "new-1", Author: "N", PageCount: 300}},
		}, personID)
		require.NoError(t, err)

		assert.Equal(t, personID, resp.UserID)
		assert.Equal(t, "Renamed", resp.FullName)

		// 旧书 + 新书的并集，旧书未被替换或删除
		require.Len(t, resp.BooksIDList, 3)
		assert.Contains(t, resp.BooksIDList, existing[0].ID)
		assert.Contains(t, resp.BooksIDList, existing[1].ID)
	})

	t.Run("用户不存在_整体失败且不建任何图书", func(t *testing.T) {
		personSvc, bookSvc, _ := newFakes()
		uc := NewUpdateUserBooksUseCase(personSvc, bookSvc, nil)

		_, err := uc.Execute(context.Background(), UserBooksRequest{
			User:  UserPayload{FullName: "Ghost", Title: "ghost", Age: 1},
			Books: []*BookPayload{{Title: "b", Author: "a", PageCount: 1}},
		}, 999)
		require.ErrorIs(t, err, person.ErrPersonNotFound)
		assert.Empty(t, bookSvc.books)
	})

	t.Run("nil图书项被过滤", func(t *testing.T) {
		personSvc, bookSvc, _ := newFakes()
		personID := seed(t, personSvc, bookSvc)

		uc := NewUpdateUserBooksUseCase(personSvc, bookSvc, nil)
		resp, err := uc.Execute(context.Background(), UserBooksRequest{
			User:  UserPayload{FullName: "X", Title: "x", Age: 2},
			Books: []*BookPayload{nil, {Title: "only", Author: "O", PageCount: 5}},
		}, personID)
		require.NoError(t, err)
		assert.Len(t, resp.BooksIDList, 1)
	})
}

func TestGetUserBooks(t *testing.T) {
	t.Run("用户带图书", func(t *testing.T) {
		personSvc, bookSvc, _ := newFakes()
		p, err := personSvc.Create(context.Background(), person.NewPerson("Reader", "r-title", 25))
		require.NoError(t, err)

		for _, title := range []string{"a", "b"} {
			b := book.NewBook(title, "Author", 100)
			b.OwnerID = p.ID
			_, err := bookSvc.Create(context.Background(), b)
			require.NoError(t, err)
		}

		uc := NewGetUserBooksUseCase(personSvc, bookSvc, nil)
		resp, err := uc.Execute(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, resp.UserID)
		assert.Len(t, resp.BooksIDList, 2)
	})

	t.Run("用户无图书_空列表而非错误", func(t *testing.T) {
		personSvc, bookSvc, _ := newFakes()
		p, err := personSvc.Create(context.Background(), person.NewPerson("Empty", "e-title", 25))
		require.NoError(t, err)

		uc := NewGetUserBooksUseCase(personSvc, bookSvc, nil)
		resp, err := uc.Execute(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Empty(t, resp.BooksIDList)
	})

	t.Run("用户不存在_上抛不存在错误", func(t *testing.T) {
		personSvc, bookSvc, _ := newFakes()
		uc := NewGetUserBooksUseCase(personSvc, bookSvc, nil)

		_, err := uc.Execute(context.Background(), 404)
		require.ErrorIs(t, err, person.ErrPersonNotFound)
	})
}

func TestDeleteUserBooks(t *testing.T) {
	t.Run("先删全部图书再删用户", func(t *testing.T) {
		personSvc, bookSvc, log := newFakes()
		p, err := personSvc.Create(context.Background(), person.NewPerson("Doomed", "d-title", 50))
		require.NoError(t, err)

		for _, title := range []string{"a", "b", "c"} {
			b := book.NewBook(title, "Author", 100)
			b.OwnerID = p.ID
			_, err := bookSvc.Create(context.Background(), b)
			require.NoError(t, err)
		}
		log.ops = nil // 只看删除阶段的调用

		uc := NewDeleteUserBooksUseCase(personSvc, bookSvc, nil)
		require.NoError(t, uc.Execute(context.Background(), p.ID))

		// 删除顺序：3次book.delete之后才是person.delete
		assert.Equal(t, []string{"book.delete", "book.delete", "book.delete", "person.delete"}, log.ops)

		// 用户与图书都已删除
		_, err = personSvc.GetByID(context.Background(), p.ID)
		require.ErrorIs(t, err, person.ErrPersonNotFound)
		remaining, err := bookSvc.GetAllByOwnerID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("无图书的用户直接删除", func(t *testing.T) {
		personSvc, bookSvc, log := newFakes()
		p, err := personSvc.Create(context.Background(), person.NewPerson("Solo", "s-title", 60))
		require.NoError(t, err)
		log.ops = nil

		uc := NewDeleteUserBooksUseCase(personSvc, bookSvc, nil)
		require.NoError(t, uc.Execute(context.Background(), p.ID))
		assert.Equal(t, []string{"person.delete"}, log.ops)
	})
}
