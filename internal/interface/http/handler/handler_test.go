package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/libraryapi/internal/application/book"
	apploan "github.com/xiebiao/libraryapi/internal/application/loan"
	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/domain/loan"
	"github.com/xiebiao/libraryapi/pkg/metrics"
)

// =========================================
// 测试用fake实现
// =========================================

// fakeBookService 内存版图书领域服务
type fakeBookService struct {
	books  map[uint]*book.Book
	nextID uint
}

func newFakeBookService() *fakeBookService {
	return &fakeBookService{books: make(map[uint]*book.Book), nextID: 1}
}

func (s *fakeBookService) Create(ctx context.Context, title, author, isbn string) (*book.Book, error) {
	for _, b := range s.books {
		if b.ISBN == isbn {
			return nil, book.ErrISBNDuplicate
		}
	}
	b := &book.Book{ID: s.nextID, Title: title, Author: author, ISBN: isbn}
	s.nextID++
	s.books[b.ID] = b
	return b, nil
}

func (s *fakeBookService) GetByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (s *fakeBookService) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	for _, b := range s.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (s *fakeBookService) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	current, ok := s.books[b.ID]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	current.UpdateInfo(b.Title, b.Author)
	return current, nil
}

func (s *fakeBookService) Delete(ctx context.Context, b *book.Book) error {
	if _, ok := s.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	delete(s.books, b.ID)
	return nil
}

func (s *fakeBookService) Find(ctx context.Context, filter book.Filter, page book.PageRequest) ([]*book.Book, int64, error) {
	var all []*book.Book
	for _, b := range s.books {
		all = append(all, b)
	}
	return all, int64(len(all)), nil
}

// fakeBookRepo 只实现LockByID
type fakeBookRepo struct{}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { panic("not used") }
func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	panic("not used")
}
func (r *fakeBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	panic("not used")
}
func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { panic("not used") }
func (r *fakeBookRepo) Delete(ctx context.Context, id uint) error      { panic("not used") }
func (r *fakeBookRepo) Find(ctx context.Context, filter book.Filter, page book.PageRequest) ([]*book.Book, int64, error) {
	panic("not used")
}
func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return &book.Book{ID: id}, nil
}

// fakeLoanRepo 内存版借阅仓储
type fakeLoanRepo struct {
	loans  map[uint]*loan.Loan
	nextID uint
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[uint]*loan.Loan), nextID: 1}
}

func (r *fakeLoanRepo) Create(ctx context.Context, l *loan.Loan) error {
	l.ID = r.nextID
	r.nextID++
	clone := *l
	r.loans[l.ID] = &clone
	return nil
}

func (r *fakeLoanRepo) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, loan.ErrLoanNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *fakeLoanRepo) Update(ctx context.Context, l *loan.Loan) error {
	stored, ok := r.loans[l.ID]
	if !ok {
		return loan.ErrLoanNotFound
	}
	stored.Returned = l.Returned
	return nil
}

func (r *fakeLoanRepo) ExistsActiveByBook(ctx context.Context, bookID uint) (bool, error) {
	for _, l := range r.loans {
		if l.BookID == bookID && !l.IsReturned() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLoanRepo) Find(ctx context.Context, filter loan.Filter, page book.PageRequest) ([]*loan.Loan, int64, error) {
	var all []*loan.Loan
	for _, l := range r.loans {
		clone := *l
		all = append(all, &clone)
	}
	return all, int64(len(all)), nil
}

func (r *fakeLoanRepo) FindByBook(ctx context.Context, bookID uint, page book.PageRequest) ([]*loan.Loan, int64, error) {
	var matched []*loan.Loan
	for _, l := range r.loans {
		if l.BookID == bookID {
			clone := *l
			matched = append(matched, &clone)
		}
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeLoanRepo) FindLate(ctx context.Context, cutoff time.Time) ([]*loan.Loan, error) {
	return nil, nil
}

// fakeTxManager 直接执行fn
type fakeTxManager struct{}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// =========================================
// 测试路由搭建
// =========================================

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()

	bookSvc := newFakeBookService()
	loanSvc := loan.NewService(newFakeLoanRepo(), 4)

	bookHandler := NewBookHandler(
		appbook.NewCreateBookUseCase(bookSvc),
		nil, // 详情查询走缓存，这里不覆盖
		nil,
		nil,
		appbook.NewFindBooksUseCase(bookSvc),
		appbook.NewFindBookLoansUseCase(bookSvc, loanSvc),
	)
	loanHandler := NewLoanHandler(
		apploan.NewCreateLoanUseCase(bookSvc, &fakeBookRepo{}, loanSvc, &fakeTxManager{}, nil),
		apploan.NewReturnLoanUseCase(loanSvc, nil),
		apploan.NewFindLoansUseCase(loanSvc),
	)

	r := gin.New()
	api := r.Group("/api")
	{
		books := api.Group("/books")
		{
			books.POST("", bookHandler.Create)
			books.GET("", bookHandler.Find)
			books.GET("/:id/loans", bookHandler.FindLoans)
		}
		loans := api.Group("/loans")
		{
			loans.POST("", loanHandler.Create)
			loans.GET("", loanHandler.Find)
			loans.PATCH("/:id", loanHandler.Return)
		}
	}
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Errors []string `json:"errors"`
}

// =========================================
// 图书接口测试
// =========================================

// TestCreateBookHandler 测试创建图书接口
func TestCreateBookHandler(t *testing.T) {
	t.Run("正常创建返回201", func(t *testing.T) {
		r := newTestRouter()
		w := doJSON(r, http.MethodPost, "/api/books",
			`{"title":"Clean Code","author":"Robert C. Martin","isbn":"9780132350884"}`)

		assert.Equal(t, http.StatusCreated, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 1, body["id"])
		assert.Equal(t, "9780132350884", body["isbn"])
	})

	t.Run("缺少必填字段返回400和逐条提示", func(t *testing.T) {
		r := newTestRouter()
		w := doJSON(r, http.MethodPost, "/api/books", `{"isbn":"9780132350884"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Errors, 2, "title和author各一条提示")
		assert.Contains(t, body.Errors, "title must not be empty")
		assert.Contains(t, body.Errors, "author must not be empty")
	})

	t.Run("ISBN重复返回400", func(t *testing.T) {
		r := newTestRouter()
		payload := `{"title":"A","author":"B","isbn":"9780132350884"}`

		w := doJSON(r, http.MethodPost, "/api/books", payload)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(r, http.MethodPost, "/api/books", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"isbn already registered"}, body.Errors)
	})
}

// TestFindBooksHandler 测试图书分页查询接口
func TestFindBooksHandler(t *testing.T) {
	t.Run("返回Spring风格分页结构", func(t *testing.T) {
		r := newTestRouter()
		doJSON(r, http.MethodPost, "/api/books",
			`{"title":"Clean Code","author":"Robert C. Martin","isbn":"9780132350884"}`)

		w := doJSON(r, http.MethodGet, "/api/books?page=0&size=10", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var page struct {
			Content       []map[string]interface{} `json:"content"`
			TotalElements int64                    `json:"totalElements"`
			Pageable      struct {
				PageNumber int `json:"pageNumber"`
				PageSize   int `json:"pageSize"`
			} `json:"pageable"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))

		assert.Len(t, page.Content, 1)
		assert.Equal(t, int64(1), page.TotalElements)
		assert.Equal(t, 0, page.Pageable.PageNumber)
		assert.Equal(t, 10, page.Pageable.PageSize)
	})
}

// TestFindBookLoansHandler 测试图书借阅历史接口
func TestFindBookLoansHandler(t *testing.T) {
	t.Run("图书不存在返回404", func(t *testing.T) {
		r := newTestRouter()
		w := doJSON(r, http.MethodGet, "/api/books/999/loans", "")

		assert.Equal(t, http.StatusNotFound, w.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"Book not found"}, body.Errors)
	})
}

// =========================================
// 借阅接口测试
// =========================================

func createTestBook(t *testing.T, r *gin.Engine) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/books",
		`{"title":"Clean Code","author":"Robert C. Martin","isbn":"9780132350884"}`)
	require.Equal(t, http.StatusCreated, w.Code)
}

// TestCreateLoanHandler 测试创建借阅接口
func TestCreateLoanHandler(t *testing.T) {
	t.Run("正常借阅返回201和数字ID", func(t *testing.T) {
		r := newTestRouter()
		createTestBook(t, r)

		w := doJSON(r, http.MethodPost, "/api/loans",
			`{"isbn":"9780132350884","customer":"Fulano","email":"fulano@example.com"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		// 对外契约:响应体是裸的数字ID
		assert.Equal(t, "1", strings.TrimSpace(w.Body.String()))
	})

	t.Run("ISBN不存在返回400", func(t *testing.T) {
		r := newTestRouter()

		w := doJSON(r, http.MethodPost, "/api/loans",
			`{"isbn":"9999999999999","customer":"Fulano","email":"fulano@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"Book not found for passed isbn"}, body.Errors)
	})

	t.Run("图书已借出返回400", func(t *testing.T) {
		r := newTestRouter()
		createTestBook(t, r)

		payload := `{"isbn":"9780132350884","customer":"Fulano","email":"fulano@example.com"}`
		w := doJSON(r, http.MethodPost, "/api/loans", payload)
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(r, http.MethodPost, "/api/loans", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"Book already in use"}, body.Errors)
	})

	t.Run("邮箱格式错误返回400", func(t *testing.T) {
		r := newTestRouter()
		createTestBook(t, r)

		w := doJSON(r, http.MethodPost, "/api/loans",
			`{"isbn":"9780132350884","customer":"Fulano","email":"not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Errors, "email must be a well-formed email address")
	})
}

// TestReturnLoanHandler 测试归还登记接口
func TestReturnLoanHandler(t *testing.T) {
	t.Run("正常登记归还", func(t *testing.T) {
		r := newTestRouter()
		createTestBook(t, r)
		doJSON(r, http.MethodPost, "/api/loans",
			`{"isbn":"9780132350884","customer":"Fulano","email":"fulano@example.com"}`)

		w := doJSON(r, http.MethodPatch, "/api/loans/1", `{"returned":true}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["returned"])
	})

	t.Run("借阅不存在返回404", func(t *testing.T) {
		r := newTestRouter()

		w := doJSON(r, http.MethodPatch, "/api/loans/999", `{"returned":true}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"Loan not found"}, body.Errors)
	})

	t.Run("缺少returned字段返回400", func(t *testing.T) {
		r := newTestRouter()

		w := doJSON(r, http.MethodPatch, "/api/loans/1", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
