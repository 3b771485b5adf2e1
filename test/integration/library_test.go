package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：图书馆模块集成测试
//
// 测试场景覆盖：
// 1. 图书CRUD全流程
// 2. 借阅创建/归还/查询
// 3. 对外契约：HTTP状态码、{"errors":[...]}错误体、Spring风格分页

// TestBookCRUD 测试图书全生命周期
func TestBookCRUD(t *testing.T) {
	RequireIntegration(t)

	t.Run("创建图书", func(t *testing.T) {
		isbn := GenerateTestISBN()
		result := DoJSON(t, http.MethodPost, BaseURL+"/books", map[string]interface{}{
			"title":  "《Go语言实战》",
			"author": "威廉·肯尼迪",
			"isbn":   isbn,
		})

		require.Equal(t, http.StatusCreated, result.StatusCode)

		var book BookData
		result.Decode(t, &book)
		assert.NotZero(t, book.ID)
		assert.Equal(t, isbn, book.ISBN)

		t.Logf("✓ 创建成功，图书ID: %d", book.ID)
	})

	t.Run("ISBN重复应失败", func(t *testing.T) {
		book := CreateTestBook(t, "《图书A》")

		result := DoJSON(t, http.MethodPost, BaseURL+"/books", map[string]interface{}{
			"title":  "《图书B》",
			"author": "作者B",
			"isbn":   book.ISBN, // 相同ISBN
		})

		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
		assert.Equal(t, []string{"isbn already registered"}, result.Errors(t))

		t.Logf("✓ 重复ISBN正确被拒绝")
	})

	t.Run("缺少必填字段应失败", func(t *testing.T) {
		result := DoJSON(t, http.MethodPost, BaseURL+"/books", map[string]interface{}{
			"isbn": GenerateTestISBN(),
		})

		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
		assert.Len(t, result.Errors(t), 2, "title和author各一条提示")
	})

	t.Run("查询详情", func(t *testing.T) {
		created := CreateTestBook(t, "《详情测试》")

		result := DoJSON(t, http.MethodGet, fmt.Sprintf("%s/books/%d", BaseURL, created.ID), nil)
		require.Equal(t, http.StatusOK, result.StatusCode)

		var book BookData
		result.Decode(t, &book)
		assert.Equal(t, created.ISBN, book.ISBN)
	})

	t.Run("查询不存在的图书返回404", func(t *testing.T) {
		result := DoJSON(t, http.MethodGet, BaseURL+"/books/99999999", nil)

		assert.Equal(t, http.StatusNotFound, result.StatusCode)
		assert.Equal(t, []string{"Book not found"}, result.Errors(t))
	})

	t.Run("更新图书", func(t *testing.T) {
		created := CreateTestBook(t, "《旧书名》")

		result := DoJSON(t, http.MethodPut, fmt.Sprintf("%s/books/%d", BaseURL, created.ID),
			map[string]interface{}{"title": "《新书名》", "author": "新作者"})
		require.Equal(t, http.StatusOK, result.StatusCode)

		var book BookData
		result.Decode(t, &book)
		assert.Equal(t, "《新书名》", book.Title)
		assert.Equal(t, created.ISBN, book.ISBN, "ISBN不可修改")
	})

	t.Run("删除图书", func(t *testing.T) {
		created := CreateTestBook(t, "《删除测试》")

		result := DoJSON(t, http.MethodDelete, fmt.Sprintf("%s/books/%d", BaseURL, created.ID), nil)
		assert.Equal(t, http.StatusNoContent, result.StatusCode)

		// 删除后查询应404
		result = DoJSON(t, http.MethodGet, fmt.Sprintf("%s/books/%d", BaseURL, created.ID), nil)
		assert.Equal(t, http.StatusNotFound, result.StatusCode)
	})

	t.Run("分页查询回显分页参数", func(t *testing.T) {
		CreateTestBook(t, "《分页测试》")

		result := DoJSON(t, http.MethodGet, BaseURL+"/books?page=0&size=10", nil)
		require.Equal(t, http.StatusOK, result.StatusCode)

		var page PageData
		result.Decode(t, &page)

		assert.Equal(t, 0, page.Pageable.PageNumber, "页码从0开始")
		assert.Equal(t, 10, page.Pageable.PageSize)
		assert.GreaterOrEqual(t, page.TotalElements, int64(1))
	})
}

// TestLoanLifecycle 测试借阅全生命周期
func TestLoanLifecycle(t *testing.T) {
	RequireIntegration(t)

	t.Run("创建借阅返回数字ID", func(t *testing.T) {
		book := CreateTestBook(t, "《借阅测试》")

		result := DoJSON(t, http.MethodPost, BaseURL+"/loans", map[string]interface{}{
			"isbn":     book.ISBN,
			"customer": "Fulano",
			"email":    "fulano@example.com",
		})

		require.Equal(t, http.StatusCreated, result.StatusCode)

		// 对外契约:响应体是裸的数字ID
		var id uint
		require.NoError(t, json.Unmarshal(result.Body, &id))
		assert.NotZero(t, id)

		t.Logf("✓ 借阅创建成功，ID: %d", id)
	})

	t.Run("同一本书不能重复借出", func(t *testing.T) {
		book := CreateTestBook(t, "《并发借阅测试》")

		loanReq := map[string]interface{}{
			"isbn":     book.ISBN,
			"customer": "Fulano",
			"email":    "fulano@example.com",
		}

		result := DoJSON(t, http.MethodPost, BaseURL+"/loans", loanReq)
		require.Equal(t, http.StatusCreated, result.StatusCode)

		result = DoJSON(t, http.MethodPost, BaseURL+"/loans", loanReq)
		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
		assert.Equal(t, []string{"Book already in use"}, result.Errors(t))
	})

	t.Run("ISBN不存在应失败", func(t *testing.T) {
		result := DoJSON(t, http.MethodPost, BaseURL+"/loans", map[string]interface{}{
			"isbn":     "0000000000000",
			"customer": "Fulano",
			"email":    "fulano@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
		assert.Equal(t, []string{"Book not found for passed isbn"}, result.Errors(t))
	})

	t.Run("归还后可再次借出", func(t *testing.T) {
		book := CreateTestBook(t, "《归还测试》")

		loanReq := map[string]interface{}{
			"isbn":     book.ISBN,
			"customer": "Fulano",
			"email":    "fulano@example.com",
		}

		result := DoJSON(t, http.MethodPost, BaseURL+"/loans", loanReq)
		require.Equal(t, http.StatusCreated, result.StatusCode)

		var id uint
		require.NoError(t, json.Unmarshal(result.Body, &id))

		// 登记归还
		result = DoJSON(t, http.MethodPatch, fmt.Sprintf("%s/loans/%d", BaseURL, id),
			map[string]interface{}{"returned": true})
		require.Equal(t, http.StatusOK, result.StatusCode)

		var loan LoanData
		result.Decode(t, &loan)
		require.NotNil(t, loan.Returned)
		assert.True(t, *loan.Returned)

		// 再次借出应该成功
		loanReq["customer"] = "Ciclano"
		result = DoJSON(t, http.MethodPost, BaseURL+"/loans", loanReq)
		assert.Equal(t, http.StatusCreated, result.StatusCode)
	})

	t.Run("归还不存在的借阅返回404", func(t *testing.T) {
		result := DoJSON(t, http.MethodPatch, BaseURL+"/loans/99999999",
			map[string]interface{}{"returned": true})

		assert.Equal(t, http.StatusNotFound, result.StatusCode)
		assert.Equal(t, []string{"Loan not found"}, result.Errors(t))
	})

	t.Run("按ISBN或借阅人查询", func(t *testing.T) {
		book := CreateTestBook(t, "《查询测试》")

		result := DoJSON(t, http.MethodPost, BaseURL+"/loans", map[string]interface{}{
			"isbn":     book.ISBN,
			"customer": "QueryCustomer",
			"email":    "query@example.com",
		})
		require.Equal(t, http.StatusCreated, result.StatusCode)

		result = DoJSON(t, http.MethodGet,
			fmt.Sprintf("%s/loans?isbn=%s&page=0&size=10", BaseURL, book.ISBN), nil)
		require.Equal(t, http.StatusOK, result.StatusCode)

		var page PageData
		result.Decode(t, &page)
		require.GreaterOrEqual(t, page.TotalElements, int64(1))

		var loans []LoanData
		require.NoError(t, json.Unmarshal(page.Content, &loans))
		require.NotEmpty(t, loans)
		assert.Equal(t, book.ISBN, loans[0].Book.ISBN, "借阅记录应嵌套图书信息")
	})

	t.Run("图书借阅历史", func(t *testing.T) {
		book := CreateTestBook(t, "《历史测试》")

		result := DoJSON(t, http.MethodPost, BaseURL+"/loans", map[string]interface{}{
			"isbn":     book.ISBN,
			"customer": "Fulano",
			"email":    "fulano@example.com",
		})
		require.Equal(t, http.StatusCreated, result.StatusCode)

		result = DoJSON(t, http.MethodGet,
			fmt.Sprintf("%s/books/%d/loans", BaseURL, book.ID), nil)
		require.Equal(t, http.StatusOK, result.StatusCode)

		var page PageData
		result.Decode(t, &page)
		assert.Equal(t, int64(1), page.TotalElements)
	})
}
