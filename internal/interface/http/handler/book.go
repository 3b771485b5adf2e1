package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/libraryapi/internal/application/book"
	"github.com/xiebiao/libraryapi/internal/interface/http/dto"
	"github.com/xiebiao/libraryapi/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase    *appbook.CreateBookUseCase
	getBookUseCase       *appbook.GetBookUseCase
	updateBookUseCase    *appbook.UpdateBookUseCase
	deleteBookUseCase    *appbook.DeleteBookUseCase
	findBooksUseCase     *appbook.FindBooksUseCase
	findBookLoansUseCase *appbook.FindBookLoansUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	findBooksUseCase *appbook.FindBooksUseCase,
	findBookLoansUseCase *appbook.FindBookLoansUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase:    createBookUseCase,
		getBookUseCase:       getBookUseCase,
		updateBookUseCase:    updateBookUseCase,
		deleteBookUseCase:    deleteBookUseCase,
		findBooksUseCase:     findBooksUseCase,
		findBookLoansUseCase: findBookLoansUseCase,
	}
}

// toBookDTO 应用层响应 → HTTP响应
func toBookDTO(r *appbook.BookResponse) *dto.BookResponse {
	return &dto.BookResponse{
		ID:     r.ID,
		Title:  r.Title,
		Author: r.Author,
		ISBN:   r.ISBN,
	}
}

// Create 创建图书
// @Summary      创建图书
// @Description  登记一本新图书，ISBN不能重复
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorBody "参数错误或ISBN重复"
// @Router       /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:  req.Title,
		Author: req.Author,
		ISBN:   req.ISBN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookDTO(result))
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookDTO(result))
}

// Update 更新图书
// @Summary      更新图书
// @Description  更新书名/作者，ISBN不可修改
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:     id,
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookDTO(result))
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204 "已删除"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Find 图书分页查询
// @Summary      图书分页查询
// @Description  按书名/作者前缀过滤(忽略大小写)，页码从0开始
// @Tags         图书
// @Produce      json
// @Param        title query string false "书名前缀"
// @Param        author query string false "作者前缀"
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量(默认20, 最大100)"
// @Success      200 {object} response.Page{content=[]dto.BookResponse}
// @Router       /api/books [get]
func (h *BookHandler) Find(c *gin.Context) {
	var query dto.FindBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.findBooksUseCase.Execute(c.Request.Context(), appbook.FindBooksRequest{
		Title:  query.Title,
		Author: query.Author,
		Page:   query.Page,
		Size:   query.Size,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	content := make([]*dto.BookResponse, len(result.Content))
	for i, b := range result.Content {
		content[i] = toBookDTO(b)
	}

	response.SuccessWithPage(c, content, result.Total, result.Page, result.Size)
}

// FindLoans 图书借阅历史
// @Summary      图书借阅历史
// @Description  查询指定图书的全部借阅记录(含已归还)
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量"
// @Success      200 {object} response.Page{content=[]dto.LoanResponse}
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Router       /api/books/{id}/loans [get]
func (h *BookHandler) FindLoans(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var query dto.FindLoansQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.findBookLoansUseCase.Execute(c.Request.Context(), appbook.FindBookLoansRequest{
		BookID: id,
		Page:   query.Page,
		Size:   query.Size,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	content := make([]*dto.LoanResponse, len(result.Content))
	for i, l := range result.Content {
		content[i] = toLoanDTO(l)
	}

	response.SuccessWithPage(c, content, result.Total, result.Page, result.Size)
}
