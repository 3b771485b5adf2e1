package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/libraryapi/internal/application/loan"
	"github.com/xiebiao/libraryapi/internal/interface/http/dto"
	"github.com/xiebiao/libraryapi/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	createLoanUseCase *apploan.CreateLoanUseCase
	returnLoanUseCase *apploan.ReturnLoanUseCase
	findLoansUseCase  *apploan.FindLoansUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	createLoanUseCase *apploan.CreateLoanUseCase,
	returnLoanUseCase *apploan.ReturnLoanUseCase,
	findLoansUseCase *apploan.FindLoansUseCase,
) *LoanHandler {
	return &LoanHandler{
		createLoanUseCase: createLoanUseCase,
		returnLoanUseCase: returnLoanUseCase,
		findLoansUseCase:  findLoansUseCase,
	}
}

// toLoanDTO 应用层响应 → HTTP响应
func toLoanDTO(r *apploan.LoanResponse) *dto.LoanResponse {
	resp := &dto.LoanResponse{
		ID:            r.ID,
		Customer:      r.Customer,
		CustomerEmail: r.CustomerEmail,
		LoanDate:      r.LoanDate,
		Returned:      r.Returned,
	}
	if r.Book != nil {
		resp.Book = &dto.LoanBookResponse{
			ID:     r.Book.ID,
			Title:  r.Book.Title,
			Author: r.Book.Author,
			ISBN:   r.Book.ISBN,
		}
	}
	return resp
}

// Create 创建借阅
// @Summary      创建借阅
// @Description  按ISBN借出一本图书;同一本书已借出未归还时拒绝
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLoanRequest true "借阅信息"
// @Success      201 {integer} int "新借阅的ID"
// @Failure      400 {object} response.ErrorBody "ISBN不存在或图书已借出"
// @Router       /api/loans [post]
func (h *LoanHandler) Create(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	id, err := h.createLoanUseCase.Execute(c.Request.Context(), apploan.CreateLoanRequest{
		ISBN:          req.ISBN,
		Customer:      req.Customer,
		CustomerEmail: req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 对外契约:响应体为新借阅的数字ID(不包装对象)
	c.JSON(http.StatusCreated, id)
}

// Return 归还登记
// @Summary      归还登记
// @Description  登记归还标记，可重复调用(幂等)
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        id path int true "借阅ID"
// @Param        request body dto.ReturnLoanRequest true "归还标记"
// @Success      200 {object} dto.LoanResponse
// @Failure      404 {object} response.ErrorBody "借阅不存在"
// @Router       /api/loans/{id} [patch]
func (h *LoanHandler) Return(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.returnLoanUseCase.Execute(c.Request.Context(), apploan.ReturnLoanRequest{
		ID:       id,
		Returned: *req.Returned,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, toLoanDTO(result))
}

// Find 借阅分页查询
// @Summary      借阅分页查询
// @Description  按图书ISBN或借阅人过滤(两个条件之间是逻辑OR)
// @Tags         借阅
// @Produce      json
// @Param        isbn query string false "图书ISBN"
// @Param        customer query string false "借阅人姓名"
// @Param        page query int false "页码(从0开始)"
// @Param        size query int false "每页数量(默认20, 最大100)"
// @Success      200 {object} response.Page{content=[]dto.LoanResponse}
// @Router       /api/loans [get]
func (h *LoanHandler) Find(c *gin.Context) {
	var query dto.FindLoansQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.findLoansUseCase.Execute(c.Request.Context(), apploan.FindLoansRequest{
		ISBN:     query.ISBN,
		Customer: query.Customer,
		Page:     query.Page,
		Size:     query.Size,
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
