package dto

// CreateLoanRequest HTTP创建借阅请求
// 借阅按ISBN发起(前台扫码场景)，不直接传图书ID
type CreateLoanRequest struct {
	ISBN     string `json:"isbn" binding:"required,max=20" example:"9780132350884"`
	Customer string `json:"customer" binding:"required,max=100" example:"Fulano"`
	Email    string `json:"email" binding:"required,email,max=200" example:"fulano@example.com"`
}

// ReturnLoanRequest HTTP归还登记请求
// returned用指针接收:显式传false与不传字段是不同语义
type ReturnLoanRequest struct {
	Returned *bool `json:"returned" binding:"required" example:"true"`
}

// LoanBookResponse 借阅响应中嵌套的图书信息
type LoanBookResponse struct {
	ID     uint   `json:"id" example:"1"`
	Title  string `json:"title" example:"Clean Code"`
	Author string `json:"author" example:"Robert C. Martin"`
	ISBN   string `json:"isbn" example:"9780132350884"`
}

// LoanResponse HTTP借阅响应
// returned是三态:true(已归还)/false(未归还)/null(从未登记)
type LoanResponse struct {
	ID            uint              `json:"id" example:"1"`
	Customer      string            `json:"customer" example:"Fulano"`
	CustomerEmail string            `json:"customer_email" example:"fulano@example.com"`
	LoanDate      string            `json:"loan_date" example:"2025-01-15"`
	Returned      *bool             `json:"returned"`
	Book          *LoanBookResponse `json:"book,omitempty"`
}

// FindLoansQuery HTTP借阅列表查询参数
// isbn与customer之间是逻辑OR关系
type FindLoansQuery struct {
	ISBN     string `form:"isbn" binding:"omitempty,max=20" example:"9780132350884"`
	Customer string `form:"customer" binding:"omitempty,max=100" example:"Fulano"`
	Page     int    `form:"page" binding:"omitempty,min=0" example:"0"`
	Size     int    `form:"size" binding:"omitempty,min=1,max=100" example:"20"`
}
