package dto

// CreateBookRequest HTTP创建图书请求
// validator tag说明:
// - required: 必填字段
// - max: 长度上限
type CreateBookRequest struct {
	Title  string `json:"title" binding:"required,max=200" example:"Clean Code"`
	Author string `json:"author" binding:"required,max=100" example:"Robert C. Martin"`
	ISBN   string `json:"isbn" binding:"required,max=20" example:"9780132350884"`
}

// UpdateBookRequest HTTP更新图书请求
// ISBN不可修改，请求体中不接收isbn字段
type UpdateBookRequest struct {
	Title  string `json:"title" binding:"omitempty,max=200" example:"Clean Code"`
	Author string `json:"author" binding:"omitempty,max=100" example:"Robert C. Martin"`
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID     uint   `json:"id" example:"1"`
	Title  string `json:"title" example:"Clean Code"`
	Author string `json:"author" example:"Robert C. Martin"`
	ISBN   string `json:"isbn" example:"9780132350884"`
}

// FindBooksQuery HTTP图书列表查询参数
// title/author为前缀匹配(忽略大小写)，页码从0开始
type FindBooksQuery struct {
	Title  string `form:"title" binding:"omitempty,max=200" example:"Clean"`
	Author string `form:"author" binding:"omitempty,max=100" example:"Robert"`
	Page   int    `form:"page" binding:"omitempty,min=0" example:"0"`
	Size   int    `form:"size" binding:"omitempty,min=1,max=100" example:"20"`
}
