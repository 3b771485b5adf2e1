package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/libraryapi/internal/domain/book"
	"github.com/xiebiao/libraryapi/internal/domain/loan"
	apperrors "github.com/xiebiao/libraryapi/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. 查询接口统一Preload图书关联(对外响应嵌套图书信息)
// 2. 逾期查询和OR过滤直接落在SQL上，不在内存过滤
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		BookID:        l.BookID,
		Customer:      l.Customer,
		CustomerEmail: l.CustomerEmail,
		LoanDate:      l.LoanDate,
		Returned:      l.Returned,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to create loan")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找借阅
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := r.getDB(ctx).Preload("Book").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "failed to query loan")
	}

	return toLoanEntity(&model), nil
}

// Update 更新借阅记录
// 只有归还标记会变化，用Update限定更新列(避免覆盖loan_date等)
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	result := r.getDB(ctx).Model(&LoanModel{ID: l.ID}).
		Update("returned", l.Returned)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to update loan")
	}

	return nil
}

// ExistsActiveByBook 指定图书是否存在未归还借阅
// "未归还" = returned IS NULL OR returned = false，统一写成 returned IS NOT TRUE
func (r *loanRepository) ExistsActiveByBook(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&LoanModel{}).
		Where("book_id = ?", bookID).
		Where("returned IS NOT TRUE").
		Count(&count).Error

	if err != nil {
		return false, apperrors.Wrap(err, "failed to check active loan")
	}

	return count > 0, nil
}

// Find 分页条件查询
// 对外契约: 图书ISBN匹配 或 借阅人匹配(两个条件之间是逻辑OR)
func (r *loanRepository) Find(ctx context.Context, filter loan.Filter, page book.PageRequest) ([]*loan.Loan, int64, error) {
	query := r.getDB(ctx).Model(&LoanModel{}).
		Joins("JOIN books ON books.id = loans.book_id").
		Where("books.isbn = ? OR loans.customer = ?", filter.ISBN, filter.Customer)

	return r.findPage(ctx, query, page)
}

// FindByBook 查询指定图书的全部借阅记录(含已归还)
func (r *loanRepository) FindByBook(ctx context.Context, bookID uint, page book.PageRequest) ([]*loan.Loan, int64, error) {
	query := r.getDB(ctx).Model(&LoanModel{}).Where("book_id = ?", bookID)
	return r.findPage(ctx, query, page)
}

// FindLate 查询逾期借阅
// 条件: loan_date < cutoff(严格小于，恰好等于cutoff的不算) 且 returned IS NOT TRUE
func (r *loanRepository) FindLate(ctx context.Context, cutoff time.Time) ([]*loan.Loan, error) {
	var models []LoanModel
	err := r.getDB(ctx).Preload("Book").
		Where("loan_date < ?", cutoff).
		Where("returned IS NOT TRUE").
		Order("loan_date ASC").
		Find(&models).Error

	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query late loans")
	}

	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}

	return loans, nil
}

// findPage 公共分页查询逻辑(总数 + 当前页 + 关联图书)
func (r *loanRepository) findPage(ctx context.Context, query *gorm.DB, page book.PageRequest) ([]*loan.Loan, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count loans")
	}

	var models []LoanModel
	err := query.Preload("Book").
		Order("loans.id ASC").
		Limit(page.Size).Offset(page.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list loans")
	}

	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}

	return loans, total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(model *LoanModel) *loan.Loan {
	l := &loan.Loan{
		ID:            model.ID,
		BookID:        model.BookID,
		Customer:      model.Customer,
		CustomerEmail: model.CustomerEmail,
		LoanDate:      model.LoanDate,
		Returned:      model.Returned,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	if model.Book != nil {
		l.Book = toBookEntity(model.Book)
	}
	return l
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *loanRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}
