package book

import (
	"context"
	"errors"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(ISBN唯一、ID必填)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// Create 创建图书
	// 业务规则: ISBN不能重复
	Create(ctx context.Context, title, author, isbn string) (*Book, error)

	// GetByID 根据ID获取图书
	GetByID(ctx context.Context, id uint) (*Book, error)

	// GetByISBN 根据ISBN获取图书(创建借阅时解析ISBN用)
	GetByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息
	// 业务规则: ID必填; 只更新书名/作者, ISBN不变
	Update(ctx context.Context, b *Book) (*Book, error)

	// Delete 删除图书
	// 业务规则: ID必填
	Delete(ctx context.Context, b *Book) error

	// Find 分页条件查询
	Find(ctx context.Context, filter Filter, page PageRequest) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create 创建图书
func (s *service) Create(ctx context.Context, title, author, isbn string) (*Book, error) {
	// 1. 检查ISBN是否已存在
	// 注意: 数据库的唯一索引是最终保障，这里的检查用于给出明确的业务错误
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrISBNDuplicate
	}

	// 2. 创建实体并持久化
	b := NewBook(title, author, isbn)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetByID 根据ID获取图书
func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByISBN 根据ISBN获取图书
func (s *service) GetByISBN(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// Update 更新图书信息
func (s *service) Update(ctx context.Context, b *Book) (*Book, error) {
	if b == nil || b.ID == 0 {
		return nil, ErrMissingID
	}

	// 1. 查询现有记录(同时确认存在性)
	current, err := s.repo.FindByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	// 2. 只允许修改书名/作者，ISBN保持原值
	current.UpdateInfo(b.Title, b.Author)

	// 3. 持久化
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	return current, nil
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, b *Book) error {
	if b == nil || b.ID == 0 {
		return ErrMissingID
	}
	return s.repo.Delete(ctx, b.ID)
}

// Find 分页条件查询
func (s *service) Find(ctx context.Context, filter Filter, page PageRequest) ([]*Book, int64, error) {
	return s.repo.Find(ctx, filter, page)
}
