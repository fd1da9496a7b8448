package db

import (
	"context"
	"errors"
	"strings"

	"campus_equipment_lending/lending"
	"campus_equipment_lending/models"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// Repo is the document layer the lifecycle runs on.
var _ lending.Store = (*Repo)(nil)

// Borrowers

func (r *Repo) FindBorrowerByID(ctx context.Context, id string) (*models.Borrower, error) {
	var b models.Borrower
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repo) CreateBorrower(ctx context.Context, b *models.Borrower) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

type ListBorrowersResult struct {
	Borrowers []models.Borrower `json:"borrowers"`
	Total     int64             `json:"total"`
}

// 列表（分页 + 关键词，关键词匹配学号/姓名）
func (r *Repo) ListBorrowers(ctx context.Context, q string, page, size int) (ListBorrowersResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Borrower{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(id) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListBorrowersResult{}, err
	}

	var borrowers []models.Borrower
	if err := tx.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&borrowers).Error; err != nil {
		return ListBorrowersResult{}, err
	}
	return ListBorrowersResult{Borrowers: borrowers, Total: total}, nil
}

func (r *Repo) CountBorrowers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Borrower{}).Count(&n).Error
	return n, err
}

func (r *Repo) TouchBorrowerSeen(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&models.Borrower{}).
		Where("id = ?", id).
		Update("last_seen_at", gorm.Expr("NOW()")).Error
}

// Admins

func (r *Repo) FindAdminByID(ctx context.Context, id string) (*models.Admin, error) {
	var a models.Admin
	if err := r.DB.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
