// db/repo_equipment_admin.go
package db

import (
	"context"
	"strings"
	"time"

	"campus_equipment_lending/models"
)

type AdminEquipmentRow struct {
	// Equipment fields
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Location  string    `json:"location"`
	Condition string    `json:"condition"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Current approved request (nullable)
	RequestID    *string    `json:"requestId,omitempty"`
	BorrowerID   *string    `json:"borrowerId,omitempty"`
	BorrowerName *string    `json:"borrowerName,omitempty"`
	BorrowedAt   *time.Time `json:"borrowedAt,omitempty"`
	ReturnDate   *string    `json:"returnDate,omitempty"`
}

type AdminEquipmentQuery struct {
	Q      string // 模糊搜索：name/category/location
	Status string // "", "Available", "Borrowed", "Under Repair"
	Page   int
	Size   int
}

type PagedAdminEquipment struct {
	Total int64               `json:"total"`
	Items []AdminEquipmentRow `json:"items"`
}

// ListEquipmentWithBorrower joins each unit with its current approved request,
// if any. The partial unique index guarantees at most one such request per
// unit, so a plain LEFT JOIN cannot fan out.
func (r *Repo) ListEquipmentWithBorrower(ctx context.Context, q AdminEquipmentQuery) (*PagedAdminEquipment, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Size <= 0 || q.Size > 200 {
		q.Size = 20
	}
	offset := (q.Page - 1) * q.Size

	db := r.DB.WithContext(ctx)

	qry := db.
		Table(models.EquipmentTable+" e").
		Select(`
			e.id, e.name, e.category, e.location, e.condition, e.status,
			e.created_at, e.updated_at,
			req.id          AS request_id,
			req.borrower_id AS borrower_id,
			e.borrowed_at,
			req.return_date,
			b.name          AS borrower_name
		`).
		Joins("LEFT JOIN "+models.RequestTable+" req ON req.equipment_id = e.id AND req.status = 'approved'").
		Joins("LEFT JOIN " + models.BorrowerTable + " b ON b.id = req.borrower_id")

	countQry := db.Table(models.EquipmentTable + " e")

	if s := strings.TrimSpace(q.Q); s != "" {
		pat := "%" + strings.ToLower(s) + "%"
		cond := "LOWER(e.name) LIKE ? OR LOWER(e.category) LIKE ? OR LOWER(e.location) LIKE ?"
		qry = qry.Where(cond, pat, pat, pat)
		countQry = countQry.Where(cond, pat, pat, pat)
	}
	if q.Status != "" {
		qry = qry.Where("e.status = ?", q.Status)
		countQry = countQry.Where("e.status = ?", q.Status)
	}

	var total int64
	if err := countQry.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []AdminEquipmentRow
	if err := qry.Order("e.created_at DESC").Offset(offset).Limit(q.Size).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return &PagedAdminEquipment{Total: total, Items: rows}, nil
}
