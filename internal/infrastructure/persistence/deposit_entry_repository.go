package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/partner"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/printpos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDepositEntryRepository implements DepositEntryRepository using GORM.
// The ledger is append-only: entries are only ever inserted.
type GormDepositEntryRepository struct {
	db *gorm.DB
}

// NewGormDepositEntryRepository creates a new GormDepositEntryRepository
func NewGormDepositEntryRepository(db *gorm.DB) *GormDepositEntryRepository {
	return &GormDepositEntryRepository{db: db}
}

// Append inserts a new ledger entry
func (r *GormDepositEntryRepository) Append(ctx context.Context, entry *partner.DepositEntry) error {
	model := models.DepositEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByCustomer finds ledger entries for a customer matching the filter,
// newest first by default
func (r *GormDepositEntryRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]partner.DepositEntry, error) {
	var entryModels []models.DepositEntryModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DepositEntryModel{}).
			Where("tenant_id = ? AND customer_id = ?", tenantID, customerID),
		filter,
	)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]partner.DepositEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// CountByCustomer counts ledger entries for a customer
func (r *GormDepositEntryRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DepositEntryModel{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByCustomer returns the net ledger total for a customer: deposits minus
// usages. This is the authoritative deposit balance.
func (r *GormDepositEntryRepository) SumByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&models.DepositEntryModel{}).
		Select("COALESCE(SUM(CASE WHEN entry_type = ? THEN amount ELSE -amount END), 0)", partner.DepositEntryTypeDeposit).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// applyFilter applies filter options to the query
func (r *GormDepositEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "entry_type":
			query = query.Where("entry_type = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("entry_date DESC")
	}

	return query
}

// Ensure GormDepositEntryRepository implements DepositEntryRepository
var _ partner.DepositEntryRepository = (*GormDepositEntryRepository)(nil)
