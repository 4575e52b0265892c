package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/application/settlement"
	"github.com/printpos/backend/internal/domain/partner"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/printpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSettlementStore applies settlement batches and deposit top-ups in a
// single database transaction. Either every write in a batch lands or none
// does, so the cached deposit balance and the ledger can never diverge.
type GormSettlementStore struct {
	db *gorm.DB
}

// NewGormSettlementStore creates a new GormSettlementStore
func NewGormSettlementStore(db *gorm.DB) *GormSettlementStore {
	return &GormSettlementStore{db: db}
}

// Apply writes the full settlement batch inside one transaction: payment and
// allocation records first, then the invoice aggregates with optimistic
// locking, and the deposit debit last. On any error the transaction rolls
// back and no invoice counts as settled.
func (s *GormSettlementStore) Apply(ctx context.Context, batch *settlement.Batch) ([]uuid.UUID, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, payment := range batch.Payments {
			if err := tx.Create(models.PaymentModelFromDomain(payment)).Error; err != nil {
				return err
			}
		}

		for _, allocation := range batch.Allocations {
			if err := tx.Create(models.PaymentAllocationModelFromDomain(allocation)).Error; err != nil {
				return err
			}
		}

		for _, invoice := range batch.Invoices {
			model := models.InvoiceModelFromDomain(invoice)
			result := tx.Model(model).
				Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
				Updates(model)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The invoice record has been modified by another transaction")
			}
		}

		if batch.DepositEntry != nil {
			if err := tx.Create(models.DepositEntryModelFromDomain(batch.DepositEntry)).Error; err != nil {
				return err
			}

			model := models.CustomerModelFromDomain(batch.Customer)
			result := tx.Model(model).
				Where("id = ? AND version = ?", batch.Customer.ID, batch.Customer.Version-1).
				Updates(model)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The customer record has been modified by another transaction")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	settled := make([]uuid.UUID, len(batch.Invoices))
	for i, invoice := range batch.Invoices {
		settled[i] = invoice.ID
	}
	return settled, nil
}

// ApplyTopUp writes a deposit top-up inside one transaction: the ledger
// entry and the customer's cached balance move together.
func (s *GormSettlementStore) ApplyTopUp(ctx context.Context, customer *partner.Customer, entry *partner.DepositEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.DepositEntryModelFromDomain(entry)).Error; err != nil {
			return err
		}

		model := models.CustomerModelFromDomain(customer)
		result := tx.Model(model).
			Where("id = ? AND version = ?", customer.ID, customer.Version-1).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The customer record has been modified by another transaction")
		}
		return nil
	})
}

// Ensure GormSettlementStore implements the application store ports
var (
	_ settlement.SettlementStore = (*GormSettlementStore)(nil)
	_ settlement.DepositStore    = (*GormSettlementStore)(nil)
)
