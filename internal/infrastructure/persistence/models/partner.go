package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/partner"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	TenantAggregateModel
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_tenant_code,priority:2"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Phone          string          `gorm:"type:varchar(50);index"`
	Address        string          `gorm:"type:text"`
	DepositBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Note           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			TenantID: m.TenantID,
		},
		Code:           m.Code,
		Name:           m.Name,
		Phone:          m.Phone,
		Address:        m.Address,
		DepositBalance: m.DepositBalance,
		Note:           m.Note,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Phone = c.Phone
	m.Address = c.Address
	m.DepositBalance = c.DepositBalance
	m.Note = c.Note
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// DepositEntryModel is the persistence model for the DepositEntry ledger
// record. Entries are append-only; there are no update or delete paths.
type DepositEntryModel struct {
	BaseModel
	TenantID      uuid.UUID                `gorm:"type:uuid;not null;index:idx_deposit_entries_customer,priority:1"`
	CustomerID    uuid.UUID                `gorm:"type:uuid;not null;index:idx_deposit_entries_customer,priority:2"`
	EntryType     partner.DepositEntryType `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	BalanceBefore decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	SourceID      *string                  `gorm:"type:varchar(100);index"`
	Note          string                   `gorm:"type:text"`
	ActorID       *uuid.UUID               `gorm:"type:uuid"`
	EntryDate     time.Time                `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (DepositEntryModel) TableName() string {
	return "deposit_entries"
}

// ToDomain converts the persistence model to a domain DepositEntry entity.
func (m *DepositEntryModel) ToDomain() *partner.DepositEntry {
	return &partner.DepositEntry{
		BaseEntity:    m.BaseModel.ToDomain(),
		TenantID:      m.TenantID,
		CustomerID:    m.CustomerID,
		EntryType:     m.EntryType,
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		SourceID:      m.SourceID,
		Note:          m.Note,
		ActorID:       m.ActorID,
		EntryDate:     m.EntryDate,
	}
}

// FromDomain populates the persistence model from a domain DepositEntry entity.
func (m *DepositEntryModel) FromDomain(e *partner.DepositEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
	m.CustomerID = e.CustomerID
	m.EntryType = e.EntryType
	m.Amount = e.Amount
	m.BalanceBefore = e.BalanceBefore
	m.BalanceAfter = e.BalanceAfter
	m.SourceID = e.SourceID
	m.Note = e.Note
	m.ActorID = e.ActorID
	m.EntryDate = e.EntryDate
}

// DepositEntryModelFromDomain creates a new persistence model from a domain DepositEntry entity.
func DepositEntryModelFromDomain(e *partner.DepositEntry) *DepositEntryModel {
	m := &DepositEntryModel{}
	m.FromDomain(e)
	return m
}
