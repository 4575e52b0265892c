package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/billing"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
// Sequence is assigned by the database on insert and drives the FIFO
// settlement order.
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	Sequence      int64                 `gorm:"not null;autoIncrement;uniqueIndex:idx_invoices_sequence"`
	CustomerID    uuid.UUID             `gorm:"type:uuid;not null;index:idx_invoices_customer_status,priority:2"`
	CustomerName  string                `gorm:"type:varchar(200)"`
	TotalPrice    decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid    decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index:idx_invoices_customer_status,priority:3"`
	Note          string                `gorm:"type:text"`
	PaidAt        *time.Time
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
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
		InvoiceNumber: m.InvoiceNumber,
		Sequence:      m.Sequence,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		TotalPrice:    m.TotalPrice,
		AmountPaid:    m.AmountPaid,
		Status:        m.Status,
		Note:          m.Note,
		PaidAt:        m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.Sequence = inv.Sequence
	m.CustomerID = inv.CustomerID
	m.CustomerName = inv.CustomerName
	m.TotalPrice = inv.TotalPrice
	m.AmountPaid = inv.AmountPaid
	m.Status = inv.Status
	m.Note = inv.Note
	m.PaidAt = inv.PaidAt
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
// Payment rows are append-only; there are no update paths.
type PaymentModel struct {
	BaseModel
	TenantID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	InvoiceID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	InvoiceNumber string                `gorm:"type:varchar(50);not null"`
	CustomerID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Method        billing.PaymentMethod `gorm:"type:varchar(20);not null"`
	Note          string                `gorm:"type:text"`
	ActorID       *uuid.UUID            `gorm:"type:uuid"`
	PaidAt        time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		TenantID:      m.TenantID,
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		CustomerID:    m.CustomerID,
		Amount:        m.Amount,
		Method:        m.Method,
		Note:          m.Note,
		ActorID:       m.ActorID,
		PaidAt:        m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.InvoiceID = p.InvoiceID
	m.InvoiceNumber = p.InvoiceNumber
	m.CustomerID = p.CustomerID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Note = p.Note
	m.ActorID = p.ActorID
	m.PaidAt = p.PaidAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// PaymentAllocationModel is the persistence model for the PaymentAllocation
// audit record.
type PaymentAllocationModel struct {
	BaseModel
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (PaymentAllocationModel) TableName() string {
	return "payment_allocations"
}

// ToDomain converts the persistence model to a domain PaymentAllocation entity.
func (m *PaymentAllocationModel) ToDomain() *billing.PaymentAllocation {
	return &billing.PaymentAllocation{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		PaymentID:  m.PaymentID,
		InvoiceID:  m.InvoiceID,
		Amount:     m.Amount,
	}
}

// FromDomain populates the persistence model from a domain PaymentAllocation entity.
func (m *PaymentAllocationModel) FromDomain(a *billing.PaymentAllocation) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.TenantID = a.TenantID
	m.PaymentID = a.PaymentID
	m.InvoiceID = a.InvoiceID
	m.Amount = a.Amount
}

// PaymentAllocationModelFromDomain creates a new persistence model from a domain PaymentAllocation entity.
func PaymentAllocationModelFromDomain(a *billing.PaymentAllocation) *PaymentAllocationModel {
	m := &PaymentAllocationModel{}
	m.FromDomain(a)
	return m
}
