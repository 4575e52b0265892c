package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/printpos/backend/internal/domain/billing"
	"github.com/printpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInvoiceRepository creates a GormInvoiceRepository with a mocked SQL connection
func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func invoiceColumns() []string {
	return []string{"id", "tenant_id", "version", "invoice_number", "sequence",
		"customer_id", "customer_name", "total_price", "amount_paid", "status"}
}

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	t.Run("finds existing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		tenantID := uuid.New()
		customerID := uuid.New()

		rows := sqlmock.NewRows(invoiceColumns()).
			AddRow(invoiceID, tenantID, 1, "INV-001", 1, customerID, "Budi Santoso",
				decimal.NewFromInt(100000), decimal.Zero, "UNPAID")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(rows)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, invoiceID, invoice.ID)
		assert.Equal(t, "INV-001", invoice.InvoiceNumber)
		assert.Equal(t, billing.InvoiceStatusUnpaid, invoice.Status)
		assert.True(t, invoice.Outstanding().Equal(decimal.NewFromInt(100000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		invoice, err := repo.FindByID(context.Background(), invoiceID)

		assert.Nil(t, invoice)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindByNumber(t *testing.T) {
	t.Run("finds invoice by number within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoiceID := uuid.New()
		tenantID := uuid.New()
		customerID := uuid.New()

		rows := sqlmock.NewRows(invoiceColumns()).
			AddRow(invoiceID, tenantID, 1, "INV-001", 1, customerID, "Budi Santoso",
				decimal.NewFromInt(100000), decimal.Zero, "UNPAID")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND invoice_number = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, "INV-001", 1).
			WillReturnRows(rows)

		invoice, err := repo.FindByNumber(context.Background(), tenantID, "INV-001")

		assert.NoError(t, err)
		require.NotNil(t, invoice)
		assert.Equal(t, tenantID, invoice.TenantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_FindOutstanding(t *testing.T) {
	t.Run("returns open invoices ordered by sequence", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		customerID := uuid.New()

		rows := sqlmock.NewRows(invoiceColumns()).
			AddRow(uuid.New(), tenantID, 1, "INV-001", 1, customerID, "Budi Santoso",
				decimal.NewFromInt(100000), decimal.NewFromInt(40000), "PARTIAL").
			AddRow(uuid.New(), tenantID, 1, "INV-002", 2, customerID, "Budi Santoso",
				decimal.NewFromInt(50000), decimal.Zero, "UNPAID")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND customer_id = \$2 AND status IN \(\$3,\$4\) ORDER BY sequence ASC`).
			WithArgs(tenantID, customerID, "UNPAID", "PARTIAL").
			WillReturnRows(rows)

		invoices, err := repo.FindOutstanding(context.Background(), tenantID, customerID)

		assert.NoError(t, err)
		require.Len(t, invoices, 2)
		assert.Equal(t, "INV-001", invoices[0].InvoiceNumber)
		assert.Equal(t, int64(1), invoices[0].Sequence)
		assert.True(t, invoices[0].Outstanding().Equal(decimal.NewFromInt(60000)))
		assert.Equal(t, "INV-002", invoices[1].InvoiceNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty result for a customer with no debt", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE tenant_id = \$1 AND customer_id = \$2 AND status IN \(\$3,\$4\) ORDER BY sequence ASC`).
			WithArgs(tenantID, customerID, "UNPAID", "PARTIAL").
			WillReturnRows(sqlmock.NewRows(invoiceColumns()))

		invoices, err := repo.FindOutstanding(context.Background(), tenantID, customerID)

		assert.NoError(t, err)
		assert.Empty(t, invoices)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_CountByCustomer(t *testing.T) {
	t.Run("counts invoices for a customer", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		customerID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "invoices" WHERE tenant_id = \$1 AND customer_id = \$2`).
			WithArgs(tenantID, customerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountByCustomer(context.Background(), tenantID, customerID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_SaveWithLock(t *testing.T) {
	newVersionedInvoice := func(t *testing.T) *billing.Invoice {
		t.Helper()
		inv, err := billing.NewInvoice(uuid.New(), "INV-001", uuid.New(), "Budi Santoso",
			decimal.NewFromInt(100000), decimal.Zero)
		require.NoError(t, err)
		inv.IncrementVersion() // simulate an applied payment
		return inv
	}

	t.Run("updates when the version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice := newVersionedInvoice(t)

		mock.ExpectExec(`UPDATE "invoices" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), invoice)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a conflict when no row matches the version", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		invoice := newVersionedInvoice(t)

		mock.ExpectExec(`UPDATE "invoices" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), invoice)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_InterfaceCompliance(t *testing.T) {
	var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
}
