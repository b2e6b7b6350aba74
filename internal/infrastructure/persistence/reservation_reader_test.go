package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockReservationReader creates a GormReservationReader with a mocked SQL connection
func newMockReservationReader(t *testing.T) (*GormReservationReader, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormReservationReader(gormDB), mock, mockDB
}

func TestGormReservationReader_ReservedQuantity(t *testing.T) {
	t.Run("aggregates live order lines only", func(t *testing.T) {
		reader, mock, mockDB := newMockReservationReader(t)
		defer mockDB.Close()

		itemID := uuid.New()

		// the aggregate must join orders, skip voided lines and count only
		// statuses that still hold stock
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(order_lines\.quantity\), 0\) FROM "order_lines" JOIN orders ON orders\.id = order_lines\.order_id WHERE order_lines\.stock_item_id = \$1 AND order_lines\.voided_at IS NULL AND orders\.status IN \(\$2,\$3\)`).
			WithArgs(itemID, "UNPAID", "PARTIALLY_SETTLED").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(7))

		reserved, err := reader.ReservedQuantity(context.Background(), itemID)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), reserved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when no live lines reference the item", func(t *testing.T) {
		reader, mock, mockDB := newMockReservationReader(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(order_lines\.quantity\), 0\) FROM "order_lines"`).
			WithArgs(itemID, "UNPAID", "PARTIALLY_SETTLED").
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		reserved, err := reader.ReservedQuantity(context.Background(), itemID)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), reserved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReservationReader_ReservedQuantities(t *testing.T) {
	t.Run("groups reserved quantities by stock item", func(t *testing.T) {
		reader, mock, mockDB := newMockReservationReader(t)
		defer mockDB.Close()

		itemA := uuid.New()
		itemB := uuid.New()
		itemC := uuid.New()

		rows := sqlmock.NewRows([]string{"stock_item_id", "reserved"}).
			AddRow(itemA, 4).
			AddRow(itemB, 9)

		mock.ExpectQuery(`SELECT order_lines\.stock_item_id AS stock_item_id, COALESCE\(SUM\(order_lines\.quantity\), 0\) AS reserved FROM "order_lines" JOIN orders ON orders\.id = order_lines\.order_id WHERE order_lines\.stock_item_id IN \(\$1,\$2,\$3\) AND order_lines\.voided_at IS NULL AND orders\.status IN \(\$4,\$5\) GROUP BY order_lines\.stock_item_id`).
			WithArgs(itemA, itemB, itemC, "UNPAID", "PARTIALLY_SETTLED").
			WillReturnRows(rows)

		reserved, err := reader.ReservedQuantities(context.Background(), []uuid.UUID{itemA, itemB, itemC})

		assert.NoError(t, err)
		assert.Equal(t, int64(4), reserved[itemA])
		assert.Equal(t, int64(9), reserved[itemB])
		// items without live lines are simply absent
		_, found := reserved[itemC]
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input issues no query", func(t *testing.T) {
		reader, mock, mockDB := newMockReservationReader(t)
		defer mockDB.Close()

		reserved, err := reader.ReservedQuantities(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, reserved)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
