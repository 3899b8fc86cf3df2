package ledger

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGORMOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	return gdb, mock
}

// Saldo dan status harus commit bersama: write lewat WithTx wajib jalan di
// koneksi transaksi, bukan di pool repo.
func TestWithTx_UpdateRunsOnTransactionConnection(t *testing.T) {
	gdb, poolMock := newGORMOverMock(t)
	repo := NewRepository(gdb)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)

	txMock.ExpectExec(regexp.QuoteMeta(`UPDATE "leave_balances" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectRollback()

	balance := &LeaveBalance{EmployeeID: uuid.New(), LastYear: 2, CurrentYear: 3}
	assert.NoError(t, repo.WithTx(tx).Update(context.Background(), balance))
	assert.NoError(t, tx.Rollback())

	// Pool repo tidak pernah disentuh; rollback membatalkan update-nya.
	assert.NoError(t, poolMock.ExpectationsWereMet())
	assert.NoError(t, txMock.ExpectationsWereMet())
}

func TestWithTx_RolledBackDebitNeverReachesPool(t *testing.T) {
	gdb, poolMock := newGORMOverMock(t)
	repo := NewRepository(gdb)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	tx, err := txDB.Begin()
	assert.NoError(t, err)

	txMock.ExpectExec(regexp.QuoteMeta(`UPDATE "leave_balances" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Kegagalan setelah debit: tidak ada commit, hanya rollback.
	txMock.ExpectRollback()

	balance := &LeaveBalance{EmployeeID: uuid.New(), ChangeOff: 2.0}
	assert.NoError(t, balance.DebitChangeOff(1.5))
	assert.NoError(t, repo.WithTx(tx).Update(context.Background(), balance))
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, poolMock.ExpectationsWereMet())
	assert.NoError(t, txMock.ExpectationsWereMet())
}
