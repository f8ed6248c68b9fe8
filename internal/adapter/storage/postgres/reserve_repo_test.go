package postgres

import (
	"context"
	"testing"
	"time"

	"invoice-wallet-engine/internal/core/domain"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reserveColumns() []string {
	return []string{"currency", "total_fiat_reserved", "total_tokens_minted", "updated_at"}
}

func TestReserveRepo_ApplyMint(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReserveRepo(mock)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reserve_accounts .+ ON CONFLICT \\(currency\\) DO UPDATE").
		WithArgs("USD", int64(500), int64(500)).
		WillReturnRows(pgxmock.NewRows(reserveColumns()).
			AddRow("USD", int64(1500), int64(1500), now))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	acct, err := repo.ApplyMint(context.Background(), tx, "USD", 500, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), acct.TotalFiatReserved)
	assert.Equal(t, int64(1500), acct.TotalTokensMinted)
	assert.Equal(t, domain.ReserveStatusHealthy, acct.Status())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRepo_Get_Untracked(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReserveRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM reserve_accounts WHERE currency").
		WithArgs("JPY").
		WillReturnRows(pgxmock.NewRows(reserveColumns()))

	acct, err := repo.Get(context.Background(), "JPY")
	require.NoError(t, err)
	assert.Nil(t, acct)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReserveRepo(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM reserve_accounts ORDER BY currency").
		WillReturnRows(pgxmock.NewRows(reserveColumns()).
			AddRow("EUR", int64(100), int64(100), now).
			AddRow("USD", int64(200), int64(200), now))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "EUR", accounts[0].Currency)
	assert.Equal(t, "USD", accounts[1].Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}
