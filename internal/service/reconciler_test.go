package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoice-wallet-engine/internal/core/domain"
	"invoice-wallet-engine/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func TestReconciler_SweepExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walletRepo := mocks.NewMockWalletRepository(ctrl)
	reserves := mocks.NewMockReserveLedger(ctrl)
	r := NewReconciler(walletRepo, reserves, zerolog.Nop())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	walletRepo.EXPECT().ExpireDue(gomock.Any(), now).Return(int64(3), nil)
	r.SweepExpired(context.Background())
}

func TestReconciler_SweepExpired_ErrorSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walletRepo := mocks.NewMockWalletRepository(ctrl)
	reserves := mocks.NewMockReserveLedger(ctrl)
	r := NewReconciler(walletRepo, reserves, zerolog.Nop())

	walletRepo.EXPECT().ExpireDue(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
	// Must not panic; next run retries.
	r.SweepExpired(context.Background())
}

func TestReconciler_RefreshReserveMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	walletRepo := mocks.NewMockWalletRepository(ctrl)
	reserves := mocks.NewMockReserveLedger(ctrl)
	r := NewReconciler(walletRepo, reserves, zerolog.Nop())

	reserves.EXPECT().List(gomock.Any()).Return([]domain.ReserveAccount{
		{Currency: "USD", TotalFiatReserved: 100, TotalTokensMinted: 100},
	}, nil)
	r.RefreshReserveMetrics(context.Background())
}
