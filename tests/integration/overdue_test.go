package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	appfinance "github.com/finflow/backend/internal/application/finance"
	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/infrastructure/persistence"
)

func TestOverdueSweep(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()

	tenantID := seedTenant(t, tdb)
	payableRepo := persistence.NewGormAccountPayableRepository(tdb.DB)
	receivableRepo := persistence.NewGormAccountReceivableRepository(tdb.DB)

	pastPayable := seedPayable(t, tdb, tenantID, 100, time.Now().AddDate(0, 0, -2))
	futurePayable := seedPayable(t, tdb, tenantID, 200, time.Now().AddDate(0, 0, 2))
	pastReceivable := seedReceivable(t, tdb, tenantID, 300, time.Now().AddDate(0, 0, -3))

	svc := appfinance.NewOverdueService(payableRepo, receivableRepo, zaptest.NewLogger(t))
	result, err := svc.Sweep(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PayablesMarked)
	assert.Equal(t, 1, result.ReceivablesMarked)

	stored, err := payableRepo.FindByIDForTenant(ctx, tenantID, pastPayable.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.PayableStatusOverdue, stored.Status)

	untouched, err := payableRepo.FindByIDForTenant(ctx, tenantID, futurePayable.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.PayableStatusPending, untouched.Status)

	storedReceivable, err := receivableRepo.FindByIDForTenant(ctx, tenantID, pastReceivable.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.ReceivableStatusOverdue, storedReceivable.Status)

	// A second sweep finds nothing left to mark.
	again, err := svc.Sweep(ctx, 100)
	require.NoError(t, err)
	assert.Zero(t, again.PayablesMarked)
	assert.Zero(t, again.ReceivablesMarked)

	// Overdue obligations remain settleable.
	account := seedBankAccount(t, tdb, tenantID)
	settle := newSettlementService(tdb)
	resp, err := settle.SettlePayable(ctx, tenantID, pastPayable.ID,
		appfinance.SettleRequest{BankAccountID: account.ID})
	require.NoError(t, err)
	require.NotNil(t, resp.Payable)
	assert.Equal(t, "paid", resp.Payable.Status)
}
