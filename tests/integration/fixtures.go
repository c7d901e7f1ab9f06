package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
	"github.com/finflow/backend/internal/infrastructure/persistence"
)

// seedTenant inserts a tenant row and returns its id
func seedTenant(t *testing.T, tdb *TestDB) uuid.UUID {
	t.Helper()

	tenant, err := identity.NewTenant("Acme Servicos LTDA", "Maria Souza",
		uuid.NewString()+"@acme.example")
	require.NoError(t, err)
	tenant.ClearDomainEvents()

	repo := persistence.NewGormTenantRepository(tdb.DB)
	require.NoError(t, repo.Save(context.Background(), tenant))
	return tenant.ID
}

// seedUser inserts a user row and returns its id
func seedUser(t *testing.T, tdb *TestDB) uuid.UUID {
	t.Helper()

	user, err := identity.NewUser(uuid.NewString()+"@user.example", "Joao Lima", "x")
	require.NoError(t, err)
	user.ClearDomainEvents()

	repo := persistence.NewGormUserRepository(tdb.DB)
	require.NoError(t, repo.Save(context.Background(), user))
	return user.ID
}

// seedBankAccount inserts an active checking account for the tenant
func seedBankAccount(t *testing.T, tdb *TestDB, tenantID uuid.UUID) *finance.BankAccount {
	t.Helper()

	account, err := finance.NewBankAccount(tenantID, "Conta Principal", "Banco do Brasil",
		finance.BankAccountTypeChecking, "0001", "12345-6",
		valueobject.NewMoneyBRL(decimal.NewFromInt(10000)))
	require.NoError(t, err)

	repo := persistence.NewGormBankAccountRepository(tdb.DB)
	require.NoError(t, repo.Save(context.Background(), account))
	return account
}

// seedPayable inserts a pending payable due at the given date
func seedPayable(t *testing.T, tdb *TestDB, tenantID uuid.UUID, amount int64, dueDate time.Time) *finance.AccountPayable {
	t.Helper()

	payable, err := finance.NewAccountPayable(tenantID, "Aluguel do escritorio",
		valueobject.NewMoneyBRL(decimal.NewFromInt(amount)), "rent",
		finance.PayableSourceManual, dueDate, "Imobiliaria Central")
	require.NoError(t, err)
	payable.ClearDomainEvents()

	repo := persistence.NewGormAccountPayableRepository(tdb.DB)
	require.NoError(t, repo.Save(context.Background(), payable))
	return payable
}

// seedReceivable inserts a pending receivable due at the given date
func seedReceivable(t *testing.T, tdb *TestDB, tenantID uuid.UUID, amount int64, dueDate time.Time) *finance.AccountReceivable {
	t.Helper()

	receivable, err := finance.NewAccountReceivable(tenantID, "Fatura de consultoria",
		valueobject.NewMoneyBRL(decimal.NewFromInt(amount)), "services",
		finance.ReceivableSourceManual, dueDate, "Cliente Alfa")
	require.NoError(t, err)
	receivable.ClearDomainEvents()

	repo := persistence.NewGormAccountReceivableRepository(tdb.DB)
	require.NoError(t, repo.Save(context.Background(), receivable))
	return receivable
}
