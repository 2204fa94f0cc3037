package pgsql

import (
	portsrepo "github.com/SscSPs/bank_rules_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RuleRepo:            newPgxRuleRepository(dbPool),
		BankTransactionRepo: newPgxBankTransactionRepository(dbPool),
	}
}
