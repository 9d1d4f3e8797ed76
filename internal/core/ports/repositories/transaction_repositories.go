package repositories

import (
	"context"

	"github.com/axxyfin/axxy_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves all transactions, newest first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsInRange retrieves transactions with startDate <= date <= endDate,
	// optionally restricted to one account (empty accountID means no filter).
	ListTransactionsInRange(ctx context.Context, startDate, endDate, accountID string) ([]domain.Transaction, error)

	// SumExpensesByCategory returns the total expense amount per category
	// across all transactions. Used to derive Budget.Spent.
	SumExpensesByCategory(ctx context.Context) (map[string]decimal.Decimal, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransactionInTx persists a new transaction within an existing
	// database transaction so balance updates land atomically with it.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransactionInTx rewrites an existing transaction's fields.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// DeleteTransactionInTx removes a transaction.
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionManager
}
