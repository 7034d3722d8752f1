package memory

import (
	"context"
	"sync"

	"github.com/amirasaad/recordkeeper/pkg/domain/account"
	"github.com/amirasaad/recordkeeper/pkg/repository"
)

// AccountRepository keeps accounts keyed by their exact number.
type AccountRepository struct {
	s *store[*account.Account]
}

// NewAccountRepository returns an empty account repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{s: newStore[*account.Account](exactKey)}
}

func (r *AccountRepository) Create(_ context.Context, acc *account.Account) error {
	return r.s.insert(acc.Number, acc)
}

func (r *AccountRepository) Get(_ context.Context, number string) (*account.Account, error) {
	return r.s.get(number)
}

func (r *AccountRepository) List(_ context.Context) ([]*account.Account, error) {
	return r.s.list(), nil
}

// TransactionRepository is an append-only, insertion-ordered log.
type TransactionRepository struct {
	mu  sync.RWMutex
	txs []account.Transaction
}

// NewTransactionRepository returns an empty log.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// Append adds all txs in order, atomically with respect to readers.
func (r *TransactionRepository) Append(_ context.Context, txs ...account.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, txs...)
	return nil
}

func (r *TransactionRepository) List(_ context.Context) ([]account.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]account.Transaction, len(r.txs))
	copy(out, r.txs)
	return out, nil
}

var (
	_ repository.AccountRepository     = (*AccountRepository)(nil)
	_ repository.TransactionRepository = (*TransactionRepository)(nil)
)
