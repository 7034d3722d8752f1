package ledger_test

import (
	"context"

	"github.com/amirasaad/recordkeeper/pkg/domain/account"
	"github.com/amirasaad/recordkeeper/pkg/repository"
	"github.com/stretchr/testify/mock"
)

// mockAccountRepository is a testify mock of repository.AccountRepository.
type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) Create(ctx context.Context, acc *account.Account) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *mockAccountRepository) Get(ctx context.Context, number string) (*account.Account, error) {
	args := m.Called(ctx, number)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *mockAccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	accs, _ := args.Get(0).([]*account.Account)
	return accs, args.Error(1)
}

// failingAppend serves reads from the wrapped repository and hands Append to
// the mock.
type failingAppend struct {
	repository.TransactionRepository
	mock.Mock
}

func (m *failingAppend) Append(ctx context.Context, txs ...account.Transaction) error {
	return m.Called(ctx, txs).Error(0)
}
