package account_test

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/recordkeeper/pkg/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	exitVal := m.Run()
	os.Exit(exitVal)
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    account.Kind
		wantErr error
	}{
		{"Savings", account.KindSavings, nil},
		{"savings", account.KindSavings, nil},
		{" CHECKING ", account.KindChecking, nil},
		{"Brokerage", "", account.ErrUnknownKind},
		{"", "", account.ErrUnknownKind},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := account.ParseKind(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		acc, err := account.New().WithNumber("A1").Build()
		require.NoError(t, err)
		assert.Equal(t, "A1", acc.Number)
		assert.Equal(t, account.KindSavings, acc.Kind)
		assert.True(t, acc.Balance.IsZero())
		assert.False(t, acc.CreatedAt.IsZero())
	})

	t.Run("missing number", func(t *testing.T) {
		_, err := account.New().WithNumber("  ").Build()
		assert.ErrorIs(t, err, account.ErrAccountNumberRequired)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := account.New().WithNumber("A1").WithKind("Brokerage").Build()
		assert.ErrorIs(t, err, account.ErrUnknownKind)
	})

	t.Run("negative opening balance", func(t *testing.T) {
		_, err := account.New().WithNumber("A1").WithBalance(decimal.NewFromInt(-1)).Build()
		assert.ErrorIs(t, err, account.ErrNegativeAmount)
	})
}

func TestDepositWithdraw(t *testing.T) {
	t.Parallel()
	acc, err := account.New().
		WithNumber("A1").
		WithKind(account.KindChecking).
		WithBalance(decimal.NewFromInt(100)).
		Build()
	require.NoError(t, err)

	require.NoError(t, acc.Deposit(decimal.RequireFromString("25.50")))
	assert.True(t, acc.Balance.Equal(decimal.RequireFromString("125.50")))

	require.NoError(t, acc.Withdraw(decimal.RequireFromString("125.50")))
	assert.True(t, acc.Balance.IsZero(), "withdrawing the full balance is allowed")

	assert.ErrorIs(t, acc.Deposit(decimal.NewFromInt(-5)), account.ErrNegativeAmount)
	assert.ErrorIs(t, acc.Withdraw(decimal.NewFromInt(-5)), account.ErrNegativeAmount)
	assert.True(t, acc.Balance.IsZero())
}

func TestWithdrawInsufficientFundsLeavesBalance(t *testing.T) {
	t.Parallel()
	amounts := []string{"100.01", "150", "1000000"}
	for _, amt := range amounts {
		t.Run(amt, func(t *testing.T) {
			acc, err := account.New().WithNumber("A1").WithBalance(decimal.NewFromInt(100)).Build()
			require.NoError(t, err)
			before := acc.Balance

			err = acc.Withdraw(decimal.RequireFromString(amt))
			assert.ErrorIs(t, err, account.ErrInsufficientFunds)
			assert.True(t, acc.Balance.Equal(before))
		})
	}
}

func TestTransactionDetails(t *testing.T) {
	t.Parallel()
	tx := account.NewTransaction("A1", decimal.NewFromInt(50), account.TransferToLabel("A2"))
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "Transfer to A2: 50.00 on Account A1", tx.Details())

	in := account.NewTransaction("A2", decimal.NewFromInt(50), account.TransferFromLabel("A1"))
	assert.Equal(t, "Transfer from A1: 50.00 on Account A2", in.Details())
	assert.NotEqual(t, tx.ID, in.ID)
}
