package application

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

func TestValidateWalletAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		address       string
		expectedError error
	}{
		{
			name:    "valid_lowercase",
			address: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		},
		{
			name:    "valid_mixed_case",
			address: "0xAbCdEf0123456789aBcDeF0123456789abcdef01",
		},
		{
			name:          "missing_prefix",
			address:       "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			expectedError: ErrInvalidWalletAddress,
		},
		{
			name:          "too_short",
			address:       "0xaaaa",
			expectedError: ErrInvalidWalletAddress,
		},
		{
			name:          "non_hex_characters",
			address:       "0xzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
			expectedError: ErrInvalidWalletAddress,
		},
		{
			name:          "empty",
			address:       "",
			expectedError: ErrInvalidWalletAddress,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWalletAddress(tt.address)
			if tt.expectedError != nil {
				require.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateAmount(decimal.NewFromFloat(0.01)))
	require.ErrorIs(t, validateAmount(decimal.Zero), ErrInvalidAmount)
	require.ErrorIs(t, validateAmount(decimal.NewFromInt(-5)), ErrInvalidAmount)
}

func TestValidateBankInfo(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateBankInfo(testBankInfo))
	require.ErrorIs(t, validateBankInfo(nil), ErrMissingBankInfo)
	require.ErrorIs(t, validateBankInfo(&domain.BankInfo{
		BankName:      "Kookmin",
		AccountNumber: "  ",
		AccountHolder: "Hong Gildong",
	}), ErrMissingBankInfo)
}
