package application

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/otcdex/otc-daemon/internal/core/domain"
)

var walletAddressRegexp = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func validateWalletAddress(address string) error {
	if !walletAddressRegexp.MatchString(address) {
		return ErrInvalidWalletAddress
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

func validateBankInfo(bankInfo *domain.BankInfo) error {
	if bankInfo == nil {
		return ErrMissingBankInfo
	}
	if strings.TrimSpace(bankInfo.BankName) == "" ||
		strings.TrimSpace(bankInfo.AccountNumber) == "" ||
		strings.TrimSpace(bankInfo.AccountHolder) == "" {
		return ErrMissingBankInfo
	}
	return nil
}
