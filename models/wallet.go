package models

import "time"

// Transaction kinds. Deposit and prize credit the balance; withdrawal and
// entry_fee debit it.
const (
	TxDeposit    = "deposit"
	TxWithdrawal = "withdrawal"
	TxPrize      = "prize"
	TxEntryFee   = "entry_fee"
)

const (
	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
)

// WalletTransaction is an immutable ledger entry. The sum of credit-kind
// amounts minus debit-kind amounts, applied in creation order, must equal the
// user's cached wallet balance after every write.
type WalletTransaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

// SignedEffect is the transaction's effect on the balance: positive for
// credits, negative for debits.
func (t WalletTransaction) SignedEffect() float64 {
	switch t.Type {
	case TxDeposit, TxPrize:
		return t.Amount
	case TxWithdrawal, TxEntryFee:
		return -t.Amount
	}
	return 0
}

type WithdrawalRequest struct {
	Amount      float64     `json:"amount"`
	BankDetails BankDetails `json:"bankDetails"`
}

type BankDetails struct {
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc,omitempty"`
	AccountName   string `json:"accountName"`
	BankName      string `json:"bankName"`
	SwiftCode     string `json:"swiftCode,omitempty"`
}
