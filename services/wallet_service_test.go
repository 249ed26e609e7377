package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netwin-platform/models"
	"netwin-platform/store"
)

func newWalletService() (*WalletService, *NotificationService, store.Store) {
	st := store.NewMemory()
	notifications := NewNotificationService(st)
	return NewWalletService(st, notifications), notifications, st
}

func testUser(balance float64) *models.User {
	return &models.User{
		ID:            1001,
		Username:      "Tester",
		Currency:      models.CurrencyINR,
		KycStatus:     models.KycApproved,
		WalletBalance: balance,
	}
}

func TestBalanceTracksLedger(t *testing.T) {
	wallet, _, _ := newWalletService()
	user := testUser(0)

	_, err := wallet.Credit(user, 1000, models.TxDeposit, "Deposit via UPI")
	require.NoError(t, err)
	_, err = wallet.Debit(user, 100, models.TxEntryFee, "Entry fee")
	require.NoError(t, err)
	_, err = wallet.Credit(user, 450, models.TxPrize, "Prize money")
	require.NoError(t, err)
	_, err = wallet.Debit(user, 300, models.TxWithdrawal, "Withdrawal")
	require.NoError(t, err)

	assert.Equal(t, 1050.0, user.WalletBalance)

	// The replayed ledger matches the cached balance.
	replayed, err := wallet.ReplayBalance(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.WalletBalance, replayed)
}

func TestCreditRejectsDebitKinds(t *testing.T) {
	wallet, _, _ := newWalletService()
	user := testUser(0)

	_, err := wallet.Credit(user, 50, models.TxEntryFee, "wrong side")
	assert.Error(t, err)
	_, err = wallet.Debit(user, 50, models.TxDeposit, "wrong side")
	assert.Error(t, err)
	assert.Zero(t, user.WalletBalance)
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	wallet, _, _ := newWalletService()
	user := testUser(500)

	_, err := wallet.AddMoney(user, 0, "Card")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = wallet.AddMoney(user, -10, "Card")
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 500.0, user.WalletBalance)
}

func TestWithdrawCheckOrder(t *testing.T) {
	wallet, _, _ := newWalletService()
	req := func(amount float64) models.WithdrawalRequest {
		return models.WithdrawalRequest{
			Amount:      amount,
			BankDetails: models.BankDetails{AccountNumber: "12345678901234"},
		}
	}

	// Below the INR minimum.
	user := testUser(1000)
	_, err := wallet.Withdraw(user, req(50))
	assert.ErrorIs(t, err, ErrBelowMinWithdrawal)

	// Above the minimum but over the balance.
	_, err = wallet.Withdraw(user, req(5000))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Balance covers it but KYC is not approved.
	user.KycStatus = models.KycPending
	_, err = wallet.Withdraw(user, req(200))
	assert.ErrorIs(t, err, ErrKycRequired)

	// No failed attempt touched the wallet.
	assert.Equal(t, 1000.0, user.WalletBalance)
	txs, err := wallet.TransactionsForUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestWithdrawDebitsPendingTransaction(t *testing.T) {
	wallet, _, _ := newWalletService()
	user := testUser(1000)

	tx, err := wallet.Withdraw(user, models.WithdrawalRequest{
		Amount:      300,
		BankDetails: models.BankDetails{AccountNumber: "12345678901234"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.TxWithdrawal, tx.Type)
	assert.Equal(t, models.TxPending, tx.Status)
	assert.Equal(t, "Withdrawal to account ending with 1234", tx.Details)
	assert.Equal(t, 700.0, user.WalletBalance)
}

func TestSettlePendingWithdrawals(t *testing.T) {
	wallet, notifications, st := newWalletService()
	user := testUser(1000)

	_, err := wallet.Withdraw(user, models.WithdrawalRequest{
		Amount:      300,
		BankDetails: models.BankDetails{AccountNumber: "99887766"},
	})
	require.NoError(t, err)

	// Inside the processing window nothing settles.
	settled, err := wallet.SettlePendingWithdrawals(time.Now(), 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, settled)

	settled, err = wallet.SettlePendingWithdrawals(time.Now().Add(25*time.Hour), 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, settled, 1)
	assert.Equal(t, models.TxCompleted, settled[0].Status)

	all, _, err := store.GetJSON[[]models.WalletTransaction](st, store.KeyTransactions)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.TxCompleted, all[0].Status)

	// Settlement does not move the balance again.
	assert.Equal(t, 700.0, user.WalletBalance)

	list, err := notifications.ForUser(user.ID)
	require.NoError(t, err)
	var titles []string
	for _, n := range list {
		titles = append(titles, n.Title)
	}
	assert.Contains(t, titles, "Withdrawal Processed")
}

func TestDepositWritesNotification(t *testing.T) {
	wallet, notifications, _ := newWalletService()
	user := testUser(0)

	_, err := wallet.AddMoney(user, 1000, "UPI")
	require.NoError(t, err)

	list, err := notifications.ForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Money Added", list[0].Title)
	assert.Contains(t, list[0].Message, "₹1,000")
}

func TestSaveBalancePersistsStoredUser(t *testing.T) {
	wallet, _, st := newWalletService()
	user := testUser(0)
	require.NoError(t, store.SetJSON(st, store.KeyUser, *user))

	_, err := wallet.AddMoney(user, 250, "Card")
	require.NoError(t, err)

	stored, ok, err := store.GetJSON[models.User](st, store.KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 250.0, stored.WalletBalance)
}

func TestTransactionsForUserMostRecentFirst(t *testing.T) {
	wallet, _, _ := newWalletService()
	user := testUser(0)
	other := &models.User{ID: 2002, Currency: models.CurrencyUSD}

	_, err := wallet.AddMoney(user, 100, "Card")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = wallet.AddMoney(other, 999, "Card")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = wallet.AddMoney(user, 200, "Card")
	require.NoError(t, err)

	txs, err := wallet.TransactionsForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 200.0, txs[0].Amount)
	assert.Equal(t, 100.0, txs[1].Amount)
}

func TestConvertUsesFixedRates(t *testing.T) {
	wallet, _, _ := newWalletService()

	assert.Equal(t, 1.0, wallet.Convert(83, models.CurrencyINR, models.CurrencyUSD))
	assert.Equal(t, 1300.0, wallet.Convert(1, models.CurrencyUSD, models.CurrencyNGN))
	assert.Equal(t, 42.5, wallet.Convert(42.5, models.CurrencyINR, models.CurrencyINR))

	// INR → NGN goes through USD and rounds to 2 decimal places.
	got := wallet.Convert(100, models.CurrencyINR, models.CurrencyNGN)
	assert.InDelta(t, 1566.27, got, 0.01)
}
