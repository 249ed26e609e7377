package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"netwin-platform/models"
	"netwin-platform/store"
	"netwin-platform/utils"
)

// WalletService records deposit/withdrawal/entry-fee/prize transactions and
// keeps the cached user balance in step with the ledger: after every write,
// the balance equals the sum of credit amounts minus debit amounts applied in
// creation order. The ledger append itself does not lock the balance against
// overdraw — composite flows (withdraw, join) pre-check before debiting.
type WalletService struct {
	mu            sync.Mutex
	store         store.Store
	notifications *NotificationService
	leaderboard   *LeaderboardService
}

func NewWalletService(s store.Store, notifications *NotificationService) *WalletService {
	return &WalletService{store: s, notifications: notifications}
}

// SetLeaderboard wires the optional earnings leaderboard; prize credits feed
// it when present.
func (s *WalletService) SetLeaderboard(lb *LeaderboardService) {
	s.leaderboard = lb
}

// Credit appends a credit-kind transaction and raises the user's balance.
func (s *WalletService) Credit(user *models.User, amount float64, kind, detail string) (*models.WalletTransaction, error) {
	if kind != models.TxDeposit && kind != models.TxPrize {
		return nil, fmt.Errorf("credit: unsupported transaction kind %q", kind)
	}
	return s.append(user, amount, kind, detail)
}

// Debit appends a debit-kind transaction and lowers the user's balance.
func (s *WalletService) Debit(user *models.User, amount float64, kind, detail string) (*models.WalletTransaction, error) {
	if kind != models.TxWithdrawal && kind != models.TxEntryFee {
		return nil, fmt.Errorf("debit: unsupported transaction kind %q", kind)
	}
	return s.append(user, amount, kind, detail)
}

func (s *WalletService) append(user *models.User, amount float64, kind, detail string) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	status := models.TxCompleted
	if kind == models.TxWithdrawal {
		// Withdrawals wait for manual processing.
		status = models.TxPending
	}

	tx := models.WalletTransaction{
		ID:        utils.NewID(),
		UserID:    user.ID,
		Amount:    amount,
		Type:      kind,
		Status:    status,
		Details:   detail,
		CreatedAt: time.Now(),
	}

	all, _, err := store.GetJSON[[]models.WalletTransaction](s.store, store.KeyTransactions)
	if err != nil {
		return nil, err
	}
	all = append(all, tx)
	if err := store.SetJSON(s.store, store.KeyTransactions, all); err != nil {
		return nil, err
	}

	// The cached balance is what every read path uses; it must move in the
	// same step as the ledger append.
	user.WalletBalance += tx.SignedEffect()
	if err := s.saveBalance(user); err != nil {
		return nil, err
	}

	s.notify(user, tx)
	return &tx, nil
}

// saveBalance persists the updated balance onto the stored user record when
// it is the same user.
func (s *WalletService) saveBalance(user *models.User) error {
	stored, ok, err := store.GetJSON[models.User](s.store, store.KeyUser)
	if err != nil {
		return err
	}
	if !ok || stored.ID != user.ID {
		return nil
	}
	stored.WalletBalance = user.WalletBalance
	return store.SetJSON(s.store, store.KeyUser, stored)
}

func (s *WalletService) notify(user *models.User, tx models.WalletTransaction) {
	formatted := utils.FormatCurrency(tx.Amount, user.Currency)
	var title, message string
	switch tx.Type {
	case models.TxDeposit:
		title = "Money Added"
		message = fmt.Sprintf("%s has been added to your wallet.", formatted)
	case models.TxWithdrawal:
		title = "Withdrawal Requested"
		message = fmt.Sprintf("Your withdrawal request for %s is being processed.", formatted)
	case models.TxEntryFee:
		title = "Entry Fee Paid"
		message = fmt.Sprintf("%s entry fee debited. %s", formatted, tx.Details)
	case models.TxPrize:
		title = "Prize Credited"
		message = fmt.Sprintf("%s prize money has been credited to your wallet.", formatted)
	}
	if _, err := s.notifications.Add(user.ID, title, message, models.NotifWallet); err != nil {
		log.Printf("⚠️  wallet: failed to add notification for user %d: %v", user.ID, err)
	}
}

// AddMoney credits a deposit made through the given payment method.
func (s *WalletService) AddMoney(user *models.User, amount float64, paymentMethod string) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.Credit(user, amount, models.TxDeposit, "Deposit via "+paymentMethod)
}

// Withdraw enforces, in order: positive amount, per-currency minimum, balance
// cover, approved KYC. Any failed check aborts with its reason and no state
// change; on success the amount is debited as a pending withdrawal.
func (s *WalletService) Withdraw(user *models.User, req models.WithdrawalRequest) (*models.WalletTransaction, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.Amount < utils.MinWithdrawal[user.Currency] {
		return nil, ErrBelowMinWithdrawal
	}
	if user.WalletBalance < req.Amount {
		return nil, ErrInsufficientBalance
	}
	if user.KycStatus != models.KycApproved {
		return nil, ErrKycRequired
	}

	acct := req.BankDetails.AccountNumber
	if len(acct) > 4 {
		acct = acct[len(acct)-4:]
	}
	detail := fmt.Sprintf("Withdrawal to account ending with %s", acct)
	return s.Debit(user, req.Amount, models.TxWithdrawal, detail)
}

// AwardPrize credits prize money and feeds the earnings leaderboard.
func (s *WalletService) AwardPrize(user *models.User, amount float64, kills int, detail string) (*models.WalletTransaction, error) {
	tx, err := s.Credit(user, amount, models.TxPrize, detail)
	if err != nil {
		return nil, err
	}
	if s.leaderboard != nil {
		if err := s.leaderboard.RecordEarnings(user, amount, kills, true); err != nil {
			log.Printf("⚠️  wallet: leaderboard update failed for user %d: %v", user.ID, err)
		}
	}
	return tx, nil
}

// TransactionsForUser returns the user's ledger entries, most recent first.
func (s *WalletService) TransactionsForUser(userID int64) ([]models.WalletTransaction, error) {
	all, _, err := store.GetJSON[[]models.WalletTransaction](s.store, store.KeyTransactions)
	if err != nil {
		return nil, err
	}
	var out []models.WalletTransaction
	for _, tx := range all {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ReplayBalance recomputes the user's balance from the ledger by applying
// signed effects in creation order. Used to audit the cached balance.
func (s *WalletService) ReplayBalance(userID int64) (float64, error) {
	all, _, err := store.GetJSON[[]models.WalletTransaction](s.store, store.KeyTransactions)
	if err != nil {
		return 0, err
	}
	var balance float64
	for _, tx := range all {
		if tx.UserID == userID {
			balance += tx.SignedEffect()
		}
	}
	return balance, nil
}

// SettlePendingWithdrawals marks pending withdrawals older than delay as
// completed and notifies their owners. Returns the settled transactions.
func (s *WalletService) SettlePendingWithdrawals(now time.Time, delay time.Duration) ([]models.WalletTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, _, err := store.GetJSON[[]models.WalletTransaction](s.store, store.KeyTransactions)
	if err != nil {
		return nil, err
	}

	var settled []models.WalletTransaction
	for i := range all {
		tx := &all[i]
		if tx.Type != models.TxWithdrawal || tx.Status != models.TxPending {
			continue
		}
		if tx.CreatedAt.Add(delay).After(now) {
			continue
		}
		tx.Status = models.TxCompleted
		settled = append(settled, *tx)
	}
	if len(settled) == 0 {
		return nil, nil
	}
	if err := store.SetJSON(s.store, store.KeyTransactions, all); err != nil {
		return nil, err
	}

	for _, tx := range settled {
		message := fmt.Sprintf("Your withdrawal of %.2f has been processed.", tx.Amount)
		if _, err := s.notifications.Add(tx.UserID, "Withdrawal Processed", message, models.NotifWallet); err != nil {
			log.Printf("⚠️  wallet: failed to notify user %d of settlement: %v", tx.UserID, err)
		}
	}
	return settled, nil
}

// Convert translates an amount between currencies using the fixed rate table.
func (s *WalletService) Convert(amount float64, from, to models.Currency) float64 {
	return utils.Convert(amount, from, to)
}
