package workers

import (
	"context"
	"log"
	"time"

	"netwin-platform/services"
)

// WithdrawalProcessor settles pending withdrawals after a processing delay,
// standing in for the manual payout step. The balance was already debited
// when the withdrawal was requested; settlement only flips the transaction
// status and notifies the user.
type WithdrawalProcessor struct {
	Wallet *services.WalletService
	Delay  time.Duration
}

func NewWithdrawalProcessor(wallet *services.WalletService, delay time.Duration) *WithdrawalProcessor {
	return &WithdrawalProcessor{Wallet: wallet, Delay: delay}
}

// Run polls for settleable withdrawals until the context is cancelled.
func (p *WithdrawalProcessor) Run(ctx context.Context, pollInterval time.Duration) {
	log.Println("Starting withdrawal processor...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Withdrawal processor stopped.")
			return
		case <-ticker.C:
			settled, err := p.Wallet.SettlePendingWithdrawals(time.Now(), p.Delay)
			if err != nil {
				log.Printf("❌ Error settling withdrawals: %v", err)
				continue
			}
			if len(settled) > 0 {
				log.Printf("✅ Settled %d withdrawal(s)", len(settled))
			}
		}
	}
}
