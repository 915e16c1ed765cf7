package migration

import (
	"context"

	"github.com/pushpendr-7/auction-engine/internal/domain/entity"
	walletUseCase "github.com/pushpendr-7/auction-engine/internal/domain/usecase/wallet"
)

// Default user IDs and wallet balances for development environments
var defaultWallets = map[uint64]string{
	1: "1000.00",
	2: "500.00",
	3: "250.00",
}

// CreateDefaultWallets seeds wallets with predefined balances
func CreateDefaultWallets(ctx context.Context, holds *walletUseCase.HoldManager) error {
	for userID, balance := range defaultWallets {
		wallet, err := holds.GetOrCreateWallet(ctx, userID)
		if err != nil {
			return err
		}

		// Only seed wallets that have never been funded
		if wallet.Balance() > 0 {
			continue
		}

		cents, err := entity.ValidateAndConvertAmount(balance)
		if err != nil {
			return err
		}

		if _, err := holds.Credit(ctx, userID, cents, 0); err != nil {
			return err
		}
	}

	return nil
}
