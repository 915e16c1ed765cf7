package settlement

import (
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/domain/port/persistence"
	"github.com/pushpendr-7/auction-engine/internal/domain/usecase/ledger"
	"github.com/pushpendr-7/auction-engine/internal/domain/usecase/wallet"
)

// OrderPaymentProvider names the internal provider used for settlement payments
const OrderPaymentProvider = "settlement"

// GatewayProvider names the external provider used for recharge and buy-now
const GatewayProvider = "gateway"

// Config carries settlement knobs
type Config struct {
	// SweepBatchLimit caps how many items one sweep pass settles
	SweepBatchLimit int
}

// Service implements the settlement engine: terminal auction settlement,
// payment effect application and the periodic settlement sweep
type Service struct {
	uow          persistence.UnitOfWork
	holds        *wallet.HoldManager
	ledger       *ledger.Service
	notifier     coreport.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       Config
}

// NewService creates a new settlement service
func NewService(
	uow persistence.UnitOfWork,
	holds *wallet.HoldManager,
	ledgerService *ledger.Service,
	notifier coreport.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *Service {
	if config.SweepBatchLimit <= 0 {
		config.SweepBatchLimit = 50
	}
	return &Service{
		uow:          uow,
		holds:        holds,
		ledger:       ledgerService,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
		config:       config,
	}
}
