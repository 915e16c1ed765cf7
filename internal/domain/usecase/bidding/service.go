package bidding

import (
	coreport "github.com/pushpendr-7/auction-engine/internal/domain/port/core"
	"github.com/pushpendr-7/auction-engine/internal/domain/port/persistence"
	"github.com/pushpendr-7/auction-engine/internal/domain/usecase/ledger"
	"github.com/pushpendr-7/auction-engine/internal/domain/usecase/wallet"
)

// Config carries the auction business knobs. Amounts are in cents.
type Config struct {
	MinimumIncrementInCents int64
	SeatFeeInCents          int64
	PenaltyInCents          int64
	MaxBidMultiplier        int64
	MarketOpenHour          int
	MarketCloseHour         int
	// MinimumParticipants is how many booked seats an auction needs before
	// bids are accepted
	MinimumParticipants int
	// OfflineThreshold is how long a leader may be silent before the
	// penalty sweep flags them
	OfflineThreshold coreport.Duration
}

// Service implements the bidding engine: bid placement, seat booking,
// presence tracking and the offline-leader penalty sweep
type Service struct {
	uow          persistence.UnitOfWork
	holds        *wallet.HoldManager
	ledger       *ledger.Service
	notifier     coreport.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	config       Config
}

// NewService creates a new bidding service
func NewService(
	uow persistence.UnitOfWork,
	holds *wallet.HoldManager,
	ledgerService *ledger.Service,
	notifier coreport.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *Service {
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
