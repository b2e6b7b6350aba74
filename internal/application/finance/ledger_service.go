package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/application/txn"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"go.uber.org/zap"
)

// LedgerService recomputes an order's cached net paid, balance due and
// status from its full non-voided transaction and credit-application
// history. It is the only writer of those three fields; everything else in
// the system reads them.
type LedgerService struct {
	scope  txn.Scope
	logger *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(scope txn.Scope, logger *zap.Logger) *LedgerService {
	return &LedgerService{scope: scope, logger: logger}
}

// RecomputeInvoiceTotals loads the order, recomputes its totals inside a
// transaction and persists the result. Recomputing with no new transactions
// is a no-op beyond the row write.
func (s *LedgerService) RecomputeInvoiceTotals(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var resp OrderResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		order, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := s.Recompute(ctx, repos, order); err != nil {
			return err
		}
		resp = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Recompute recomputes the given order within an already-open transaction
// scope and persists the order row. It trusts its caller to have produced a
// consistent transaction set; validation happens where transactions are
// created.
func (s *LedgerService) Recompute(ctx context.Context, repos txn.Repositories, order *trade.Order) error {
	transactions, err := repos.Transactions().FindByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	applications, err := repos.CreditApplications().FindByOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	finance.RecomputeOrder(order, transactions, applications)

	if err := repos.Orders().Save(ctx, order); err != nil {
		return err
	}

	s.logger.Debug("recomputed invoice totals",
		zap.String("order_id", order.ID.String()),
		zap.String("net_paid", order.NetPaid.String()),
		zap.String("balance_due", order.BalanceDue.String()),
		zap.String("status", order.Status.String()))

	return nil
}
