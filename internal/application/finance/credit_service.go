package finance

import (
	"context"
	"fmt"

	"github.com/retailcore/backoffice/internal/application/txn"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreditService applies customer credit to open orders. The only way a
// credit's remaining balance ever increases again is the reversal path
// inside return finalization; this service deliberately offers no add-back
// operation so the audit trail stays anchored to specific returns.
type CreditService struct {
	scope  txn.Scope
	ledger *LedgerService
	logger *zap.Logger
}

// NewCreditService creates a new CreditService
func NewCreditService(scope txn.Scope, ledger *LedgerService, logger *zap.Logger) *CreditService {
	return &CreditService{scope: scope, ledger: ledger, logger: logger}
}

// ApplyCredit applies an amount of a customer credit to an order and
// recomputes the order's totals, all inside one transaction. Every check
// runs before any write; a rejected application leaves both sides untouched.
func (s *CreditService) ApplyCredit(ctx context.Context, req ApplyCreditRequest) (*ApplyCreditResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewFieldValidationError("amount", "INVALID_AMOUNT", "Applied amount must be positive")
	}

	var resp ApplyCreditResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		credit, err := repos.Credits().FindByID(ctx, req.CreditID)
		if err != nil {
			return err
		}
		order, err := repos.Orders().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		if credit.CustomerID != req.CustomerID {
			return shared.NewConsistencyError("CREDIT_OWNER_MISMATCH", "Credit does not belong to the given customer")
		}
		if order.CustomerID != credit.CustomerID {
			return shared.NewConsistencyError("CREDIT_OWNER_MISMATCH", "Credit owner does not match the order's customer")
		}
		if !credit.IsUsable() {
			return shared.NewStateError(credit.Status.String(), "CREDIT_NOT_USABLE", "Credit has no redeemable balance")
		}
		if credit.Currency != order.Currency {
			return shared.NewConsistencyError("CURRENCY_MISMATCH",
				fmt.Sprintf("Credit currency %s does not match order currency %s", credit.Currency, order.Currency))
		}
		if !order.CanAcceptCredit() {
			return shared.NewStateError(order.Status.String(), "ORDER_NOT_OPEN", "Credit can only be applied to an open, unsettled order")
		}

		maxApplicable := decimal.Min(credit.RemainingAmount, order.BalanceDue)
		if req.Amount.GreaterThan(maxApplicable) {
			return shared.NewConsistencyError("EXCEEDS_APPLICABLE",
				fmt.Sprintf("Applied amount %s exceeds maximum applicable %s", req.Amount, maxApplicable))
		}

		if err := credit.Redeem(req.Amount); err != nil {
			return err
		}
		if err := repos.Credits().Save(ctx, credit); err != nil {
			return err
		}

		application, err := finance.NewCreditApplication(credit.ID, order.ID, req.Amount)
		if err != nil {
			return err
		}
		if err := repos.CreditApplications().Save(ctx, application); err != nil {
			return err
		}

		if err := s.ledger.Recompute(ctx, repos, order); err != nil {
			return err
		}

		entry := shared.NewAuditLog(req.Actor, "credit.applied", "credit", credit.ID,
			fmt.Sprintf("applied %s %s to order %s", req.Amount, credit.Currency, order.OrderNumber))
		if err := repos.AuditLogs().Append(ctx, entry); err != nil {
			return err
		}

		resp = ApplyCreditResponse{
			Order:  ToOrderResponse(order),
			Credit: ToCreditResponse(credit),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("applied customer credit",
		zap.String("credit_id", req.CreditID.String()),
		zap.String("order_id", req.OrderID.String()),
		zap.String("amount", req.Amount.String()))

	return &resp, nil
}
