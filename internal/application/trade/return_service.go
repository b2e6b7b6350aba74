package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appfinance "github.com/retailcore/backoffice/internal/application/finance"
	"github.com/retailcore/backoffice/internal/application/txn"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"go.uber.org/zap"
)

// ReturnService drives the return lifecycle: draft creation, finalization
// with all inventory and ledger side effects, and draft cancellation. Every
// finalize runs as a single transaction; a failure anywhere rolls back
// restock, refund, credit and order writes together.
type ReturnService struct {
	scope  txn.Scope
	ledger *appfinance.LedgerService
	logger *zap.Logger
}

// NewReturnService creates a new ReturnService
func NewReturnService(scope txn.Scope, ledger *appfinance.LedgerService, logger *zap.Logger) *ReturnService {
	return &ReturnService{scope: scope, ledger: ledger, logger: logger}
}

// CreateDraft creates a draft return against an order. Drafts commit nothing
// against inventory or payments; they only record intent and validate the
// requested quantities against what each order line can still return.
func (s *ReturnService) CreateDraft(ctx context.Context, req CreateReturnDraftRequest) (*ReturnResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewValidationError("NO_LINES", "A return draft requires at least one line")
	}

	var resp ReturnResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		order, err := repos.Orders().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		returnNumber, err := repos.Returns().GenerateReturnNumber(ctx)
		if err != nil {
			return err
		}

		ret, err := trade.NewReturn(returnNumber, order, req.Type, req.Reason)
		if err != nil {
			return err
		}
		ret.Remark = req.Remark

		for _, lineReq := range req.Lines {
			orderLine := order.GetLine(lineReq.OrderLineID)
			if orderLine == nil {
				return shared.NewFieldValidationError("order_line_id", "UNKNOWN_ORDER_LINE",
					fmt.Sprintf("Order line %s does not belong to order %s", lineReq.OrderLineID, order.ID))
			}
			if _, err := ret.AddLine(orderLine, lineReq.Quantity); err != nil {
				return err
			}
		}

		if ret.Type == trade.ReturnTypeRefund && ret.TotalAmount.GreaterThan(order.NetPaid) {
			return shared.NewConsistencyError("REFUND_EXCEEDS_NET_PAID",
				"Refund return total exceeds the net amount paid on the order")
		}

		if err := repos.Returns().Save(ctx, ret); err != nil {
			return err
		}

		for itemID, quantity := range ret.QuantitiesByStockItem() {
			movement, err := inventory.NewMovement(itemID, inventory.MovementKindReturnDrafted,
				quantity, &ret.ID, "return drafted "+ret.ReturnNumber)
			if err != nil {
				return err
			}
			if err := repos.Movements().Append(ctx, movement); err != nil {
				return err
			}
		}

		entry := shared.NewAuditLog(req.Actor, "return.drafted", "return", ret.ID, ret.ReturnNumber)
		if err := repos.AuditLogs().Append(ctx, entry); err != nil {
			return err
		}

		resp = ToReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("return draft created",
		zap.String("return_id", resp.ID.String()),
		zap.String("return_number", resp.ReturnNumber),
		zap.String("order_id", resp.OrderID.String()),
		zap.String("type", resp.Type))

	return &resp, nil
}

// Finalize commits a draft return. In one transaction it restocks the
// returned items, records the refund or issues a store credit, recomputes
// the order's ledger totals and, when the order ends up fully returned with
// nothing paid on it, cancels the order.
func (s *ReturnService) Finalize(ctx context.Context, returnID uuid.UUID, req FinalizeReturnRequest) (*FinalizeReturnResponse, error) {
	var resp FinalizeReturnResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		ret, err := repos.Returns().FindByID(ctx, returnID)
		if err != nil {
			return err
		}
		if !ret.IsDraft() {
			return shared.NewStateError(ret.Status.String(), "INVALID_RETURN_STATUS",
				"Only a draft return can be finalized")
		}

		order, err := repos.Orders().FindByID(ctx, ret.OrderID)
		if err != nil {
			return err
		}

		for idx := range ret.Lines {
			orderLine := order.GetLine(ret.Lines[idx].OrderLineID)
			if orderLine == nil {
				return shared.NewConsistencyError("UNKNOWN_ORDER_LINE",
					fmt.Sprintf("Order line %s referenced by return %s no longer exists",
						ret.Lines[idx].OrderLineID, ret.ReturnNumber))
			}
			if err := orderLine.RecordReturn(ret.Lines[idx].Quantity); err != nil {
				return err
			}
		}

		if err := s.restock(ctx, repos, ret); err != nil {
			return err
		}

		var credit *finance.CustomerCredit
		switch ret.Type {
		case trade.ReturnTypeRefund:
			if ret.TotalAmount.GreaterThan(order.NetPaid) {
				return shared.NewConsistencyError("REFUND_EXCEEDS_NET_PAID",
					"Refund return total exceeds the net amount paid on the order")
			}
			if req.Refund == nil {
				return shared.NewFieldValidationError("refund", "MISSING_REFUND_DETAILS",
					"Refund details are required to finalize a refund return")
			}
			refund, err := finance.NewRefund(order.ID, ret.TotalAmount, req.Refund.Method,
				req.Refund.Comment, req.Refund.OtherMethodNote, ret.ID)
			if err != nil {
				return err
			}
			if err := repos.Transactions().Save(ctx, refund); err != nil {
				return err
			}
		case trade.ReturnTypeExchange:
			creditNumber, err := repos.Credits().GenerateCreditNumber(ctx)
			if err != nil {
				return err
			}
			credit, err = finance.NewCustomerCredit(creditNumber, ret.CustomerID,
				ret.Currency, ret.TotalAmount, &ret.ID)
			if err != nil {
				return err
			}
			if err := repos.Credits().Save(ctx, credit); err != nil {
				return err
			}
		}

		if err := ret.Finalize(req.Actor); err != nil {
			return err
		}

		if order.IsFullyReturned() {
			if err := s.reverseCreditApplications(ctx, repos, order, ret); err != nil {
				return err
			}
		}

		if err := s.ledger.Recompute(ctx, repos, order); err != nil {
			return err
		}

		if order.IsFullyReturned() && order.NetPaid.IsZero() && !order.IsCancelled() {
			if err := order.Cancel("all lines returned, nothing outstanding"); err != nil {
				return err
			}
			if err := repos.Orders().Save(ctx, order); err != nil {
				return err
			}
			entry := shared.NewAuditLog(&req.Actor, "order.cancelled", "order", order.ID,
				"auto-cancelled by return "+ret.ReturnNumber)
			if err := repos.AuditLogs().Append(ctx, entry); err != nil {
				return err
			}
		}

		if err := repos.Returns().Save(ctx, ret); err != nil {
			return err
		}

		entry := shared.NewAuditLog(&req.Actor, "return.finalized", "return", ret.ID, ret.ReturnNumber)
		if err := repos.AuditLogs().Append(ctx, entry); err != nil {
			return err
		}

		resp.Return = ToReturnResponse(ret)
		resp.Order = appfinance.ToOrderResponse(order)
		if credit != nil {
			creditResp := appfinance.ToCreditResponse(credit)
			resp.Credit = &creditResp
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("return finalized",
		zap.String("return_id", resp.Return.ID.String()),
		zap.String("return_number", resp.Return.ReturnNumber),
		zap.String("order_id", resp.Order.ID.String()),
		zap.String("order_status", resp.Order.Status))

	return &resp, nil
}

// restock receives the returned quantities back into stock under row locks
// and journals one RETURN_RESTOCK movement per item.
func (s *ReturnService) restock(ctx context.Context, repos txn.Repositories, ret *trade.Return) error {
	for itemID, quantity := range ret.QuantitiesByStockItem() {
		item, err := repos.StockItems().FindByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if err := item.Receive(quantity); err != nil {
			return err
		}
		reserved, err := repos.Reservations().ReservedQuantity(ctx, itemID)
		if err != nil {
			return err
		}
		item.RefreshStatus(reserved)
		if err := repos.StockItems().SaveWithLock(ctx, item); err != nil {
			return err
		}

		movement, err := inventory.NewMovement(itemID, inventory.MovementKindReturnRestock,
			quantity, &ret.ID, "restocked by return "+ret.ReturnNumber)
		if err != nil {
			return err
		}
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return err
		}
	}
	return nil
}

// reverseCreditApplications voids the active credit applications of a fully
// returned order and restores their amounts onto the originating credits,
// reactivating consumed ones.
func (s *ReturnService) reverseCreditApplications(ctx context.Context, repos txn.Repositories, order *trade.Order, ret *trade.Return) error {
	applications, err := repos.CreditApplications().FindActiveByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	for idx := range applications {
		app := &applications[idx]
		if err := app.Void("order fully returned by " + ret.ReturnNumber); err != nil {
			return err
		}
		if err := repos.CreditApplications().Save(ctx, app); err != nil {
			return err
		}

		credit, err := repos.Credits().FindByID(ctx, app.CreditID)
		if err != nil {
			return err
		}
		if err := credit.Restore(app.Amount); err != nil {
			return err
		}
		if err := repos.Credits().Save(ctx, credit); err != nil {
			return err
		}

		s.logger.Info("credit application reversed",
			zap.String("order_id", order.ID.String()),
			zap.String("credit_id", credit.ID.String()),
			zap.String("amount", app.Amount.String()))
	}
	return nil
}

// Cancel abandons a draft return. Finalized returns cannot be cancelled.
func (s *ReturnService) Cancel(ctx context.Context, returnID uuid.UUID, actor uuid.UUID) (*ReturnResponse, error) {
	var resp ReturnResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		ret, err := repos.Returns().FindByID(ctx, returnID)
		if err != nil {
			return err
		}
		if err := ret.Cancel(actor); err != nil {
			return err
		}
		if err := repos.Returns().Save(ctx, ret); err != nil {
			return err
		}

		entry := shared.NewAuditLog(&actor, "return.cancelled", "return", ret.ID, ret.ReturnNumber)
		if err := repos.AuditLogs().Append(ctx, entry); err != nil {
			return err
		}

		resp = ToReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("return cancelled",
		zap.String("return_id", resp.ID.String()),
		zap.String("return_number", resp.ReturnNumber))

	return &resp, nil
}

// GetReturn loads a single return by ID
func (s *ReturnService) GetReturn(ctx context.Context, returnID uuid.UUID) (*ReturnResponse, error) {
	var resp ReturnResponse
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		ret, err := repos.Returns().FindByID(ctx, returnID)
		if err != nil {
			return err
		}
		resp = ToReturnResponse(ret)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListReturns lists returns with pagination and optional order/status filters
func (s *ReturnService) ListReturns(ctx context.Context, filter ReturnListFilter) (*shared.Paginated[ReturnResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.OrderID != nil {
		repoFilter.Filters["order_id"] = *filter.OrderID
	}
	if filter.Status != nil {
		repoFilter.Filters["status"] = filter.Status.String()
	}
	repoFilter.Normalize()

	var page shared.Paginated[ReturnResponse]
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		returns, err := repos.Returns().FindAll(ctx, repoFilter)
		if err != nil {
			return err
		}
		total, err := repos.Returns().Count(ctx, repoFilter)
		if err != nil {
			return err
		}
		page = shared.NewPaginated(ToReturnResponses(returns), total, repoFilter.Page, repoFilter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}
