package finance

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/application/txn"
	"github.com/retailcore/backoffice/internal/domain/finance"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/domain/shared"
	"github.com/retailcore/backoffice/internal/domain/shared/valueobject"
	"github.com/retailcore/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubRepos is an in-memory txn.Repositories covering the repositories the
// credit and ledger flows touch. Inventory and return repositories are never
// reached by these flows and stay nil.
type stubRepos struct {
	orders       map[uuid.UUID]*trade.Order
	credits      map[uuid.UUID]*finance.CustomerCredit
	creditSeq    int
	applications []finance.CreditApplication
	transactions []finance.LedgerTransaction
	audits       []shared.AuditLog
}

func newStubRepos() *stubRepos {
	return &stubRepos{
		orders:  make(map[uuid.UUID]*trade.Order),
		credits: make(map[uuid.UUID]*finance.CustomerCredit),
	}
}

func (s *stubRepos) Orders() trade.OrderRepository                     { return stubOrderRepo{s} }
func (s *stubRepos) Returns() trade.ReturnRepository                   { return nil }
func (s *stubRepos) StockItems() inventory.StockItemRepository         { return nil }
func (s *stubRepos) Reservations() inventory.ReservationReader         { return nil }
func (s *stubRepos) Movements() inventory.MovementRepository           { return nil }
func (s *stubRepos) Transactions() finance.LedgerTransactionRepository { return stubTransactionRepo{s} }
func (s *stubRepos) Credits() finance.CustomerCreditRepository         { return stubCreditRepo{s} }
func (s *stubRepos) CreditApplications() finance.CreditApplicationRepository {
	return stubApplicationRepo{s}
}
func (s *stubRepos) AuditLogs() shared.AuditLogRepository { return stubAuditRepo{s} }

type stubOrderRepo struct{ s *stubRepos }

func (r stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.Order, error) {
	if order, ok := r.s.orders[id]; ok {
		return order, nil
	}
	return nil, shared.ErrNotFound
}

func (r stubOrderRepo) Save(_ context.Context, order *trade.Order) error {
	r.s.orders[order.ID] = order
	return nil
}

type stubTransactionRepo struct{ s *stubRepos }

func (r stubTransactionRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]finance.LedgerTransaction, error) {
	var out []finance.LedgerTransaction
	for _, tx := range r.s.transactions {
		if tx.OrderID == orderID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r stubTransactionRepo) Save(_ context.Context, transaction *finance.LedgerTransaction) error {
	for idx := range r.s.transactions {
		if r.s.transactions[idx].ID == transaction.ID {
			r.s.transactions[idx] = *transaction
			return nil
		}
	}
	r.s.transactions = append(r.s.transactions, *transaction)
	return nil
}

type stubCreditRepo struct{ s *stubRepos }

func (r stubCreditRepo) FindByID(_ context.Context, id uuid.UUID) (*finance.CustomerCredit, error) {
	if credit, ok := r.s.credits[id]; ok {
		return credit, nil
	}
	return nil, shared.ErrNotFound
}

func (r stubCreditRepo) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]finance.CustomerCredit, error) {
	var out []finance.CustomerCredit
	for _, credit := range r.s.credits {
		if credit.CustomerID == customerID {
			out = append(out, *credit)
		}
	}
	return out, nil
}

func (r stubCreditRepo) Save(_ context.Context, credit *finance.CustomerCredit) error {
	r.s.credits[credit.ID] = credit
	return nil
}

func (r stubCreditRepo) GenerateCreditNumber(_ context.Context) (string, error) {
	r.s.creditSeq++
	return fmt.Sprintf("CR-20260830-%04d", r.s.creditSeq), nil
}

type stubApplicationRepo struct{ s *stubRepos }

func (r stubApplicationRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]finance.CreditApplication, error) {
	var out []finance.CreditApplication
	for _, app := range r.s.applications {
		if app.OrderID == orderID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r stubApplicationRepo) FindActiveByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.CreditApplication, error) {
	applications, err := r.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	var out []finance.CreditApplication
	for _, app := range applications {
		if !app.IsVoided() {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r stubApplicationRepo) Save(_ context.Context, application *finance.CreditApplication) error {
	for idx := range r.s.applications {
		if r.s.applications[idx].ID == application.ID {
			r.s.applications[idx] = *application
			return nil
		}
	}
	r.s.applications = append(r.s.applications, *application)
	return nil
}

type stubAuditRepo struct{ s *stubRepos }

func (r stubAuditRepo) Append(_ context.Context, entry *shared.AuditLog) error {
	r.s.audits = append(r.s.audits, *entry)
	return nil
}

func (r stubAuditRepo) FindByEntity(_ context.Context, entityType string, entityID uuid.UUID) ([]shared.AuditLog, error) {
	var out []shared.AuditLog
	for _, entry := range r.s.audits {
		if entry.EntityType == entityType && entry.EntityID == entityID {
			out = append(out, entry)
		}
	}
	return out, nil
}

var _ txn.Repositories = (*stubRepos)(nil)

// seedOpenOrder stores an order with one line of the given total and records
// an optional cash payment against it.
func seedOpenOrder(t *testing.T, s *stubRepos, total, paid int64) *trade.Order {
	order, err := trade.NewOrder("ORD-20260830-0100", uuid.New(), valueobject.USD)
	require.NoError(t, err)
	_, err = order.AddLine(nil, "Service item", 1, decimal.NewFromInt(total))
	require.NoError(t, err)

	if paid > 0 {
		payment, err := finance.NewPayment(order.ID, decimal.NewFromInt(paid), finance.PaymentMethodCash, "")
		require.NoError(t, err)
		s.transactions = append(s.transactions, *payment)
		order.ApplyNetPaid(decimal.NewFromInt(paid))
	}

	s.orders[order.ID] = order
	return order
}

func seedCredit(t *testing.T, s *stubRepos, customerID uuid.UUID, currency valueobject.Currency, amount int64) *finance.CustomerCredit {
	credit, err := finance.NewCustomerCredit("CR-20260830-0100", customerID, currency,
		decimal.NewFromInt(amount), nil)
	require.NoError(t, err)
	s.credits[credit.ID] = credit
	return credit
}

func newCreditService(s *stubRepos) *CreditService {
	scope := txn.NewFixedScope(s)
	return NewCreditService(scope, NewLedgerService(scope, zap.NewNop()), zap.NewNop())
}

func TestCreditServiceApplyCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("redeems the credit and recomputes the order", func(t *testing.T) {
		s := newStubRepos()
		order := seedOpenOrder(t, s, 500, 100)
		credit := seedCredit(t, s, order.CustomerID, valueobject.USD, 300)
		svc := newCreditService(s)

		resp, err := svc.ApplyCredit(ctx, ApplyCreditRequest{
			CustomerID: order.CustomerID,
			CreditID:   credit.ID,
			OrderID:    order.ID,
			Amount:     decimal.NewFromInt(250),
		})
		require.NoError(t, err)

		assert.True(t, resp.Credit.RemainingAmount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, finance.CreditStatusActive.String(), resp.Credit.Status)
		assert.True(t, resp.Order.NetPaid.Equal(decimal.NewFromInt(350)))
		assert.True(t, resp.Order.BalanceDue.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, trade.OrderStatusPartiallySettled.String(), resp.Order.Status)

		require.Len(t, s.applications, 1)
		assert.Equal(t, credit.ID, s.applications[0].CreditID)
		assert.Equal(t, order.ID, s.applications[0].OrderID)
		assert.True(t, s.applications[0].Amount.Equal(decimal.NewFromInt(250)))
		assert.False(t, s.applications[0].IsVoided())

		require.Len(t, s.audits, 1)
		assert.Equal(t, "credit.applied", s.audits[0].Action)
	})

	t.Run("settles the order when the credit covers the balance", func(t *testing.T) {
		s := newStubRepos()
		order := seedOpenOrder(t, s, 200, 0)
		credit := seedCredit(t, s, order.CustomerID, valueobject.USD, 300)
		svc := newCreditService(s)

		resp, err := svc.ApplyCredit(ctx, ApplyCreditRequest{
			CustomerID: order.CustomerID,
			CreditID:   credit.ID,
			OrderID:    order.ID,
			Amount:     decimal.NewFromInt(200),
		})
		require.NoError(t, err)

		assert.Equal(t, trade.OrderStatusSettled.String(), resp.Order.Status)
		assert.True(t, resp.Order.BalanceDue.IsZero())
		assert.True(t, resp.Credit.RemainingAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects a non-positive amount before touching anything", func(t *testing.T) {
		s := newStubRepos()
		svc := newCreditService(s)

		_, err := svc.ApplyCredit(ctx, ApplyCreditRequest{
			CustomerID: uuid.New(),
			CreditID:   uuid.New(),
			OrderID:    uuid.New(),
			Amount:     decimal.Zero,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("rejects a credit owned by another customer", func(t *testing.T) {
		s := newStubRepos()
		order := seedOpenOrder(t, s, 500, 0)
		credit := seedCredit(t, s, uuid.New(), valueobject.USD, 300)
		svc := newCreditService(s)

		_, err := svc.ApplyCredit(ctx, ApplyCreditRequest{
			CustomerID: order.CustomerID,
			CreditID:   credit.ID,
			OrderID:    order.ID,
			Amount:     decimal.NewFromInt(100),
		})
		require.Error(t, err)
		var consistencyErr *shared.ConsistencyError
		require.ErrorAs(t, err, &consistencyErr)
		assert.Equal(t, "CREDIT_OWNER_MISMATCH", consistencyErr.Code)
	})

	t.Run("rejects a currency mismatch", func(t *testing.T) {
		s := newStubRepos()
		order := seedOpenOrder(t, s, 500, 0)
		credit := seedCredit(t, s, order.CustomerID, valueobject.EUR, 300)
		svc := newCreditService(s)

		_, err := svc.ApplyCredit(ctx, ApplyCreditRequest{
			CustomerID: order.CustomerID,
			CreditID:   credit.ID,
			OrderID:    order.ID,
			Amount:     decimal.NewFromInt(100),
		})
		require.Error(t, err)
		var consistencyErr *shared.ConsistencyError
		require.ErrorAs(t, err, &consistencyErr)
		assert.Equal(t, "CURRENCY_MISMATCH", consistencyErr.Code)
	})

	t.Run("rejects a consumed credit", func(t *testing.T) {
		s := newStubRepos()
		order := seedOpenOrder(t, s, 500, 0)
		credit := seedCredit(t, s, order.CustomerID, valueobject.USD, 100)
		require.NoError(t, credit.Redeem(decimal.NewFromInt(100)))
		require.Equal(t, finance.CreditStatusConsumed, credit.Status)
		svc := newCreditService(s)

		_, err := svc.ApplyCredit(ctx, ApplyCreditRequest{
			CustomerID: order.CustomerID,
			CreditID:   credit.ID,
			OrderID:    order.ID,
			Amount:     decimal.NewFromInt(50),
		})
		require.Error(t, err)
		var stateErr *shared.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "CREDIT_NOT_USABLE", stateErr.Code)
	})

	t.Run("rejects a cancelled order", func(t *testing.T) {
		s := newStubRepos()
		order := seedOpenOrder(t, s, 500, 0)
		require.NoError(t, order.Cancel("customer walked away"))
		credit := seedCredit(t, s, order.CustomerID, valueobject.USD, 300)
		svc := newCreditService(s)

		_, err := svc.ApplyCredit(ctx, ApplyCreditRequest{
			CustomerID: order.CustomerID,
			CreditID:   credit.ID,
			OrderID:    order.ID,
			Amount:     decimal.NewFromInt(100),
		})
		require.Error(t, err)
		var stateErr *shared.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, "ORDER_NOT_OPEN", stateErr.Code)
	})

	t.Run("caps the amount at the lesser of remaining credit and balance due", func(t *testing.T) {
		s := newStubRepos()
		order := seedOpenOrder(t, s, 500, 400)
		credit := seedCredit(t, s, order.CustomerID, valueobject.USD, 300)
		svc := newCreditService(s)

		// balance due is 100, remaining credit is 300; 150 exceeds the cap
		_, err := svc.ApplyCredit(ctx, ApplyCreditRequest{
			CustomerID: order.CustomerID,
			CreditID:   credit.ID,
			OrderID:    order.ID,
			Amount:     decimal.NewFromInt(150),
		})
		require.Error(t, err)
		var consistencyErr *shared.ConsistencyError
		require.ErrorAs(t, err, &consistencyErr)
		assert.Equal(t, "EXCEEDS_APPLICABLE", consistencyErr.Code)

		// a rejected application leaves both sides untouched
		assert.True(t, credit.RemainingAmount.Equal(decimal.NewFromInt(300)))
		assert.Empty(t, s.applications)
		assert.True(t, order.NetPaid.Equal(decimal.NewFromInt(400)))
	})
}

func TestLedgerServiceRecomputeInvoiceTotals(t *testing.T) {
	ctx := context.Background()

	s := newStubRepos()
	order := seedOpenOrder(t, s, 500, 150)

	refund, err := finance.NewRefund(order.ID, decimal.NewFromInt(50), finance.PaymentMethodCash,
		"partial refund", "", uuid.New())
	require.NoError(t, err)
	s.transactions = append(s.transactions, *refund)

	credit := seedCredit(t, s, order.CustomerID, valueobject.USD, 100)
	application, err := finance.NewCreditApplication(credit.ID, order.ID, decimal.NewFromInt(25))
	require.NoError(t, err)
	s.applications = append(s.applications, *application)

	svc := NewLedgerService(txn.NewFixedScope(s), zap.NewNop())

	resp, err := svc.RecomputeInvoiceTotals(ctx, order.ID)
	require.NoError(t, err)

	// 150 paid minus 50 refunded plus 25 in credit
	assert.True(t, resp.NetPaid.Equal(decimal.NewFromInt(125)))
	assert.True(t, resp.BalanceDue.Equal(decimal.NewFromInt(375)))
	assert.Equal(t, trade.OrderStatusPartiallySettled.String(), resp.Status)

	_, err = svc.RecomputeInvoiceTotals(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
