package finance

import (
	"github.com/retailcore/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// NetPaid derives the net amount actually collected on an order from its
// monetary history: payments minus refunds plus applied credit, floored at
// zero. Voided transactions and voided applications are ignored.
func NetPaid(transactions []LedgerTransaction, applications []CreditApplication) decimal.Decimal {
	net := decimal.Zero
	for idx := range transactions {
		if transactions[idx].IsVoided() {
			continue
		}
		net = net.Add(transactions[idx].Signed())
	}
	for idx := range applications {
		if applications[idx].IsVoided() {
			continue
		}
		net = net.Add(applications[idx].Amount)
	}
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// RecomputeOrder recomputes the order's cached net paid, balance due and
// status from the given transaction and application history. It is
// idempotent: recomputing with no new history is a no-op. The order's
// ApplyNetPaid is the only writer of the three cached fields.
func RecomputeOrder(order *trade.Order, transactions []LedgerTransaction, applications []CreditApplication) {
	order.ApplyNetPaid(NetPaid(transactions, applications))
}
