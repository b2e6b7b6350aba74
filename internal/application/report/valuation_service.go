package report

import (
	"context"

	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/domain/report"
	"go.uber.org/zap"
)

// ValuationService produces on-demand inventory valuation reports. The
// report is a pure read over current stock rows; no snapshot is stored and
// two calls may disagree if stock moved between them.
type ValuationService struct {
	items  inventory.StockItemRepository
	rates  report.RateTable
	logger *zap.Logger
}

// NewValuationService creates a new ValuationService. The rate table comes
// from configuration and is fixed for the process lifetime.
func NewValuationService(items inventory.StockItemRepository, rates report.RateTable, logger *zap.Logger) *ValuationService {
	return &ValuationService{items: items, rates: rates, logger: logger}
}

// Valuate computes the valuation report over the filtered item set,
// converting every amount into the configured base currency.
func (s *ValuationService) Valuate(ctx context.Context, req ValuationRequest) (*ValuationResponse, error) {
	items, err := s.items.FindForValuation(ctx, inventory.ValuationFilter{
		Category: req.Category,
		SubType:  req.SubType,
	})
	if err != nil {
		return nil, err
	}

	valuation, err := report.Valuate(items, s.rates)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("valuation computed",
		zap.Int("item_count", valuation.ItemCount),
		zap.String("cost_value", valuation.CostValue.String()),
		zap.String("selling_value", valuation.SellingValue.String()))

	resp := ToValuationResponse(valuation)
	return &resp, nil
}
