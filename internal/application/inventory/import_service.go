package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/retailcore/backoffice/internal/application/txn"
	"github.com/retailcore/backoffice/internal/domain/inventory"
	"github.com/retailcore/backoffice/internal/domain/shared"
	csvimport "github.com/retailcore/backoffice/internal/infrastructure/import"
	"go.uber.org/zap"
)

// ImportService loads stock items from CSV uploads. A file that fails
// structural validation is rejected outright; individual bad rows are
// skipped and reported while the good rows still land.
type ImportService struct {
	scope  txn.Scope
	logger *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(scope txn.Scope, logger *zap.Logger) *ImportService {
	return &ImportService{scope: scope, logger: logger}
}

// ImportStockItemsResponse reports the outcome of one import. Skipped rows
// are explained one by one in Errors.
type ImportStockItemsResponse struct {
	Created int                  `json:"created"`
	Skipped int                  `json:"skipped"`
	Errors  []csvimport.RowError `json:"errors,omitempty"`
}

// ImportStockItems parses the CSV and creates one stock item per valid row
// inside a single transaction. Rows whose SKU already exists are skipped and
// reported, not updated; stock corrections go through warehouse operations.
func (s *ImportService) ImportStockItems(ctx context.Context, file io.Reader, actor *uuid.UUID) (*ImportStockItemsResponse, error) {
	parsed, err := csvimport.ParseStockItems(file)
	if err != nil {
		return nil, shared.NewValidationError("INVALID_IMPORT_FILE", err.Error())
	}

	resp := &ImportStockItemsResponse{Errors: parsed.Errors}

	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		for _, record := range parsed.Records {
			if _, err := repos.StockItems().FindBySKU(ctx, record.SKU); err == nil {
				resp.Errors = append(resp.Errors, csvimport.RowError{
					Row:     record.Line,
					Column:  "sku",
					Code:    csvimport.ErrCodeDuplicateSKU,
					Message: "a stock item with this SKU already exists",
					Value:   record.SKU,
				})
				continue
			} else if !errors.Is(err, shared.ErrNotFound) {
				return err
			}

			item, err := inventory.NewStockItem(record.SKU, record.Name, record.Category,
				record.SubType, record.UnitCost, record.ListPrice, record.Currency)
			if err != nil {
				return err
			}
			if record.OnHand > 0 {
				if err := item.Receive(record.OnHand); err != nil {
					return err
				}
			}
			item.RefreshStatus(0)

			if err := repos.StockItems().Save(ctx, item); err != nil {
				return err
			}

			entry := shared.NewAuditLog(actor, "stock_item.imported", "stock_item", item.ID,
				fmt.Sprintf("imported %s from CSV row %d", item.SKU, record.Line))
			if err := repos.AuditLogs().Append(ctx, entry); err != nil {
				return err
			}

			resp.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.Skipped = len(resp.Errors)

	s.logger.Info("stock item import finished",
		zap.Int("created", resp.Created),
		zap.Int("skipped", resp.Skipped))

	return resp, nil
}
