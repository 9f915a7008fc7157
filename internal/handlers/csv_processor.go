// Package handlers provides Lambda handlers for the financial health engine.
package handlers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	appConfig "financial-health-engine/internal/config"
	"financial-health-engine/internal/services/database"
	"financial-health-engine/internal/services/reconciler"
	s3service "financial-health-engine/internal/services/s3"
	"financial-health-engine/internal/utils"
)

// objectStore is the slice of the S3 service the processor needs: fetch the
// uploaded CSV and remove it once its rows are imported.
type objectStore interface {
	DownloadFile(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
}

// CSVProcessorHandler handles S3 events for bulk profile imports. Every row
// runs through the same resolve-then-update flow as the interactive form, so
// imported profiles keep the inputs/ratios consistency guarantee.
type CSVProcessorHandler struct {
	store      objectStore
	db         *database.DB
	reconciler *reconciler.Reconciler
}

// NewCSVProcessorHandler creates a new CSV processor handler.
func NewCSVProcessorHandler() (*CSVProcessorHandler, error) {
	store, err := s3service.NewService(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 service: %w", err)
	}

	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	// Short-lived lambda, no need for the tuned server pool.
	db, err := database.NewFromURL(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &CSVProcessorHandler{
		store:      store,
		db:         db,
		reconciler: reconciler.New(database.NewProfileRepository(db)),
	}, nil
}

// CSVProcessResult is the result of processing a CSV file.
type CSVProcessResult struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// Handle processes S3 events for uploaded CSV files.
func (h *CSVProcessorHandler) Handle(ctx context.Context, s3Event events.S3Event) (CSVProcessResult, error) {
	logger := utils.GetLogger()

	if len(s3Event.Records) == 0 {
		return CSVProcessResult{Message: "No records to process"}, nil
	}

	record := s3Event.Records[0]
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return CSVProcessResult{}, fmt.Errorf("failed to decode S3 key: %w", err)
	}

	logger.Info("Processing uploaded CSV",
		zap.String("bucket", record.S3.Bucket.Name),
		zap.String("key", key),
	)

	content, err := h.store.DownloadFile(ctx, key)
	if err != nil {
		return CSVProcessResult{}, err
	}

	parser := utils.NewCSVParser()
	imports, parseErrors := parser.ParseProfiles(string(content))

	result := CSVProcessResult{
		Failed: len(parseErrors),
	}
	for _, perr := range parseErrors {
		result.Errors = append(result.Errors, perr.Error())
	}

	for _, row := range imports {
		id, err := h.reconciler.ResolveOrCreate(ctx, row.Identity)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.Identity.Email, err))
			continue
		}
		if _, err := h.reconciler.ApplyFinancialUpdate(ctx, id, row.Inputs); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.Identity.Email, err))
			continue
		}
		result.Imported++
	}

	// Remove the upload once its rows are in; a failed delete leaves the
	// object for manual cleanup but does not fail the import.
	if result.Imported > 0 {
		if err := h.store.DeleteFile(ctx, key); err != nil {
			logger.Warn("Failed to delete processed CSV", zap.String("key", key), zap.Error(err))
		}
	}

	result.Message = fmt.Sprintf("Imported %d profiles from %s", result.Imported, key)

	logger.Info("CSV import complete",
		zap.String("key", key),
		zap.Int("imported", result.Imported),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

// Close cleans up resources.
func (h *CSVProcessorHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}
