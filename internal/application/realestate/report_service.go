package realestate

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ReportStorage stores exported report files
type ReportStorage interface {
	// Upload writes data under key
	Upload(ctx context.Context, key string, data []byte, contentType string) error

	// GenerateDownloadURL returns a time-limited URL for key
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// ReportService exports read-side aggregations as files
type ReportService struct {
	queries    *QueryService
	storage    ReportStorage
	urlExpires time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(queries *QueryService, storage ReportStorage, urlExpires time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if urlExpires <= 0 {
		urlExpires = 15 * time.Minute
	}
	return &ReportService{
		queries:    queries,
		storage:    storage,
		urlExpires: urlExpires,
		logger:     logger.Named("reports"),
		now:        time.Now,
	}
}

// ExportSalesByAgent writes the sales-by-agent summary as CSV to storage
func (s *ReportService) ExportSalesByAgent(ctx context.Context) (*ReportExportResponse, error) {
	rows, err := s.queries.SalesByAgent(ctx)
	if err != nil {
		return nil, err
	}

	data, err := encodeSalesByAgentCSV(rows)
	if err != nil {
		return nil, fmt.Errorf("encode sales-by-agent report: %w", err)
	}

	key := fmt.Sprintf("reports/sales-by-agent/%s.csv", s.now().UTC().Format("20060102T150405Z"))
	if err := s.storage.Upload(ctx, key, data, "text/csv"); err != nil {
		return nil, err
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.urlExpires)
	if err != nil {
		return nil, err
	}

	s.logger.Info("sales-by-agent report exported", zap.String("key", key), zap.Int("rows", len(rows)))
	return &ReportExportResponse{
		Key:         key,
		Rows:        len(rows),
		DownloadURL: url,
		ExpiresAt:   expiresAt,
	}, nil
}

func encodeSalesByAgentCSV(rows []AgentSalesSummaryResponse) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"agent_id", "agent_name", "sales_count", "total_amount"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.AgentID.String(),
			r.AgentName,
			strconv.FormatInt(r.SalesCount, 10),
			r.TotalAmount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
