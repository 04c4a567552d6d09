package storage

import (
	"context"
	"fmt"

	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
	"github.com/inmobiliaria/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewReportStorage builds the report storage selected by cfg.Backend.
// For s3 the bucket is created when missing.
func NewReportStorage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (apprealestate.ReportStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "s3":
		s, err := NewS3ReportStorage(ctx, cfg, WithLogger(logger.Named("storage")))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("using S3 report storage", zap.String("bucket", s.Bucket()))
		return s, nil
	case "local", "":
		s, err := NewLocalReportStorage(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		logger.Info("using local report storage", zap.String("dir", s.Dir()))
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
