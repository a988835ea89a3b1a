package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"stockroom/internal/common"
	"stockroom/internal/metrics"
	"stockroom/internal/models"
	"stockroom/internal/reports"
	"stockroom/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportSettings are the presentation options shared by every report.
type ReportSettings struct {
	AppName        string
	CurrencySymbol string
	Bucket         string
	URLExpiry      time.Duration
}

type ReportService interface {
	// Generate returns the report as CSV or HTML text.
	Generate(ctx context.Context, kind reports.Kind, enc reports.Encoding, storageID *uuid.UUID) (string, error)
	// Export renders the report to a file, stores it and returns a
	// time-limited download link.
	Export(ctx context.Context, kind reports.Kind, format reports.Format, storageID *uuid.UUID) (*models.ExportResult, error)
}

type reportService struct {
	snapshots repositories.SnapshotRepository
	store     MinioService
	metrics   *metrics.Metrics
	settings  ReportSettings
	logger    *zap.Logger
	now       func() time.Time
}

func NewReportService(snapshots repositories.SnapshotRepository, store MinioService, m *metrics.Metrics, settings ReportSettings, logger *zap.Logger) ReportService {
	return &reportService{
		snapshots: snapshots,
		store:     store,
		metrics:   m,
		settings:  settings,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) options(at time.Time) reports.Options {
	return reports.Options{
		AppName:        s.settings.AppName,
		CurrencySymbol: s.settings.CurrencySymbol,
		GeneratedAt:    at,
	}
}

func (s *reportService) load(ctx context.Context, storageID *uuid.UUID) (*models.Snapshot, error) {
	snap, err := s.snapshots.Load(ctx, storageID)
	if err != nil {
		return nil, common.NewPersistenceError("load report data", err)
	}
	return snap, nil
}

func (s *reportService) Generate(ctx context.Context, kind reports.Kind, enc reports.Encoding, storageID *uuid.UUID) (string, error) {
	snap, err := s.load(ctx, storageID)
	if err != nil {
		return "", err
	}
	text, err := reports.Generate(snap, kind, enc, s.options(s.now()))
	if err != nil {
		return "", common.NewExportFailure("render", err)
	}
	return text, nil
}

func (s *reportService) Export(ctx context.Context, kind reports.Kind, format reports.Format, storageID *uuid.UUID) (*models.ExportResult, error) {
	start := time.Now()
	result, err := s.export(ctx, kind, format, storageID)

	outcome := "success"
	if err != nil {
		outcome = "failure"
		s.logger.Error("report export failed",
			zap.String("kind", string(kind)),
			zap.String("format", string(format)),
			zap.Error(err))
	}
	s.metrics.ExportsTotal.WithLabelValues(string(kind), string(format), outcome).Inc()
	s.metrics.ExportDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	return result, err
}

func (s *reportService) export(ctx context.Context, kind reports.Kind, format reports.Format, storageID *uuid.UUID) (*models.ExportResult, error) {
	snap, err := s.load(ctx, storageID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	opts := s.options(at)
	data, err := reports.Render(reports.Build(snap, kind, opts), format, opts)
	if err != nil {
		return nil, common.NewExportFailure("render", err)
	}

	fileName := reports.FileName(s.settings.AppName, kind, string(format), at)
	objectKey := fmt.Sprintf("reports/%s/%s/%s", kind, uuid.NewString(), fileName)

	if err := s.store.EnsureBucketExists(ctx, s.settings.Bucket); err != nil {
		return nil, common.NewExportFailure("upload", err)
	}
	if err := s.store.Upload(ctx, s.settings.Bucket, objectKey, bytes.NewReader(data), int64(len(data)), format.ContentType()); err != nil {
		return nil, common.NewExportFailure("upload", err)
	}
	url, err := s.store.GetPresignedURL(ctx, s.settings.Bucket, objectKey, s.settings.URLExpiry)
	if err != nil {
		return nil, common.NewExportFailure("sign", err)
	}

	s.logger.Info("report exported",
		zap.String("file_name", fileName),
		zap.String("object_key", objectKey),
		zap.Int("size", len(data)))

	return &models.ExportResult{
		FileName:    fileName,
		ObjectKey:   objectKey,
		URL:         url,
		Size:        int64(len(data)),
		ContentType: format.ContentType(),
		GeneratedAt: at,
	}, nil
}
