package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"backup-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver uploads a JSON report of each completed sync run to object
// storage for auditing. A nil Archiver disables archiving entirely; archive
// failures are logged and never fail the sync that produced the report.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

// runReport is the archived payload for one completed sync run.
type runReport struct {
	CompletedAt time.Time `json:"completedAt"`
	DurationMS  int64     `json:"durationMs"`
	Summary     Summary   `json:"summary"`
}

// NewArchiver creates an archiver writing into the given bucket.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{
		client: client,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// ArchiveRun uploads the report under runs/<timestamp>.json.
func (a *Archiver) ArchiveRun(ctx context.Context, summary Summary, elapsed time.Duration) {
	if a == nil {
		return
	}

	completedAt := a.now().UTC()
	report := runReport{
		CompletedAt: completedAt,
		DurationMS:  elapsed.Milliseconds(),
		Summary:     summary,
	}

	payload, err := json.Marshal(report)
	if err != nil {
		a.logger.Warn("Failed to marshal run report", zap.Error(err))
		return
	}

	if err := a.ensureBucket(ctx); err != nil {
		a.logger.Warn("Failed to ensure archive bucket", zap.String("bucket", a.bucket), zap.Error(err))
		return
	}

	objectName := "runs/" + completedAt.Format("20060102T150405Z") + ".json"
	_, err = a.client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		a.logger.Warn("Failed to archive run report", zap.String("object", objectName), zap.Error(err))
		return
	}

	a.logger.Info("Archived run report", zap.String("object", objectName))
}

func (a *Archiver) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
}
