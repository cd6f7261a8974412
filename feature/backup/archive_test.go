package backup

import (
	"context"
	"fmt"
	"testing"
	"time"

	"backup-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestArchiveRun_UploadsReport(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "backup-reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "backup-reports", "runs/20260301T120000Z.json",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "backup-reports", zap.NewNop())
	a.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	a.ArchiveRun(context.Background(), Summary{Builds: 3}, 2*time.Second)

	client.AssertExpectations(t)
}

func TestArchiveRun_CreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "backup-reports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "backup-reports", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "backup-reports", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "backup-reports", zap.NewNop())
	a.ArchiveRun(context.Background(), Summary{}, time.Second)

	client.AssertExpectations(t)
}

func TestArchiveRun_UploadFailureIsSwallowed(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "backup-reports").Return(true, nil)
	client.On("PutObject", mock.Anything, "backup-reports", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, fmt.Errorf("storage unavailable"))

	a := NewArchiver(client, "backup-reports", zap.NewNop())
	a.ArchiveRun(context.Background(), Summary{}, time.Second)

	client.AssertExpectations(t)
}

func TestArchiveRun_NilArchiverIsNoop(t *testing.T) {
	var a *Archiver
	a.ArchiveRun(context.Background(), Summary{Builds: 1}, time.Second)
}
