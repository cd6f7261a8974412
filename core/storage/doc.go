// Package storage provides the object storage client used to archive sync
// run reports.
//
// The client targets any S3-compatible service (MinIO, AWS S3) and is wrapped
// in a small interface so features can be tested against mocks. Archiving is
// optional: when no endpoint is configured the backup feature skips it
// entirely.
package storage
