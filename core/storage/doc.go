// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface the migration
// sources need, and supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Helpers
//
//   - ReadObject: downloads an object, mapping missing keys to ErrObjectNotFound.
//   - WriteObject: uploads an object, creating the bucket when needed.
//   - ObjectKey: joins a key prefix and an object name.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, cfg.Storage.Bucket, "orders-export.json")
package storage
