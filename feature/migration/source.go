package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"order-menu/core/storage"
)

// Export file names.
const (
	MenuItemsFile = "menu-items-export.json"
	OrdersFile    = "orders-export.json"
	SettingsFile  = "settings-export.json"
)

// ErrNotFound is returned by a Source when the requested file does not exist.
var ErrNotFound = errors.New("export file not found")

// Source reads and writes export files.
type Source interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	String() string
}

// DirSource keeps export files in a local directory.
type DirSource struct {
	Dir string
}

func (d DirSource) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return data, err
}

func (d DirSource) Write(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Dir, name), data, 0o644)
}

func (d DirSource) String() string {
	return "dir:" + d.Dir
}

// BucketSource keeps export files in an object storage bucket under Prefix.
type BucketSource struct {
	Client storage.Client
	Bucket string
	Prefix string
}

func (b BucketSource) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := storage.ReadObject(ctx, b.Client, b.Bucket, storage.ObjectKey(b.Prefix, name))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return data, err
}

func (b BucketSource) Write(ctx context.Context, name string, data []byte) error {
	return storage.WriteObject(ctx, b.Client, b.Bucket, storage.ObjectKey(b.Prefix, name), "application/json", data)
}

func (b BucketSource) String() string {
	return "bucket:" + b.Bucket + "/" + b.Prefix
}

// NewSource builds the source selected by cfg. client is only used for buckets.
func NewSource(cfg Config, client storage.Client, bucket string) (Source, error) {
	switch cfg.Source {
	case SourceDir, "":
		return DirSource{Dir: cfg.Dir}, nil
	case SourceBucket:
		if client == nil {
			return nil, errors.New("bucket source requires a storage client")
		}
		return BucketSource{Client: client, Bucket: bucket, Prefix: cfg.Prefix}, nil
	default:
		return nil, fmt.Errorf("unsupported migration source %q", cfg.Source)
	}
}
