package migration

// Source kinds.
const (
	SourceDir    = "dir"
	SourceBucket = "bucket"
)

// Config holds configuration for data import and export.
type Config struct {
	// Source selects where export files live (dir, bucket).
	Source string `mapstructure:"source" default:"dir"`
	// Dir is the local directory holding export files.
	Dir string `mapstructure:"dir" default:"."`
	// Prefix is the object key prefix inside the storage bucket.
	Prefix string `mapstructure:"prefix" default:""`
	// MenuBatchSize is the number of menu items written per batch.
	MenuBatchSize int `mapstructure:"menu_batch_size" default:"10"`
	// OrderBatchSize is the number of orders written per batch.
	OrderBatchSize int `mapstructure:"order_batch_size" default:"50"`
}
