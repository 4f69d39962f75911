package config

// StorageConfig defines where subscriptions and user tokens are read from.
// The parquet driver reads subscriptions from a snapshot and tokens from SQLite.
type StorageConfig struct {
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,compression"`
	Driver           string `json:"driver,omitempty" yaml:"driver,omitempty" validate:"required,storagedriver"`
	ParquetPath      string `json:"parquet_path,omitempty" yaml:"parquet_path,omitempty" validate:"required_if=Driver parquet"`
	PostgresDSN      string `json:"postgres_dsn,omitempty" yaml:"postgres_dsn,omitempty" validate:"required_if=Driver postgres"`
	SQLitePath       string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" validate:"required_unless=Driver postgres"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		CompressionCodec: DefaultStorageCompressionCodec,
		Driver:           DefaultStorageDriver,
		ParquetPath:      DefaultStorageParquetPath,
		SQLitePath:       DefaultStorageSQLitePath,
	}
}
