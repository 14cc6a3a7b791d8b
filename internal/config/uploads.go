package config

// UploadsConfig содержит настройки хранилища загруженных файлов.
type UploadsConfig struct {
	Dir        string `yaml:"dir" env:"STAFFDIR_UPLOADS_DIR" env-default:"uploads"`
	MaxSizeMiB int    `yaml:"max_size_mib" env:"STAFFDIR_UPLOADS_MAX_SIZE_MIB" env-default:"5"`
}

// GetMaxBytes возвращает максимальный размер файла в байтах.
func (c *UploadsConfig) GetMaxBytes() int64 {
	return int64(c.MaxSizeMiB) * 1024 * 1024
}
