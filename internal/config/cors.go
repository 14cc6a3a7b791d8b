package config

// CORSConfig представляет конфигурацию CORS политики.
// Разрешен единственный origin клиентского приложения.
type CORSConfig struct {
	AllowedOrigin string `yaml:"allowed_origin" env:"STAFFDIR_CORS_ALLOWED_ORIGIN" env-default:"http://localhost:3000"`
}
