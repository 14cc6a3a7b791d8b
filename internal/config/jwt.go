package config

import "time"

// JWTConfig содержит настройки для bearer-токенов.
// Значение секрета по умолчанию пригодно только для разработки.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"STAFFDIR_JWT_SECRET_KEY" env-default:"devsecret"`
	TokenTTL   string `yaml:"token_ttl" env:"STAFFDIR_JWT_TOKEN_TTL" env-default:"168h"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"STAFFDIR_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL возвращает время жизни токена.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 168 * time.Hour
	}
	return duration
}
