package cmd

import "time"

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	CacheBackend         string
	RedisAddr            string
	QuoteTTL             time.Duration
	CartQuoteTimeout     time.Duration
	MaxConcurrentSellers int
}
