package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. FITCAL_DATABASE_DSN.
const EnvPrefix = "FITCAL"

// EnvConfig mirrors Config for envconfig. Unset variables leave the zero
// value, which parseEnv skips.
type EnvConfig struct {
	EndpointAddrGRPC             string        `envconfig:"GRPC_ADDR"`
	EndpointAddrHTTP             string        `envconfig:"HTTP_ADDR"`
	DatabaseDSN                  string        `envconfig:"DATABASE_DSN"`
	SecretKey                    string        `envconfig:"SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `envconfig:"ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `envconfig:"REFRESH_TOKEN_TTL"`
	MaxBackupBytes               int64         `envconfig:"MAX_BACKUP_BYTES"`
	S3RootUser                   string        `envconfig:"S3_ROOT_USER"`
	S3RootPassword               string        `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket                     string        `envconfig:"S3_BUCKET"`
	S3Region                     string        `envconfig:"S3_REGION"`
	S3BaseEndpoint               string        `envconfig:"S3_BASE_ENDPOINT"`
	LogLevel                     string        `envconfig:"LOG_LEVEL"`
}

// parseEnv overlays Config with FITCAL_* variables. Malformed values panic,
// like the other loaders.
func parseEnv(cfg *Config) {
	var ec EnvConfig
	if err := envconfig.Process(EnvPrefix, &ec); err != nil {
		panic(err)
	}

	setString(&cfg.EndpointAddrGRPC, ec.EndpointAddrGRPC)
	setString(&cfg.EndpointAddrHTTP, ec.EndpointAddrHTTP)
	setString(&cfg.DatabaseDSN, ec.DatabaseDSN)
	setString(&cfg.SecretKey, ec.SecretKey)
	if ec.AccessTokenValidityDuration > 0 {
		cfg.AccessTokenValidityDuration = ec.AccessTokenValidityDuration
	}
	if ec.RefreshTokenValidityDuration > 0 {
		cfg.RefreshTokenValidityDuration = ec.RefreshTokenValidityDuration
	}
	if ec.MaxBackupBytes > 0 {
		cfg.MaxBackupBytes = ec.MaxBackupBytes
	}
	setString(&cfg.S3RootUser, ec.S3RootUser)
	setString(&cfg.S3RootPassword, ec.S3RootPassword)
	setString(&cfg.S3Bucket, ec.S3Bucket)
	setString(&cfg.S3Region, ec.S3Region)
	setString(&cfg.S3BaseEndpoint, ec.S3BaseEndpoint)
	setString(&cfg.LogLevel, ec.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
