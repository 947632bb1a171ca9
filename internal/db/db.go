package db

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Cri010101/toelettatura-system/internal/config"
)

// Open connects to Postgres through pgx. In production the server
// certificate chain is not verified, managed providers often present
// self-signed chains.
func Open(cfg *config.Config) (*gorm.DB, error) {
	connCfg, err := connConfig(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB := stdlib.OpenDB(*connCfg)

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return gdb, nil
}

func connConfig(cfg *config.Config) (*pgx.ConnConfig, error) {
	connCfg, err := pgx.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.IsProduction() {
		relaxTLS(connCfg)
	}
	return connCfg, nil
}

// relaxTLS forces TLS on the primary attempt and turns off certificate
// checks everywhere TLS is used. Plaintext fallbacks stay plaintext.
func relaxTLS(c *pgx.ConnConfig) {
	if c.TLSConfig == nil {
		c.TLSConfig = &tls.Config{ServerName: c.Host}
	}
	skipVerify(c.TLSConfig)

	for _, fb := range c.Fallbacks {
		if fb.TLSConfig != nil {
			skipVerify(fb.TLSConfig)
		}
	}
}

func skipVerify(t *tls.Config) {
	t.InsecureSkipVerify = true
	// verify-ca installs its own chain check
	t.VerifyPeerCertificate = nil
	t.VerifyConnection = nil
}
