package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// BusyConfig holds connection parameters for the Busy SQL Server instance the
// item snapshot is extracted from.
type BusyConfig struct {
	Server   string
	Database string
	User     string
	Password string
}

// BusyConfigFromEnv reads SQLSERVER, SQLDATABASE, SQLUSER, SQLPASSWORD.
func BusyConfigFromEnv() BusyConfig {
	return BusyConfig{
		Server:   strings.TrimSpace(os.Getenv("SQLSERVER")),
		Database: strings.TrimSpace(os.Getenv("SQLDATABASE")),
		User:     strings.TrimSpace(os.Getenv("SQLUSER")),
		Password: strings.TrimSpace(os.Getenv("SQLPASSWORD")),
	}
}

// Validate fails fast before any network I/O is attempted.
func (c BusyConfig) Validate() error {
	if c.Server == "" || c.Database == "" {
		return fmt.Errorf("SQLSERVER and SQLDATABASE environment variables must be set for sync")
	}
	return nil
}

// DSN builds the sqlserver connection string. Without a user the driver falls
// back to the ambient (trusted) credentials.
func (c BusyConfig) DSN() string {
	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     c.Server,
		RawQuery: url.Values{"database": {c.Database}, "TrustServerCertificate": {"true"}}.Encode(),
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}

// NewBusyDB opens a GORM handle against the Busy SQL Server.
func NewBusyDB(cfg BusyConfig) (*gorm.DB, error) {
	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(sqlserver.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
