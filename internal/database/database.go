package database

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/quillhq/quill/internal/config"
	"github.com/quillhq/quill/internal/database/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
// The driver is selected by the deployment context: a file-backed sqlite
// database for development, postgres for production.
func New(cfg *config.DatabaseConfig) (*Client, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite, "":
		dialector = sqlite.Open(cfg.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)")
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// WithTx runs fn inside a single transaction. The callback receives a Client
// scoped to that transaction, so a check-then-act sequence on a row cannot
// interleave with another writer.
func (c *Client) WithTx(ctx context.Context, fn func(tx *Client) error) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Client{db: tx})
	})
}

// Close closes the underlying database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
