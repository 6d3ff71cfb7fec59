package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := c.Publication.validate(); err != nil {
		return fmt.Errorf("publication: %w", err)
	}

	if c.Moderation.QueuePageSize <= 0 {
		return fmt.Errorf("moderation: queue_page_size must be > 0 (got %d)", c.Moderation.QueuePageSize)
	}
	if c.Moderation.MaxReasonLength <= 0 {
		return fmt.Errorf("moderation: max_reason_length must be > 0 (got %d)", c.Moderation.MaxReasonLength)
	}

	if c.Notification.RetentionDays <= 0 {
		return fmt.Errorf("notification: retention_days must be > 0 (got %d)", c.Notification.RetentionDays)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	d.Driver = strings.ToLower(strings.TrimSpace(d.Driver))
	switch d.Driver {
	case DriverPostgres:
		if d.DSN == "" {
			return fmt.Errorf("dsn is required for the postgres driver")
		}
		if d.MinConns > d.MaxConns {
			return fmt.Errorf("min_conns (%d) must not exceed max_conns (%d)", d.MinConns, d.MaxConns)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown driver %q", d.Driver)
	}
	return nil
}

func (p *PublicationConfig) validate() error {
	if p.MinCards < 1 {
		return fmt.Errorf("min_cards must be >= 1 (got %d)", p.MinCards)
	}
	if p.ListingPageSize <= 0 {
		return fmt.Errorf("listing_page_size must be > 0 (got %d)", p.ListingPageSize)
	}
	if p.MaxReasonLength <= 0 {
		return fmt.Errorf("max_reason_length must be > 0 (got %d)", p.MaxReasonLength)
	}
	return nil
}
