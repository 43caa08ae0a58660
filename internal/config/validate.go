package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("database.max_conns (%d) must be >= database.min_conns (%d)",
			c.Database.MaxConns, c.Database.MinConns)
	}

	if err := c.Import.validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	return nil
}

func (i *ImportConfig) validate() error {
	if i.RowTimeout <= 0 {
		return fmt.Errorf("row_timeout must be > 0 (got %v)", i.RowTimeout)
	}
	if i.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0 (got %d)", i.MaxFileBytes)
	}
	if i.MaxRows < 0 {
		return fmt.Errorf("max_rows must be >= 0 (got %d)", i.MaxRows)
	}
	return nil
}
