package trialdb

import (
	"database/sql"
	"fmt"
	"log"
)

// Client is the main entry point for the trials database
type Client struct {
	config  Config
	DB      *sql.DB
	Queries *Queries
}

// NewClient opens the database with the provided configuration and applies migrations
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, fmt.Errorf("unable to create DB: %w", err)
	}
	if config.verbose {
		log.Println("Successfully created tables")
	}

	queries := New(db)

	client := &Client{
		config:  config,
		DB:      db,
		Queries: queries,
	}
	return client, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}
