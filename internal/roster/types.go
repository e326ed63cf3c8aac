package roster

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the player directory.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
