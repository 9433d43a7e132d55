package handlers

import (
	"qube-server/cart"
	"qube-server/database"

	"go.uber.org/zap"
)

// DB is the shared database handle for all handlers.
var DB *database.DB

// Snapshots is the persistence port cart stores are hydrated from. Tests
// substitute an in-memory implementation.
var Snapshots cart.SnapshotStore

// Logger is the shared structured logger.
var Logger *zap.Logger

// InitializeHandlers wires the handler package to its collaborators.
func InitializeHandlers(db *database.DB, logger *zap.Logger) {
	DB = db
	Snapshots = database.NewSnapshotStore(db)
	if logger == nil {
		logger = zap.NewNop()
	}
	Logger = logger
}
