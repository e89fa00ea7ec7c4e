// Package storage selects the ledger backend from configuration.
package storage

import (
	"github.com/bobmcallan/worth/internal/common"
	"github.com/bobmcallan/worth/internal/interfaces"
	"github.com/bobmcallan/worth/internal/storage/demostore"
	"github.com/bobmcallan/worth/internal/storage/ledgerdb"
)

// NewLedgerStore returns the ledger backend the configuration asks for:
// the synthetic read-only store in demo mode, BadgerHold otherwise.
func NewLedgerStore(logger *common.Logger, cfg *common.Config) (interfaces.LedgerStore, error) {
	if cfg.Demo.Enabled {
		logger.Info().Msg("Demo mode enabled, using synthetic ledger")
		return demostore.NewStore(logger, cfg.Demo.Profiles), nil
	}
	return ledgerdb.NewStore(logger, cfg.Storage.Path)
}
