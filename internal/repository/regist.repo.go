package repository

import (
	ledgerRepo "pos-terminal/internal/repository/ledger"
	sessionRepo "pos-terminal/internal/repository/session"
)

// IRepository is a container for all repository interfaces
type IRepository struct {
	Session sessionRepo.IRepository
	Ledger  ledgerRepo.IRepository
}
