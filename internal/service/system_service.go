package service

import (
	"database/sql"

	"github.com/grahamfin/Graham-Ledger-Backend/internal/database"
	"github.com/grahamfin/Graham-Ledger-Backend/internal/model"
)

// AppVersion is the released version of the ledger backend.
const AppVersion = "1.0.0"

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns application and schema version information.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion: AppVersion,
		DbVersion:  dbVersion,
	}, nil
}
