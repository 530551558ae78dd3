package storage

import "ficha-generator/models"

// FichaStore is the interface any generation-history backend must satisfy.
type FichaStore interface {
	Insert(rec *models.FichaRecord) error
	Recent(limit int) ([]*models.FichaRecord, error)
	Close() error
}
