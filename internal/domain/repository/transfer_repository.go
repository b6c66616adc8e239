package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados entre bodegas.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	CreateLine(line *entity.TransferLine) error
	GetByID(id string) (*entity.Transfer, error)
	ListLines(transferID string) ([]*entity.TransferLine, error)
	List(limit, offset int) ([]*entity.Transfer, error)
	DeleteLines(transferID string) error
	Delete(id string) error
}
