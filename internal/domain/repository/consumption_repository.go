package repository

import (
	"context"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// ConsumptionRepository puerto de persistencia para registros de consumo y
// sus asignaciones por lote.
type ConsumptionRepository interface {
	// Create inserta el registro y sus LotAllocations en conjunto.
	Create(ctx context.Context, record *entity.ConsumptionRecord) error
	// GetByID devuelve el registro con sus asignaciones cargadas.
	GetByID(ctx context.Context, id string) (*entity.ConsumptionRecord, error)
	ListByItem(ctx context.Context, stockItemID string, limit, offset int) ([]*entity.ConsumptionRecord, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.ConsumptionRecord, error)
	// Delete elimina el registro y sus asignaciones (tras revertir los lotes).
	Delete(ctx context.Context, id string) error
}
