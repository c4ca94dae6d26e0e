package repository

import (
	"context"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
)

// MeasuringUnitRepository puerto de persistencia para unidades de medida.
type MeasuringUnitRepository interface {
	Create(ctx context.Context, unit *entity.MeasuringUnit) error
	GetByID(ctx context.Context, id string) (*entity.MeasuringUnit, error)
	List(ctx context.Context) ([]*entity.MeasuringUnit, error)
	// MapByIDs carga varias unidades de una vez (conversión en recetas).
	MapByIDs(ctx context.Context, ids []string) (map[string]*entity.MeasuringUnit, error)
}
