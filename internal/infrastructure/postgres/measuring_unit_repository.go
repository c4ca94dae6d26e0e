package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

var _ repository.MeasuringUnitRepository = (*MeasuringUnitRepo)(nil)

// MeasuringUnitRepo implementación de MeasuringUnitRepository sobre PostgreSQL.
type MeasuringUnitRepo struct {
	q Querier
}

// NewMeasuringUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMeasuringUnitRepository(q Querier) *MeasuringUnitRepo {
	return &MeasuringUnitRepo{q: q}
}

// Create persiste una unidad de medida.
func (r *MeasuringUnitRepo) Create(ctx context.Context, unit *entity.MeasuringUnit) error {
	query := `
		INSERT INTO measuring_units (id, name, symbol, base_unit_id, conversion_factor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		unit.ID, unit.Name, unit.Symbol, unit.BaseUnitID, unit.ConversionFactor, unit.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert measuring unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *MeasuringUnitRepo) GetByID(ctx context.Context, id string) (*entity.MeasuringUnit, error) {
	query := `
		SELECT id, name, symbol, base_unit_id, conversion_factor, created_at
		FROM measuring_units WHERE id = $1`
	var u entity.MeasuringUnit
	err := r.q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Symbol, &u.BaseUnitID, &u.ConversionFactor, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get measuring unit: %w", err)
	}
	return &u, nil
}

// List todas las unidades del catálogo.
func (r *MeasuringUnitRepo) List(ctx context.Context) ([]*entity.MeasuringUnit, error) {
	query := `
		SELECT id, name, symbol, base_unit_id, conversion_factor, created_at
		FROM measuring_units ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list measuring units: %w", err)
	}
	defer rows.Close()

	var units []*entity.MeasuringUnit
	for rows.Next() {
		var u entity.MeasuringUnit
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol, &u.BaseUnitID, &u.ConversionFactor, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan measuring unit: %w", err)
		}
		units = append(units, &u)
	}
	return units, rows.Err()
}

// MapByIDs carga varias unidades en un solo viaje (conversión de recetas).
func (r *MeasuringUnitRepo) MapByIDs(ctx context.Context, ids []string) (map[string]*entity.MeasuringUnit, error) {
	if len(ids) == 0 {
		return map[string]*entity.MeasuringUnit{}, nil
	}
	query := `
		SELECT id, name, symbol, base_unit_id, conversion_factor, created_at
		FROM measuring_units WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("map measuring units: %w", err)
	}
	defer rows.Close()

	units := make(map[string]*entity.MeasuringUnit, len(ids))
	for rows.Next() {
		var u entity.MeasuringUnit
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol, &u.BaseUnitID, &u.ConversionFactor, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan measuring unit: %w", err)
		}
		units[u.ID] = &u
	}
	return units, rows.Err()
}
