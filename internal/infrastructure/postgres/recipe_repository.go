package postgres

import (
	"context"
	"fmt"

	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/entity"
	"github.com/pawanbhattarai/thehotelmountain-sub002/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// ReplaceDishRecipe reemplaza las líneas del plato. Borra e inserta en la
// misma conexión; si q es una tx el reemplazo es atómico.
func (r *RecipeRepo) ReplaceDishRecipe(ctx context.Context, dishID string, lines []*entity.RecipeLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_lines WHERE dish_id = $1`, dishID); err != nil {
		return fmt.Errorf("clear dish recipe: %w", err)
	}
	for _, ln := range lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO recipe_lines (id, dish_id, stock_item_id, quantity, unit_id, cost, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			ln.ID, ln.DishID, ln.StockItemID, ln.Quantity, ln.UnitID, ln.Cost, ln.CreatedAt, ln.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert recipe line: %w", err)
		}
	}
	return nil
}

// ListByDish líneas de receta del plato.
func (r *RecipeRepo) ListByDish(ctx context.Context, dishID string) ([]*entity.RecipeLine, error) {
	query := `
		SELECT id, dish_id, stock_item_id, quantity, unit_id, cost, created_at, updated_at
		FROM recipe_lines WHERE dish_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, dishID)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.RecipeLine
	for rows.Next() {
		var ln entity.RecipeLine
		if err := rows.Scan(&ln.ID, &ln.DishID, &ln.StockItemID, &ln.Quantity, &ln.UnitID,
			&ln.Cost, &ln.CreatedAt, &ln.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		lines = append(lines, &ln)
	}
	return lines, rows.Err()
}

// DeleteByDish borra la receta completa del plato.
func (r *RecipeRepo) DeleteByDish(ctx context.Context, dishID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_lines WHERE dish_id = $1`, dishID); err != nil {
		return fmt.Errorf("delete dish recipe: %w", err)
	}
	return nil
}

// ListDishesUsingItem platos cuyas recetas referencian el ítem.
func (r *RecipeRepo) ListDishesUsingItem(ctx context.Context, stockItemID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT DISTINCT dish_id FROM recipe_lines WHERE stock_item_id = $1`, stockItemID)
	if err != nil {
		return nil, fmt.Errorf("list dishes using item: %w", err)
	}
	defer rows.Close()

	var dishes []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan dish id: %w", err)
		}
		dishes = append(dishes, id)
	}
	return dishes, rows.Err()
}
