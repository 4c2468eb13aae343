package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/mallang/recipe-api/internal/model"
)

// PostgresIngredientRepo 는 PostgreSQL 기반 재료 카탈로그 리포지토리.
type PostgresIngredientRepo struct {
	db *sql.DB
}

// NewPostgresIngredientRepo 는 PostgresIngredientRepo를 생성한다.
func NewPostgresIngredientRepo(db *sql.DB) *PostgresIngredientRepo {
	return &PostgresIngredientRepo{db: db}
}

// FindByNames 는 재료명 목록에 일치하는 재료를 반환한다.
func (r *PostgresIngredientRepo) FindByNames(ctx context.Context, names []string) ([]model.Ingredient, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT ingredient_id, ingredient_name
		 FROM ingredient
		 WHERE ingredient_name = ANY($1)
		 ORDER BY ingredient_id`,
		pq.Array(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find ingredients by names: %w", err)
	}
	defer rows.Close()
	return scanIngredients(rows)
}

// SearchByName 은 재료명 LIKE 검색 결과를 반환한다.
func (r *PostgresIngredientRepo) SearchByName(ctx context.Context, keyword string) ([]model.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ingredient_id, ingredient_name
		 FROM ingredient
		 WHERE ingredient_name LIKE '%' || $1 || '%'
		 ORDER BY ingredient_id`,
		keyword,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}
	defer rows.Close()
	return scanIngredients(rows)
}

func scanIngredients(rows *sql.Rows) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	for rows.Next() {
		var ing model.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredient rows: %w", err)
	}
	return ingredients, nil
}

// compile-time interface check
var _ IngredientRepository = (*PostgresIngredientRepo)(nil)
