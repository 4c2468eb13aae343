package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/mallang/recipe-api/internal/model"
)

// PostgresRecipeRepo 는 PostgreSQL 기반 레시피 리포지토리.
type PostgresRecipeRepo struct {
	db *sql.DB
}

// NewPostgresRecipeRepo 는 PostgresRecipeRepo를 생성한다.
func NewPostgresRecipeRepo(db *sql.DB) *PostgresRecipeRepo {
	return &PostgresRecipeRepo{db: db}
}

func scanSummaries(rows *sql.Rows) ([]model.RecipeSummary, error) {
	var recipes []model.RecipeSummary
	for rows.Next() {
		var rec model.RecipeSummary
		if err := rows.Scan(&rec.RecipeID, &rec.Title, &rec.Thumbnail); err != nil {
			return nil, fmt.Errorf("failed to scan recipe summary: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipe rows: %w", err)
	}
	return recipes, nil
}

// ListRecent 는 recipe_id 내림차순 최신 레시피를 limit개까지 반환한다.
func (r *PostgresRecipeRepo) ListRecent(ctx context.Context, limit int) ([]model.RecipeSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT recipe_id, recipe_title, recipe_thumbnail
		 FROM recipe
		 ORDER BY recipe_id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent recipes: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// ListSeasonal 은 지정 월의 제철 식재료를 무작위 순서로 반환한다.
func (r *PostgresRecipeRepo) ListSeasonal(ctx context.Context, month int) ([]model.SeasonalFood, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seasonal_name, seasonal_image
		 FROM seasonal
		 WHERE seasonal_month = $1
		 ORDER BY random()`,
		month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasonal foods: %w", err)
	}
	defer rows.Close()

	var foods []model.SeasonalFood
	for rows.Next() {
		var f model.SeasonalFood
		if err := rows.Scan(&f.Name, &f.Image); err != nil {
			return nil, fmt.Errorf("failed to scan seasonal food: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seasonal rows: %w", err)
	}

	return foods, nil
}

// ListByClass 는 선호 (카테고리, 상황) 쌍에 맞는 레시피를 무작위로 limit개까지 반환한다.
func (r *PostgresRecipeRepo) ListByClass(ctx context.Context, cateNo, situNo, limit int) ([]model.RecipeSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT recipe_id, recipe_title, recipe_thumbnail
		 FROM recipe
		 WHERE cate_no = $1 AND situ_no = $2
		 ORDER BY random()
		 LIMIT $3`,
		cateNo, situNo, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by class: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// ListByCategory 는 카테고리 번호로 무작위 limit개를 반환한다.
func (r *PostgresRecipeRepo) ListByCategory(ctx context.Context, cateNo, limit int) ([]model.RecipeSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT recipe_id, recipe_title, recipe_thumbnail
		 FROM recipe
		 WHERE cate_no = $1
		 ORDER BY random()
		 LIMIT $2`,
		cateNo, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by category: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// ListBySituation 은 상황 번호로 무작위 limit개를 반환한다.
func (r *PostgresRecipeRepo) ListBySituation(ctx context.Context, situNo, limit int) ([]model.RecipeSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT recipe_id, recipe_title, recipe_thumbnail
		 FROM recipe
		 WHERE situ_no = $1
		 ORDER BY random()
		 LIMIT $2`,
		situNo, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by situation: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// GetClass 는 레시피의 (카테고리, 상황) 분류를 조회한다. 없으면 nil을 반환한다.
func (r *PostgresRecipeRepo) GetClass(ctx context.Context, recipeID int) (*model.RecipeClass, error) {
	class := &model.RecipeClass{}
	err := r.db.QueryRowContext(ctx,
		`SELECT cate_no::text, situ_no::text FROM recipe WHERE recipe_id = $1`,
		recipeID,
	).Scan(&class.CateNo, &class.SituNo)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe class: %w", err)
	}

	return class, nil
}

// ListShoppingIngredients 는 레시피에 연결된 재료명 목록을 반환한다.
func (r *PostgresRecipeRepo) ListShoppingIngredients(ctx context.Context, recipeID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.ingredient_name
		 FROM ingredient_search s
		 JOIN ingredient i ON i.ingredient_id = s.ingredient_id
		 WHERE s.recipe_id = $1
		 ORDER BY i.ingredient_name`,
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping ingredients: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredient name rows: %w", err)
	}

	return names, nil
}

// SearchByTitle 은 제목 LIKE 검색 결과를 limit개까지 반환한다.
func (r *PostgresRecipeRepo) SearchByTitle(ctx context.Context, keyword string, limit int) ([]model.RecipeSummary, error) {
	query := `SELECT recipe_id, recipe_title, recipe_thumbnail
	          FROM recipe
	          WHERE recipe_title LIKE '%' || $1 || '%'
	          ORDER BY recipe_id`
	args := []any{keyword}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes by title: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// SearchByIngredient 는 재료명 LIKE 매칭 레시피를 limit개까지 반환한다.
func (r *PostgresRecipeRepo) SearchByIngredient(ctx context.Context, keyword string, limit int) ([]model.RecipeSummary, error) {
	query := `SELECT DISTINCT r.recipe_id, r.recipe_title, r.recipe_thumbnail
	          FROM recipe r
	          JOIN ingredient_search s ON s.recipe_id = r.recipe_id
	          JOIN ingredient i ON i.ingredient_id = s.ingredient_id
	          WHERE i.ingredient_name LIKE '%' || $1 || '%'
	          ORDER BY r.recipe_id`
	args := []any{keyword}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes by ingredient: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// SearchFiltered 는 재료명 매칭 레시피에서 제외 재료명을 포함하는 레시피를 빼고 반환한다.
func (r *PostgresRecipeRepo) SearchFiltered(ctx context.Context, keyword string, excludeNames []string, limit int) ([]model.RecipeSummary, error) {
	query := `SELECT DISTINCT r.recipe_id, r.recipe_title, r.recipe_thumbnail
	          FROM recipe r
	          JOIN ingredient_search s ON s.recipe_id = r.recipe_id
	          JOIN ingredient i ON i.ingredient_id = s.ingredient_id
	          WHERE i.ingredient_name LIKE '%' || $1 || '%'
	            AND r.recipe_id NOT IN (
	              SELECT sub.recipe_id
	              FROM ingredient_search sub
	              JOIN ingredient fil ON fil.ingredient_id = sub.ingredient_id
	              WHERE fil.ingredient_name = ANY($2)
	            )
	          ORDER BY r.recipe_id`
	args := []any{keyword, pq.Array(excludeNames)}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search filtered recipes: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// SearchByAllIngredients 는 지정 재료 ID를 모두 포함하는 레시피를 반환한다.
func (r *PostgresRecipeRepo) SearchByAllIngredients(ctx context.Context, ingredientIDs []int) ([]model.RecipeSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.recipe_id, r.recipe_title, r.recipe_thumbnail
		 FROM recipe r
		 JOIN ingredient_search s ON s.recipe_id = r.recipe_id
		 WHERE s.ingredient_id = ANY($1)
		 GROUP BY r.recipe_id, r.recipe_title, r.recipe_thumbnail
		 HAVING COUNT(DISTINCT s.ingredient_id) = $2
		 ORDER BY r.recipe_id`,
		pq.Array(ingredientIDs), len(ingredientIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes by all ingredients: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// compile-time interface check
var _ RecipeRepository = (*PostgresRecipeRepo)(nil)
