package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/mallang/recipe-api/internal/model"
)

// PostgresRefrigeratorRepo 는 PostgreSQL 기반 냉장고 리포지토리.
type PostgresRefrigeratorRepo struct {
	db *sql.DB
}

// NewPostgresRefrigeratorRepo 는 PostgresRefrigeratorRepo를 생성한다.
func NewPostgresRefrigeratorRepo(db *sql.DB) *PostgresRefrigeratorRepo {
	return &PostgresRefrigeratorRepo{db: db}
}

// ListCompartments 는 사용자의 냉장고 칸을 refrigerator_id 오름차순으로 반환한다.
func (r *PostgresRefrigeratorRepo) ListCompartments(ctx context.Context, userID string) ([]model.Compartment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT refrigerator_id, refrigerator_name, refrigerator_type
		 FROM refrigerator
		 WHERE user_id = $1
		 ORDER BY refrigerator_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list compartments: %w", err)
	}
	defer rows.Close()

	var compartments []model.Compartment
	for rows.Next() {
		var c model.Compartment
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("failed to scan compartment: %w", err)
		}
		compartments = append(compartments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate compartment rows: %w", err)
	}

	return compartments, nil
}

// CountByUser 는 사용자의 냉장고 칸 수를 반환한다.
func (r *PostgresRefrigeratorRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM refrigerator WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count compartments: %w", err)
	}
	return count, nil
}

// CreateCompartment 는 냉장고 칸을 추가한다.
func (r *PostgresRefrigeratorRepo) CreateCompartment(ctx context.Context, userID, name string, compartmentType int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refrigerator (user_id, refrigerator_name, refrigerator_type)
		 VALUES ($1, $2, $3)`,
		userID, name, compartmentType,
	)
	if err != nil {
		return fmt.Errorf("failed to insert compartment: %w", err)
	}
	return nil
}

// UpdateCompartment 는 칸 이름/타입을 갱신한다. (id, user) 일치 행이 없으면
// false를 반환한다.
func (r *PostgresRefrigeratorRepo) UpdateCompartment(ctx context.Context, userID string, compartmentID int, name string, compartmentType int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE refrigerator
		 SET refrigerator_name = $1, refrigerator_type = $2
		 WHERE refrigerator_id = $3 AND user_id = $4`,
		name, compartmentType, compartmentID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update compartment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteCompartment 는 칸과 그 안의 재료를 하나의 트랜잭션으로 삭제한다.
func (r *PostgresRefrigeratorRepo) DeleteCompartment(ctx context.Context, userID string, compartmentID int) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 소속 재료 먼저 정리
	_, err = tx.ExecContext(ctx,
		`DELETE FROM refrigerator_ingredients
		 WHERE refrigerator_id = $1
		   AND refrigerator_id IN (SELECT refrigerator_id FROM refrigerator WHERE user_id = $2)`,
		compartmentID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete compartment ingredients: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM refrigerator WHERE refrigerator_id = $1 AND user_id = $2`,
		compartmentID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete compartment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// ListIngredientsByUser 는 사용자의 모든 보관 재료를 칸 ID와 함께 반환한다.
func (r *PostgresRefrigeratorRepo) ListIngredientsByUser(ctx context.Context, userID string) ([]model.StoredIngredient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT i.refrigerator_ing_id, i.refrigerator_id, i.refrigerator_ing_name,
		        i.expired_date, i.enter_date, i.color
		 FROM refrigerator_ingredients i
		 JOIN refrigerator r ON r.refrigerator_id = i.refrigerator_id
		 WHERE r.user_id = $1
		 ORDER BY i.refrigerator_ing_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []model.StoredIngredient
	for rows.Next() {
		var ing model.StoredIngredient
		if err := rows.Scan(&ing.ID, &ing.CompartmentID, &ing.Name, &ing.ExpiredDate, &ing.EnterDate, &ing.Color); err != nil {
			return nil, fmt.Errorf("failed to scan stored ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredient rows: %w", err)
	}

	return ingredients, nil
}

// AddIngredients 는 재료를 일괄 삽입한다. 하나라도 실패하면 전체 롤백한다.
func (r *PostgresRefrigeratorRepo) AddIngredients(ctx context.Context, ingredients []model.StoredIngredient) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ing := range ingredients {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO refrigerator_ingredients
			   (refrigerator_id, refrigerator_ing_name, expired_date, enter_date, color)
			 VALUES ($1, $2, $3, $4, $5)`,
			ing.CompartmentID, ing.Name, ing.ExpiredDate, ing.EnterDate, ing.Color,
		)
		if err != nil {
			return fmt.Errorf("failed to insert stored ingredient: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteIngredients 는 재료를 ID 목록으로 삭제하고 삭제된 행 수를 반환한다.
func (r *PostgresRefrigeratorRepo) DeleteIngredients(ctx context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM refrigerator_ingredients WHERE refrigerator_ing_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stored ingredients: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(affected), nil
}

// compile-time interface check
var _ RefrigeratorRepository = (*PostgresRefrigeratorRepo)(nil)
