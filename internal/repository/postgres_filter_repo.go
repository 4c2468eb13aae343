package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PostgresSearchFilterRepo 는 PostgreSQL 기반 검색 제외 필터 리포지토리.
type PostgresSearchFilterRepo struct {
	db *sql.DB
}

// NewPostgresSearchFilterRepo 는 PostgresSearchFilterRepo를 생성한다.
func NewPostgresSearchFilterRepo(db *sql.DB) *PostgresSearchFilterRepo {
	return &PostgresSearchFilterRepo{db: db}
}

// ListIngredientIDs 는 사용자의 제외 재료 ID 목록을 반환한다.
func (r *PostgresSearchFilterRepo) ListIngredientIDs(ctx context.Context, userID string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ingredient_id FROM search_filter WHERE user_id = $1 ORDER BY ingredient_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list search filters: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan search filter: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate search filter rows: %w", err)
	}

	return ids, nil
}

// Sync 는 저장된 필터와 지정 집합의 차이를 계산해 삽입/삭제한다.
func (r *PostgresSearchFilterRepo) Sync(ctx context.Context, userID string, ingredientIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT ingredient_id FROM search_filter WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to load current filters: %w", err)
	}
	current := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan current filter: %w", err)
		}
		current[id] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate current filters: %w", err)
	}
	rows.Close()

	wanted := make(map[int]bool, len(ingredientIDs))
	for _, id := range ingredientIDs {
		wanted[id] = true
	}

	var toAdd, toRemove []int
	for id := range wanted {
		if !current[id] {
			toAdd = append(toAdd, id)
		}
	}
	for id := range current {
		if !wanted[id] {
			toRemove = append(toRemove, id)
		}
	}

	for _, id := range toAdd {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO search_filter (user_id, ingredient_id) VALUES ($1, $2)`,
			userID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to insert search filter: %w", err)
		}
	}
	if len(toRemove) > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM search_filter WHERE user_id = $1 AND ingredient_id = ANY($2)`,
			userID, pq.Array(toRemove),
		)
		if err != nil {
			return fmt.Errorf("failed to delete search filters: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// compile-time interface check
var _ SearchFilterRepository = (*PostgresSearchFilterRepo)(nil)
