package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// 고유 제약 위반의 PostgreSQL 에러 코드.
const pqUniqueViolation = "23505"

// PostgresBookmarkRepo 는 PostgreSQL 기반 북마크 리포지토리.
type PostgresBookmarkRepo struct {
	db *sql.DB
}

// NewPostgresBookmarkRepo 는 PostgresBookmarkRepo를 생성한다.
func NewPostgresBookmarkRepo(db *sql.DB) *PostgresBookmarkRepo {
	return &PostgresBookmarkRepo{db: db}
}

// ListByUser 는 사용자가 북마크한 recipe_id 목록을 반환한다.
func (r *PostgresBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT recipe_id FROM bookmark WHERE user_id = $1 ORDER BY recipe_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmark rows: %w", err)
	}

	return ids, nil
}

// Create 는 북마크를 추가한다. 이미 존재하면 ErrDuplicate를 반환한다.
func (r *PostgresBookmarkRepo) Create(ctx context.Context, userID string, recipeID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmark (user_id, recipe_id) VALUES ($1, $2)`,
		userID, recipeID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

// Delete 는 북마크를 삭제한다. 없는 북마크 삭제도 에러가 아니다.
func (r *PostgresBookmarkRepo) Delete(ctx context.Context, userID string, recipeID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM bookmark WHERE user_id = $1 AND recipe_id = $2`,
		userID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

// compile-time interface check
var _ BookmarkRepository = (*PostgresBookmarkRepo)(nil)
