package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mallang/recipe-api/internal/model"
)

// PostgresSessionRepo 는 PostgreSQL 기반 세션 리포지토리.
type PostgresSessionRepo struct {
	db *sql.DB
}

// NewPostgresSessionRepo 는 PostgresSessionRepo를 생성한다.
func NewPostgresSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db}
}

// Validate 는 (user_id, access_token) 쌍이 정확히 일치하는 세션이 있는지 확인한다.
func (r *PostgresSessionRepo) Validate(ctx context.Context, userID, accessToken string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE user_id = $1 AND access_token = $2)`,
		userID, accessToken,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to validate session: %w", err)
	}
	return exists, nil
}

// CountByUser 는 사용자의 세션 수를 반환한다.
func (r *PostgresSessionRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// Upsert 는 세션을 저장한다. 상한에 도달한 경우 created_at이 가장 오래된 행을
// 재사용하므로 사용자당 세션 수는 3을 넘지 않는다.
func (r *PostgresSessionRepo) Upsert(ctx context.Context, userID, accessToken, userAgent string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}

	if count >= model.MaxSessionsPerUser {
		// 가장 오래된 세션 행을 덮어쓴다(생성순 FIFO 퇴거).
		_, err = tx.ExecContext(ctx,
			`UPDATE sessions
			 SET access_token = $1, user_agent = $2, created_at = now()
			 WHERE session_id = (
				SELECT session_id FROM sessions
				WHERE user_id = $3
				ORDER BY created_at ASC
				LIMIT 1
			 )`,
			accessToken, userAgent, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to overwrite oldest session: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sessions (session_id, user_id, access_token, user_agent, created_at)
			 VALUES ($1, $2, $3, $4, now())`,
			uuid.NewString(), userID, accessToken, userAgent,
		)
		if err != nil {
			return fmt.Errorf("failed to insert session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateAccessToken 은 사용자의 가장 최근 세션 행의 access_token을 갱신한다.
func (r *PostgresSessionRepo) UpdateAccessToken(ctx context.Context, userID, accessToken string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions
		 SET access_token = $1
		 WHERE session_id = (
			SELECT session_id FROM sessions
			WHERE user_id = $2
			ORDER BY created_at DESC
			LIMIT 1
		 )`,
		accessToken, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update access token: %w", err)
	}
	return nil
}

// DeleteByUser 는 사용자의 모든 세션을 삭제한다.
func (r *PostgresSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SessionRepository = (*PostgresSessionRepo)(nil)
