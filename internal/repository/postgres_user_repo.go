package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mallang/recipe-api/internal/model"
)

// PostgresUserRepo 는 PostgreSQL 기반 사용자 리포지토리.
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo 는 PostgresUserRepo를 생성한다.
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByID 는 지정 ID의 사용자를 조회한다. 없으면 nil을 반환한다.
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, user_email, user_provider, created_at FROM users WHERE user_id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.Provider, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return user, nil
}

// FindByEmail 은 이메일로 사용자를 조회한다. 없으면 nil을 반환한다.
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, user_email, user_provider, created_at FROM users WHERE user_email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.Provider, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmail 은 해당 이메일의 사용자가 존재하는지 확인한다.
func (r *PostgresUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE user_email = $1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// CreateWithDefaults 는 회원 가입에 필요한 모든 행을 하나의 트랜잭션으로 생성한다.
func (r *PostgresUserRepo) CreateWithDefaults(ctx context.Context, user *model.User, session *model.Session, nickname string, subscribed bool, prefers []model.PreferPair) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 사용자 행
	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (user_id, user_email, user_provider, created_at)
		 VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.Provider, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	// 첫 세션 행
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, access_token, user_agent, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		session.ID, session.UserID, session.AccessToken, session.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	// 선호 쌍별 마이페이지 행
	for _, p := range prefers {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO mypage (user_id, user_nickname, user_subscription, cate_no, situ_no)
			 VALUES ($1, $2, $3, $4, $5)`,
			user.ID, nickname, subscribed, p.CateNo, p.SituNo,
		)
		if err != nil {
			return fmt.Errorf("failed to insert mypage row: %w", err)
		}
	}

	// 구독 중이면 subscription 미러 행
	if subscribed {
		for _, p := range prefers {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO subscription (user_id, user_email, user_nickname, cate_no, situ_no)
				 VALUES ($1, $2, $3, $4, $5)`,
				user.ID, user.Email, nickname, p.CateNo, p.SituNo,
			)
			if err != nil {
				return fmt.Errorf("failed to insert subscription row: %w", err)
			}
		}
	}

	// 기본 냉장고 칸 2개
	defaults := []struct {
		name string
		typ  int
	}{
		{model.DefaultFridgeName, model.FridgeType},
		{model.DefaultFreezerName, model.FreezerType},
	}
	for _, d := range defaults {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO refrigerator (user_id, refrigerator_name, refrigerator_type)
			 VALUES ($1, $2, $3)`,
			user.ID, d.name, d.typ,
		)
		if err != nil {
			return fmt.Errorf("failed to insert default compartment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
