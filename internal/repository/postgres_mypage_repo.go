package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mallang/recipe-api/internal/model"
)

// PostgresMypageRepo 는 PostgreSQL 기반 마이페이지 리포지토리.
// mypage 테이블과 subscription 미러 테이블을 함께 다룬다.
type PostgresMypageRepo struct {
	db *sql.DB
}

// NewPostgresMypageRepo 는 PostgresMypageRepo를 생성한다.
func NewPostgresMypageRepo(db *sql.DB) *PostgresMypageRepo {
	return &PostgresMypageRepo{db: db}
}

// GetBasic 은 닉네임과 구독 여부를 조회한다. mypage 행이 없으면 nil을 반환한다.
func (r *PostgresMypageRepo) GetBasic(ctx context.Context, userID string) (*model.BasicProfile, error) {
	basic := &model.BasicProfile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_nickname, user_subscription FROM mypage WHERE user_id = $1 LIMIT 1`,
		userID,
	).Scan(&basic.Nickname, &basic.Subscription)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mypage basic row: %w", err)
	}

	return basic, nil
}

// ListPrefers 는 사용자의 선호 (카테고리, 상황) 쌍 전체를 반환한다.
func (r *PostgresMypageRepo) ListPrefers(ctx context.Context, userID string) ([]model.PreferPair, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT cate_no, situ_no FROM mypage WHERE user_id = $1 ORDER BY cate_no, situ_no`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list prefers: %w", err)
	}
	defer rows.Close()

	var prefers []model.PreferPair
	for rows.Next() {
		var p model.PreferPair
		if err := rows.Scan(&p.CateNo, &p.SituNo); err != nil {
			return nil, fmt.Errorf("failed to scan prefer pair: %w", err)
		}
		prefers = append(prefers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prefer rows: %w", err)
	}

	return prefers, nil
}

// FirstPrefer 는 사용자의 첫 선호 쌍을 반환한다. 없으면 nil을 반환한다.
func (r *PostgresMypageRepo) FirstPrefer(ctx context.Context, userID string) (*model.PreferPair, error) {
	p := &model.PreferPair{}
	err := r.db.QueryRowContext(ctx,
		`SELECT cate_no, situ_no FROM mypage WHERE user_id = $1 ORDER BY cate_no, situ_no LIMIT 1`,
		userID,
	).Scan(&p.CateNo, &p.SituNo)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get first prefer: %w", err)
	}

	return p, nil
}

// SaveProfile 은 마이페이지 전체 갱신과 subscription 미러 정합화를 하나의
// 트랜잭션으로 수행한다. 선호 쌍은 삭제 후 재삽입한다.
func (r *PostgresMypageRepo) SaveProfile(ctx context.Context, profile *model.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM mypage WHERE user_id = $1`,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear mypage rows: %w", err)
	}

	for _, p := range profile.Prefers {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO mypage (user_id, user_nickname, user_subscription, cate_no, situ_no)
			 VALUES ($1, $2, $3, $4, $5)`,
			profile.UserID, profile.Nickname, profile.Subscription, p.CateNo, p.SituNo,
		)
		if err != nil {
			return fmt.Errorf("failed to insert mypage row: %w", err)
		}
	}

	var mirrors int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscription WHERE user_id = $1`,
		profile.UserID,
	).Scan(&mirrors)
	if err != nil {
		return fmt.Errorf("failed to count subscription rows: %w", err)
	}

	switch {
	case mirrors == 0 && profile.Subscription:
		for _, p := range profile.Prefers {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO subscription (user_id, user_email, user_nickname, cate_no, situ_no)
				 VALUES ($1, $2, $3, $4, $5)`,
				profile.UserID, profile.Email, profile.Nickname, p.CateNo, p.SituNo,
			)
			if err != nil {
				return fmt.Errorf("failed to insert subscription row: %w", err)
			}
		}
	case mirrors > 0 && !profile.Subscription:
		_, err = tx.ExecContext(ctx,
			`DELETE FROM subscription WHERE user_id = $1`,
			profile.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete subscription rows: %w", err)
		}
	case mirrors > 0 && profile.Subscription:
		_, err = tx.ExecContext(ctx,
			`UPDATE subscription SET user_email = $1, user_nickname = $2 WHERE user_id = $3`,
			profile.Email, profile.Nickname, profile.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update subscription rows: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// compile-time interface check
var _ MypageRepository = (*PostgresMypageRepo)(nil)
