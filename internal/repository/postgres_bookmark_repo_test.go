package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

// 고유 제약 위반이 ErrDuplicate로 변환되는지 검증
func TestPostgresBookmarkRepo_Create_DuplicateMapsToSentinel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO bookmark`).
		WithArgs("user-1", 42).
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pqUniqueViolation)})

	repo := NewPostgresBookmarkRepo(db)
	err = repo.Create(context.Background(), "user-1", 42)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

// 일반 DB 에러는 그대로 래핑되어 올라오는지 검증
func TestPostgresBookmarkRepo_Create_OtherErrorPassesThrough(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO bookmark`).
		WithArgs("user-1", 42).
		WillReturnError(errors.New("connection reset"))

	repo := NewPostgresBookmarkRepo(db)
	err = repo.Create(context.Background(), "user-1", 42)
	if err == nil || errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected plain error, got %v", err)
	}
}

// 북마크 목록 조회를 검증
func TestPostgresBookmarkRepo_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT recipe_id FROM bookmark`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"recipe_id"}).AddRow(10).AddRow(20))

	repo := NewPostgresBookmarkRepo(db)
	ids, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 20 {
		t.Errorf("unexpected ids: %v", ids)
	}
}

// 없는 북마크 삭제도 에러가 아님을 검증
func TestPostgresBookmarkRepo_Delete_MissingIsNotError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM bookmark`).
		WithArgs("user-1", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresBookmarkRepo(db)
	if err := repo.Delete(context.Background(), "user-1", 99); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
