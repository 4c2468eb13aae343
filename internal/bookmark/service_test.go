package bookmark

import (
	"context"
	"errors"
	"testing"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/repository"
)

type mockBookmarkRepo struct {
	listByUserFn func(ctx context.Context, userID string) ([]int, error)
	createFn     func(ctx context.Context, userID string, recipeID int) error
	deleteFn     func(ctx context.Context, userID string, recipeID int) error
}

func (m *mockBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]int, error) {
	return m.listByUserFn(ctx, userID)
}
func (m *mockBookmarkRepo) Create(ctx context.Context, userID string, recipeID int) error {
	return m.createFn(ctx, userID, recipeID)
}
func (m *mockBookmarkRepo) Delete(ctx context.Context, userID string, recipeID int) error {
	return m.deleteFn(ctx, userID, recipeID)
}

var _ repository.BookmarkRepository = (*mockBookmarkRepo)(nil)

// 중복 추가는 정확한 메시지의 409
func TestAdd_Duplicate(t *testing.T) {
	repo := &mockBookmarkRepo{
		createFn: func(ctx context.Context, userID string, recipeID int) error {
			return repository.ErrDuplicate
		},
	}
	svc := NewService(repo)

	err := svc.Add(context.Background(), "u1", 42)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 409 {
		t.Fatalf("expected 409, got %v", err)
	}
	if apiErr.Message != "이미 북마크에 추가된 레시피입니다." {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

// 북마크가 없는 사용자도 빈 배열을 받는다
func TestList_EmptyIsNotError(t *testing.T) {
	repo := &mockBookmarkRepo{
		listByUserFn: func(ctx context.Context, userID string) ([]int, error) {
			return nil, nil
		},
	}
	svc := NewService(repo)

	ids, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", ids)
	}
}

// 0 이하 레시피 ID는 400
func TestAdd_InvalidRecipeID(t *testing.T) {
	svc := NewService(&mockBookmarkRepo{})

	if err := svc.Add(context.Background(), "u1", 0); !errors.Is(err, model.ErrBadInput) {
		t.Fatalf("expected ErrBadInput, got %v", err)
	}
}

// 없는 북마크 삭제도 성공으로 처리된다
func TestRemove_MissingSucceeds(t *testing.T) {
	repo := &mockBookmarkRepo{
		deleteFn: func(ctx context.Context, userID string, recipeID int) error {
			return nil
		},
	}
	svc := NewService(repo)

	if err := svc.Remove(context.Background(), "u1", 99); err != nil {
		t.Fatalf("remove: %v", err)
	}
}
