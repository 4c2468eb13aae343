// Package bookmark 는 레시피 북마크 관리를 제공한다.
package bookmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/mallang/recipe-api/internal/model"
	"github.com/mallang/recipe-api/internal/repository"
)

// Service 는 북마크 비즈니스 로직을 제공한다.
type Service struct {
	bookmarks repository.BookmarkRepository
}

// NewService 는 Service를 생성한다.
func NewService(bookmarks repository.BookmarkRepository) *Service {
	return &Service{bookmarks: bookmarks}
}

// List 는 사용자가 북마크한 recipe_id 목록을 반환한다.
func (s *Service) List(ctx context.Context, userID string) ([]int, error) {
	if userID == "" {
		return nil, model.ErrBadUserInfo
	}

	ids, err := s.bookmarks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// Add 는 북마크를 추가한다. 이미 존재하면 409 에러.
func (s *Service) Add(ctx context.Context, userID string, recipeID int) error {
	if userID == "" || recipeID <= 0 {
		return model.ErrBadInput
	}

	if err := s.bookmarks.Create(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.ErrDuplicateBookmark
		}
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	return nil
}

// Remove 는 북마크를 삭제한다. 존재하지 않아도 성공으로 본다.
func (s *Service) Remove(ctx context.Context, userID string, recipeID int) error {
	if userID == "" || recipeID <= 0 {
		return model.ErrBadInput
	}

	if err := s.bookmarks.Delete(ctx, userID, recipeID); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}
