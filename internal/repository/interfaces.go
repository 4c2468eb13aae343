// Package repository 는 데이터 영속화 인터페이스를 정의한다.
package repository

import (
	"context"
	"errors"

	"github.com/mallang/recipe-api/internal/model"
)

// ErrDuplicate 는 고유 제약 위반을 알리는 센티널 에러.
var ErrDuplicate = errors.New("duplicate key")

// UserRepository 는 사용자 데이터의 영속화 인터페이스.
type UserRepository interface {
	// FindByID 는 지정 ID의 사용자를 조회한다. 없으면 nil을 반환한다.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail 은 이메일로 사용자를 조회한다. 없으면 nil을 반환한다.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmail 은 해당 이메일의 사용자가 존재하는지 확인한다.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// CreateWithDefaults 는 회원 가입에 필요한 모든 행을 하나의 트랜잭션으로 생성한다.
	// users, sessions, 선호 쌍별 mypage 행, 구독 중이면 subscription 미러,
	// 기본 냉장고 칸 2개(냉장고/냉동고)를 삽입하고 하나라도 실패하면 전체 롤백한다.
	CreateWithDefaults(ctx context.Context, user *model.User, session *model.Session, nickname string, subscribed bool, prefers []model.PreferPair) error
}

// SessionRepository 는 세션 데이터의 영속화 인터페이스.
// 사용자당 세션은 최대 3개이며 초과 시 가장 오래 전에 생성된 행을 덮어쓴다.
type SessionRepository interface {
	// Validate 는 (user_id, access_token) 쌍이 정확히 일치하는 세션이 있는지 확인한다.
	Validate(ctx context.Context, userID, accessToken string) (bool, error)

	// CountByUser 는 사용자의 세션 수를 반환한다.
	CountByUser(ctx context.Context, userID string) (int, error)

	// Upsert 는 세션을 저장한다. 세션 수가 상한(3)에 도달했으면 created_at이
	// 가장 오래된 행의 토큰/user_agent/created_at을 덮어쓰고, 아니면 새 행을
	// 삽입한다. 개수 확인과 쓰기는 하나의 트랜잭션으로 수행한다.
	Upsert(ctx context.Context, userID, accessToken, userAgent string) error

	// UpdateAccessToken 은 사용자의 가장 최근 세션 행의 access_token을 갱신한다.
	UpdateAccessToken(ctx context.Context, userID, accessToken string) error

	// DeleteByUser 는 사용자의 모든 세션을 삭제한다.
	DeleteByUser(ctx context.Context, userID string) error
}

// MypageRepository 는 마이페이지/구독 데이터의 영속화 인터페이스.
type MypageRepository interface {
	// GetBasic 은 닉네임과 구독 여부를 조회한다. mypage 행이 없으면 nil을 반환한다.
	GetBasic(ctx context.Context, userID string) (*model.BasicProfile, error)

	// ListPrefers 는 사용자의 선호 (카테고리, 상황) 쌍 전체를 반환한다.
	ListPrefers(ctx context.Context, userID string) ([]model.PreferPair, error)

	// FirstPrefer 는 사용자의 첫 선호 쌍을 반환한다. 없으면 nil을 반환한다.
	FirstPrefer(ctx context.Context, userID string) (*model.PreferPair, error)

	// SaveProfile 은 마이페이지를 갱신하고 subscription 미러 테이블을 정합화한다.
	// 미러가 없고 구독 중이면 삽입, 미러가 있고 구독 해지면 전체 삭제,
	// 둘 다 유지면 이메일/닉네임만 갱신한다. 전체가 하나의 트랜잭션이다.
	SaveProfile(ctx context.Context, profile *model.Profile) error
}

// RefrigeratorRepository 는 냉장고 칸과 보관 재료의 영속화 인터페이스.
type RefrigeratorRepository interface {
	// ListCompartments 는 사용자의 냉장고 칸을 refrigerator_id 오름차순으로 반환한다.
	ListCompartments(ctx context.Context, userID string) ([]model.Compartment, error)

	// CountByUser 는 사용자의 냉장고 칸 수를 반환한다.
	CountByUser(ctx context.Context, userID string) (int, error)

	// CreateCompartment 는 냉장고 칸을 추가한다.
	CreateCompartment(ctx context.Context, userID, name string, compartmentType int) error

	// UpdateCompartment 는 칸 이름/타입을 갱신한다. (id, user) 일치 행이 없으면
	// false를 반환한다.
	UpdateCompartment(ctx context.Context, userID string, compartmentID int, name string, compartmentType int) (bool, error)

	// DeleteCompartment 는 칸과 그 안의 재료를 하나의 트랜잭션으로 삭제한다.
	// (id, user) 일치 행이 없으면 false를 반환한다.
	DeleteCompartment(ctx context.Context, userID string, compartmentID int) (bool, error)

	// ListIngredientsByUser 는 사용자의 모든 보관 재료를 칸 ID와 함께 반환한다.
	ListIngredientsByUser(ctx context.Context, userID string) ([]model.StoredIngredient, error)

	// AddIngredients 는 재료를 일괄 삽입한다. 전체가 하나의 트랜잭션이며
	// 부분 쓰기는 남기지 않는다.
	AddIngredients(ctx context.Context, ingredients []model.StoredIngredient) error

	// DeleteIngredients 는 재료를 ID 목록으로 삭제하고 삭제된 행 수를 반환한다.
	DeleteIngredients(ctx context.Context, ids []int) (int, error)
}

// RecipeRepository 는 레시피 조회 인터페이스.
type RecipeRepository interface {
	// ListRecent 는 recipe_id 내림차순 최신 레시피를 limit개까지 반환한다.
	ListRecent(ctx context.Context, limit int) ([]model.RecipeSummary, error)

	// ListSeasonal 은 지정 월의 제철 식재료를 무작위 순서로 반환한다.
	ListSeasonal(ctx context.Context, month int) ([]model.SeasonalFood, error)

	// ListByClass 는 선호 (카테고리, 상황) 쌍에 맞는 레시피를 무작위로
	// limit개까지 반환한다.
	ListByClass(ctx context.Context, cateNo, situNo, limit int) ([]model.RecipeSummary, error)

	// ListByCategory 는 카테고리 번호로 무작위 limit개를 반환한다.
	ListByCategory(ctx context.Context, cateNo, limit int) ([]model.RecipeSummary, error)

	// ListBySituation 은 상황 번호로 무작위 limit개를 반환한다.
	ListBySituation(ctx context.Context, situNo, limit int) ([]model.RecipeSummary, error)

	// GetClass 는 레시피의 (카테고리, 상황) 분류를 조회한다. 없으면 nil을 반환한다.
	GetClass(ctx context.Context, recipeID int) (*model.RecipeClass, error)

	// ListShoppingIngredients 는 레시피에 연결된 재료명 목록을 반환한다.
	ListShoppingIngredients(ctx context.Context, recipeID int) ([]string, error)

	// SearchByTitle 은 제목 LIKE 검색 결과를 limit개까지 반환한다.
	// limit이 0 이하이면 제한 없이 반환한다.
	SearchByTitle(ctx context.Context, keyword string, limit int) ([]model.RecipeSummary, error)

	// SearchByIngredient 는 재료명 LIKE 매칭 레시피를 limit개까지 반환한다.
	SearchByIngredient(ctx context.Context, keyword string, limit int) ([]model.RecipeSummary, error)

	// SearchFiltered 는 재료명 매칭 레시피 중 제외 재료명을 하나라도 포함하는
	// 레시피를 빼고 반환한다.
	SearchFiltered(ctx context.Context, keyword string, excludeNames []string, limit int) ([]model.RecipeSummary, error)

	// SearchByAllIngredients 는 지정 재료 ID를 모두 포함하는 레시피를 반환한다.
	SearchByAllIngredients(ctx context.Context, ingredientIDs []int) ([]model.RecipeSummary, error)
}

// IngredientRepository 는 재료 카탈로그 조회 인터페이스.
type IngredientRepository interface {
	// FindByNames 는 재료명 목록에 일치하는 재료를 반환한다. 없는 이름은
	// 결과에서 빠지므로 호출 측에서 누락을 판정한다.
	FindByNames(ctx context.Context, names []string) ([]model.Ingredient, error)

	// SearchByName 은 재료명 LIKE 검색 결과를 반환한다.
	SearchByName(ctx context.Context, keyword string) ([]model.Ingredient, error)
}

// BookmarkRepository 는 북마크 영속화 인터페이스.
type BookmarkRepository interface {
	// ListByUser 는 사용자가 북마크한 recipe_id 목록을 반환한다.
	ListByUser(ctx context.Context, userID string) ([]int, error)

	// Create 는 북마크를 추가한다. 이미 존재하면 ErrDuplicate를 반환한다.
	Create(ctx context.Context, userID string, recipeID int) error

	// Delete 는 북마크를 삭제한다. 없는 북마크 삭제도 에러가 아니다.
	Delete(ctx context.Context, userID string, recipeID int) error
}

// SearchFilterRepository 는 검색 제외 필터의 영속화 인터페이스.
type SearchFilterRepository interface {
	// ListIngredientIDs 는 사용자의 제외 재료 ID 목록을 반환한다.
	ListIngredientIDs(ctx context.Context, userID string) ([]int, error)

	// Sync 는 저장된 필터를 지정 ID 집합으로 맞춘다. 없는 것은 삽입하고
	// 빠진 것은 삭제하며 전체가 하나의 트랜잭션이다.
	Sync(ctx context.Context, userID string, ingredientIDs []int) error
}
