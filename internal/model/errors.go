package model

import (
	"fmt"
	"net/http"
)

// StatusTokenExpired 는 프로바이더 측 토큰 만료를 알리는 커스텀 상태 코드.
const StatusTokenExpired = 419

// APIError 는 HTTP 상태 코드와 사용자에게 그대로 노출되는 메시지를 묶는다.
// 핸들러는 서비스가 돌려준 APIError를 {"message": ...} 응답으로 변환한다.
type APIError struct {
	Status  int
	Message string
}

// Error 는 error 인터페이스를 구현한다.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// NewAPIError 는 임의 상태 코드의 APIError를 생성한다.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// 공통 에러. 메시지는 클라이언트와의 기존 계약이므로 문구를 바꾸지 않는다.
var (
	ErrInvalidProvider = &APIError{http.StatusBadRequest, "유효하지 않은 프로바이더 입니다."}
	ErrMissingAuthPair = &APIError{http.StatusBadRequest, "user_id 또는 access_token이 제공되지 않았습니다."}
	ErrSessionMismatch = &APIError{http.StatusUnauthorized, "user_id와 access_token이 일치하지 않습니다."}
	ErrTokenExpired    = &APIError{StatusTokenExpired, "유효하지 않은 액세스 토큰입니다."}
	ErrDuplicateEmail  = &APIError{http.StatusConflict, "중복된 이메일이 있습니다. 이메일을 다시 확인해주세요."}

	ErrBadInput       = &APIError{http.StatusBadRequest, "잘못된 입력 데이터입니다."}
	ErrBadUserInfo    = &APIError{http.StatusBadRequest, "잘못된 유저 정보입니다."}
	ErrBadIngredient  = &APIError{http.StatusBadRequest, "잘못된 재료 정보입니다."}
	ErrBadRecipeID    = &APIError{http.StatusBadRequest, "잘못된 레시피 ID입니다."}
	ErrRecipeNotFound = &APIError{http.StatusNotFound, "잘못된 레시피 정보입니다."}

	ErrTooManyCompartments    = &APIError{http.StatusConflict, "냉장고 칸은 최대 10칸까지 추가할 수 있습니다."}
	ErrTooFewCompartments     = &APIError{http.StatusConflict, "냉장고 칸은 최소 2칸을 유지해야 합니다."}
	ErrCompartmentNotFound    = &APIError{http.StatusNotFound, "해당 냉장고를 찾을 수 없습니다."}
	ErrCompartmentGone        = &APIError{http.StatusNotFound, "해당 냉장고 칸을 찾을 수 없습니다."}
	ErrIngredientNotFound     = &APIError{http.StatusNotFound, "해당 재료를 찾을 수 없습니다."}
	ErrRefrigeratorNotFound   = &APIError{http.StatusNotFound, "냉장고 정보를 찾을 수 없습니다."}
	ErrDuplicateBookmark      = &APIError{http.StatusConflict, "이미 북마크에 추가된 레시피입니다."}
	ErrEmptyKeyword           = &APIError{http.StatusBadRequest, "검색어를 입력해주세요."}
	ErrInvalidSearchType      = &APIError{http.StatusBadRequest, "유효한 타입을 입력해주세요."}
	ErrEmptyExcludeFilter     = &APIError{http.StatusBadRequest, "제외 필터를 설정해주세요."}
	ErrEmptyIngredientList    = &APIError{http.StatusBadRequest, "검색할 재료 리스트를 입력해주세요."}
	ErrNoTitleMatch           = &APIError{http.StatusNotFound, "제목이 일치하는 레시피가 없습니다."}
	ErrNoIngredientMatch      = &APIError{http.StatusNotFound, "재료가 일치하는 레시피가 없습니다."}
	ErrNoFilteredMatch        = &APIError{http.StatusNotFound, "일치하는 레시피가 없습니다."}
	ErrNoSuchIngredients      = &APIError{http.StatusNotFound, "일치하는 재료가 없습니다."}
	ErrNoFullIngredientMatch  = &APIError{http.StatusNotFound, "재료가 모두 일치하는 레시피가 없습니다."}
	ErrNoPreference           = &APIError{http.StatusNoContent, "선호도 정보가 없습니다."}
	ErrNoCategoryRecipes      = &APIError{http.StatusNoContent, "해당 카테고리에 대한 레시피가 없습니다."}
	ErrNoSituationRecipes     = &APIError{http.StatusNoContent, "해당 상황에 대한 레시피가 없습니다."}
)

// NewUnknownIngredientsError 는 재료 카탈로그에 없는 재료명을 담은 404 에러를 생성한다.
func NewUnknownIngredientsError(names string) *APIError {
	return &APIError{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("이 재료는 재료 테이블에 저장되어있지 않습니다: %s", names),
	}
}
