package handler

import (
	"context"
	"net/http"

	"github.com/mallang/recipe-api/internal/model"
)

// SessionValidator 는 (user_id, access_token) 쌍을 세션 저장소와 대조한다.
type SessionValidator interface {
	Validate(ctx context.Context, userID, accessToken string) (bool, error)
}

// guardSession 은 세션 검증이 필요한 엔드포인트의 공통 전처리.
// 쌍이 비었으면 400, 불일치면 401 을 기록하고 false 를 반환한다.
func guardSession(w http.ResponseWriter, r *http.Request, sessions SessionValidator, userID, accessToken string) bool {
	if userID == "" || accessToken == "" {
		writeMessage(w, model.ErrMissingAuthPair.Status, model.ErrMissingAuthPair.Message)
		return false
	}

	ok, err := sessions.Validate(r.Context(), userID, accessToken)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "세션 확인에 실패했습니다. 다시 시도해주세요.")
		return false
	}
	if !ok {
		writeMessage(w, model.ErrSessionMismatch.Status, model.ErrSessionMismatch.Message)
		return false
	}
	return true
}
