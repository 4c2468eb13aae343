// Package handler 는 HTTP 요청을 서비스 호출로 변환하고 JSON 응답을 만든다.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mallang/recipe-api/internal/model"
)

// messageResponse 는 메시지만 담는 응답 바디.
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON 은 200 JSON 응답을 기록한다.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeMessage 는 {"message": ...} 형태의 응답을 기록한다.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeServiceError 는 서비스 에러를 HTTP 응답으로 변환한다.
// model.APIError 는 담긴 상태 코드와 메시지를 그대로 쓰고,
// 그 외의 에러는 500 과 핸들러별 대체 메시지로 응답한다.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeMessage(w, apiErr.Status, apiErr.Message)
		return
	}

	slog.Error("request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	writeMessage(w, http.StatusInternalServerError, fallback)
}

// decodeBody 는 JSON 바디를 디코드한다. 실패 시 400 을 기록하고 false 를 반환한다.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "요청 본문을 해석할 수 없습니다.")
		return false
	}
	return true
}
