package model

import "time"

// MaxSessionsPerUser 는 사용자당 허용되는 동시 세션 수의 상한.
// 상한에 도달한 상태의 로그인은 created_at이 가장 오래된 세션을 덮어쓴다.
const MaxSessionsPerUser = 3

// Session 은 사용자와 현재 유효한 프로바이더 액세스 토큰의 바인딩이다.
type Session struct {
	ID          string
	UserID      string
	AccessToken string
	UserAgent   string
	CreatedAt   time.Time
}
