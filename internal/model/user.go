// Package model 은 도메인 모델을 정의한다.
package model

import (
	"fmt"
	"time"
)

// User 는 서비스 이용 회원을 표현한다.
// user_id는 OAuth 프로바이더가 발급한 subject id를 그대로 사용한다.
type User struct {
	ID        string
	Email     string
	Provider  string
	CreatedAt time.Time
}

// Subscription 은 요청 바디의 구독 여부 값이다. 프론트엔드가 불리언과
// "true"/"false" 문자열을 섞어 보내므로 둘 다 허용한다.
type Subscription bool

func (s *Subscription) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", `"true"`:
		*s = true
	case "false", `"false"`, "null":
		*s = false
	default:
		return fmt.Errorf("invalid subscription value: %s", data)
	}
	return nil
}

// PreferPair 는 레시피 추천에 쓰이는 (카테고리, 상황) 선호 쌍이다.
type PreferPair struct {
	CateNo int `json:"cate_no"`
	SituNo int `json:"situ_no"`
}

// Profile 은 마이페이지 조회 결과를 표현한다.
type Profile struct {
	UserID       string       `json:"user_id"`
	Email        string       `json:"user_email"`
	Nickname     string       `json:"user_nickname"`
	Subscription bool         `json:"user_subscription"`
	Prefers      []PreferPair `json:"user_prefer"`
}

// BasicProfile 은 닉네임과 선호 쌍만 담는 축약 프로필이다.
// 구독 여부는 내부 정합화에만 쓰이고 응답에는 노출하지 않는다.
type BasicProfile struct {
	Nickname     string       `json:"user_nickname"`
	Subscription bool         `json:"-"`
	Prefers      []PreferPair `json:"user_prefer"`
}
