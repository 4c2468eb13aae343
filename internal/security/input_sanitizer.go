// Package security 는 애플리케이션의 보안 기능을 제공한다.
//
// InputSanitizerService 는 사용자가 입력한 표시용 문자열(닉네임, 냉장고 칸
// 이름, 재료 이름)에서 마크업을 제거한다. 이 값들은 프론트엔드에 그대로
// 렌더링되므로 저장 전에 bluemonday의 StrictPolicy로 태그를 전부 걷어낸다.
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// InputSanitizerService 는 표시용 문자열 정화 인터페이스.
type InputSanitizerService interface {
	// Sanitize 는 입력에서 모든 HTML 태그를 제거하고 앞뒤 공백을 정리한다.
	// 빈 입력에는 빈 문자열을 반환하며 같은 입력에 항상 같은 출력을 낸다.
	Sanitize(raw string) string
}

// inputSanitizer 는 InputSanitizerService 구현.
// StrictPolicy는 어떤 태그도 허용하지 않는다.
type inputSanitizer struct {
	policy *bluemonday.Policy
}

// NewInputSanitizer 는 InputSanitizerService 인스턴스를 생성한다.
func NewInputSanitizer() *inputSanitizer {
	return &inputSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize 는 모든 HTML 태그를 제거한 문자열을 반환한다.
func (s *inputSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(s.policy.Sanitize(raw))
}
