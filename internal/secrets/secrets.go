// Package secrets 는 시크릿 스토어에서 데이터베이스 자격 증명을 조회한다.
// 프로세스 수명 동안 1회만 조회하고 이후에는 캐시된 값을 재사용한다.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
)

// ErrMissingField 는 시크릿 문서에 기대한 필드가 없을 때 반환된다.
var ErrMissingField = errors.New("password field not found in secret document")

// Store 는 데이터베이스 비밀번호의 지연 조회와 캐싱을 제공한다.
// source는 JSON 시크릿 문서의 위치로, 파일 경로 또는 http(s) URL을 지원한다.
// 동시 최초 사용에도 조회가 정확히 1회만 일어나도록 sync.Once로 보호한다.
type Store struct {
	source string
	client *http.Client

	once     sync.Once
	password string
	err      error
}

// NewStore 는 Store를 생성한다. client가 nil이면 http.DefaultClient를 사용한다.
func NewStore(source string, client *http.Client) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{source: source, client: client}
}

// secretDocument 는 시크릿 스토어가 내려주는 JSON 페이로드.
type secretDocument struct {
	Password string `json:"password"`
}

// Password 는 데이터베이스 비밀번호를 반환한다.
// 최초 호출에서만 시크릿 스토어를 조회하며, 실패한 결과도 캐시된다.
func (s *Store) Password(ctx context.Context) (string, error) {
	s.once.Do(func() {
		s.password, s.err = s.fetch(ctx)
	})
	return s.password, s.err
}

func (s *Store) fetch(ctx context.Context) (string, error) {
	raw, err := s.read(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read secret document: %w", err)
	}

	var doc secretDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("failed to parse secret document: %w", err)
	}
	if doc.Password == "" {
		return "", ErrMissingField
	}
	return doc.Password, nil
}

func (s *Store) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.source, "http://") || strings.HasPrefix(s.source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("secret store returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(s.source)
}
