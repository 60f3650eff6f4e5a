package character

import (
	"errors"
	"fmt"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNotFound      = Error("character not found")
	ErrServer        = Error("upstream server error")
	ErrMalformed     = Error("malformed response")
	ErrNetwork       = Error("network unavailable")
	ErrUnexpected    = Error("unexpected error")
	ErrEmptySource   = Error("source has no characters")
	ErrUnknownSource = Error("unknown data source")
)

// LookupError is returned by remote sources. Kind is one of the sentinel
// errors above and is what errors.Is matches against.
type LookupError struct {
	Kind   Error
	ID     int
	Status int
	Err    error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case ErrNotFound:
		return fmt.Sprintf("ポケモンID %d が見つかりません", e.ID)
	case ErrServer:
		return "サーバーエラーが発生しました。しばらく待ってから再試行してください"
	case ErrMalformed:
		return fmt.Sprintf("ポケモンID %d のデータを読み込めませんでした", e.ID)
	case ErrNetwork:
		return "インターネット接続を確認してください"
	}
	if e.Status != 0 {
		return fmt.Sprintf("API エラー: %d", e.Status)
	}
	return "予期しないエラーが発生しました"
}

func (e *LookupError) Is(target error) bool { return target == e.Kind }
func (e *LookupError) Unwrap() error        { return e.Err }

// UserMessage maps any provider error to the text shown to the child's
// parent. Unknown causes collapse into a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var le *LookupError
	if errors.As(err, &le) && le.Kind != ErrUnexpected {
		return le.Error()
	}
	return "予期しないエラーが発生しました"
}
