// Package sharelink encodes a quiz into a URL-safe token so it can be
// distributed statelessly, and decodes such tokens back.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/LKAC-Leander/boardReview/internal/domain"
)

// Encode converts UTF-8 text to unpadded base64url.
func Encode(text string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(text))
}

// Decode reverses Encode. It tolerates padded tokens, and fails with an
// error wrapping domain.ErrInvalidShareLink when the token is not valid
// base64url or the decoded bytes are not valid UTF-8.
func Decode(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidShareLink, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: payload is not valid UTF-8", domain.ErrInvalidShareLink)
	}
	return string(raw), nil
}

// EncodePayload serializes {id, title, questions} of the quiz and
// encodes it as a share token. Timestamps never enter the token.
func EncodePayload(quiz domain.Quiz) string {
	payload := domain.SharePayload{
		ID:        quiz.ID,
		Title:     quiz.Title,
		Questions: quiz.Questions,
	}
	data, _ := json.Marshal(payload)
	return Encode(string(data))
}

// DecodePayload decodes a share token back into a quiz. A token whose
// payload is not a quiz-shaped JSON object fails the same way a
// malformed token does.
func DecodePayload(token string) (domain.Quiz, error) {
	text, err := Decode(token)
	if err != nil {
		return domain.Quiz{}, err
	}
	var payload domain.SharePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return domain.Quiz{}, fmt.Errorf("%w: %v", domain.ErrInvalidShareLink, err)
	}
	return domain.Quiz{
		ID:        payload.ID,
		Title:     payload.Title,
		Questions: payload.Questions,
	}, nil
}

// URL builds the shareable take URL for a quiz on top of takeBase,
// e.g. https://host/take?data=<token>.
func URL(takeBase string, quiz domain.Quiz) string {
	return takeBase + "?data=" + EncodePayload(quiz)
}

// LocalURL builds a take URL that loads the quiz from the store by id.
func LocalURL(takeBase, quizID string) string {
	return takeBase + "?id=" + url.QueryEscape(quizID)
}
