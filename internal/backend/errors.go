package backend

import (
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// пути, по которым бэкенды кладут текст ошибки
var errorMessagePaths = []string{"error", "error.message", "message", "detail"}

const maxPlainErrorLen = 200

// errorMessage — текст ошибки из тела ответа бэкенда; пустая строка, если его нет.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		for _, path := range errorMessagePaths {
			if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
		return ""
	}

	// не JSON: короткий текст отдаём как есть
	text := strings.TrimSpace(string(body))
	if text == "" || !utf8.ValidString(text) || strings.HasPrefix(text, "<") {
		return ""
	}
	if utf8.RuneCountInString(text) > maxPlainErrorLen {
		text = string([]rune(text)[:maxPlainErrorLen])
	}
	return text
}
