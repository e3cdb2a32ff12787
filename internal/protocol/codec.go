// Пакет protocol — кодек строчного командного протокола и типизированный
// каталог команд поверх него. Сервер не версионирует схему ответов:
// единственный механизм совместимости — терпимость к числу колонок
// (старые деплои отдают меньше хвостовых полей, новые добавляют).
package protocol

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldDelim — разделитель полей в командах и ответах.
const FieldDelim = "|"

var argScrubber = strings.NewReplacer(FieldDelim, " ", "\n", " ", "\r", " ")

// Encode собирает команду: verb и позиционные аргументы через "|".
// Разделитель и переводы строк внутри аргументов заменяются пробелом —
// с потерей, зато без разрушения кадрирования.
func Encode(verb string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, argScrubber.Replace(verb))
	for _, a := range args {
		parts = append(parts, argScrubber.Replace(a))
	}
	return strings.Join(parts, FieldDelim)
}

// Record — одна декодированная строка ответа: список полей.
type Record []string

// DecodeLines разбирает многострочный ответ на записи.
// Пустые строки отбрасываются.
func DecodeLines(resp string) []Record {
	if resp == "" {
		return nil
	}
	lines := strings.Split(resp, "\n")
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		records = append(records, Record(strings.Split(line, FieldDelim)))
	}
	return records
}

// Field — безопасный позиционный доступ. ok == false, если поля нет.
func (r Record) Field(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Int — try-parse: при ошибке разбора возвращает 0.
func (r Record) Int(i int) int {
	s, ok := r.Field(i)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// Bool — try-parse: "1"/"true" → true, "0"/"false" → false, иначе false.
func (r Record) Bool(i int) bool {
	s, ok := r.Field(i)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return v
}

// Decimal — try-parse: при ошибке разбора возвращает ноль.
func (r Record) Decimal(i int) decimal.Decimal {
	s, ok := r.Field(i)
	if !ok {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return v
}

// Time — try-parse нескольких принятых сервером форматов;
// при неудаче — нулевое время.
func (r Record) Time(i int) time.Time {
	s, ok := r.Field(i)
	if !ok {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
