package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/themis-api/internal/domain"
)

const (
	codeDateLayout = "20060102"
	dateLayout     = "2006-01-02"

	// DefaultCompletionDays - срок завершения по умолчанию от даты начала
	DefaultCompletionDays = 90
)

// projectCodePattern - "{area}-{YYYYMMDD}-{seq}", где seq не короче трёх цифр
var projectCodePattern = regexp.MustCompile(`^\S+-\d{8}-\d{3,}$`)

// ValidProjectCode сообщает, продолжит ли code последовательность своей группы
func ValidProjectCode(code string) bool {
	return projectCodePattern.MatchString(code)
}

// unscheduledDate используется в коде проекта без даты начала
var unscheduledDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// CodeDate возвращает дату кода в формате YYYYMMDD
func CodeDate(initiation *time.Time) string {
	if initiation == nil {
		return unscheduledDate.Format(codeDateLayout)
	}
	return initiation.Format(codeDateLayout)
}

// FormatProjectCode собирает код "{area}-{YYYYMMDD}-{seq:03d}". lastCode - код последнего
// проекта той же группы; пустой lastCode начинает последовательность с 1
func FormatProjectCode(areaCode string, initiation *time.Time, lastCode string) (string, error) {
	seq := 1
	if lastCode != "" {
		idx := strings.LastIndex(lastCode, "-")
		if idx < 0 {
			return "", fmt.Errorf("%w: %q", domain.ErrMalformedProjectCode, lastCode)
		}
		n, err := strconv.Atoi(lastCode[idx+1:])
		if err != nil || n < 0 {
			return "", fmt.Errorf("%w: %q", domain.ErrMalformedProjectCode, lastCode)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s-%s-%03d", areaCode, CodeDate(initiation), seq), nil
}

// DefaultCompletionDate возвращает initiation + 90 дней или nil
func DefaultCompletionDate(initiation *time.Time) *time.Time {
	if initiation == nil {
		return nil
	}
	d := initiation.AddDate(0, 0, DefaultCompletionDays)
	return &d
}

// codeFor возвращает генератор кода для проекта региона area
func codeFor(area *domain.Area, initiation *time.Time) func(last *domain.Project) (string, error) {
	return func(last *domain.Project) (string, error) {
		lastCode := ""
		if last != nil {
			lastCode = last.Code
		}
		return FormatProjectCode(area.Code, initiation, lastCode)
	}
}

// parseDate разбирает дату "2006-01-02" в полночь UTC
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, *s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate - обратное к parseDate
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
