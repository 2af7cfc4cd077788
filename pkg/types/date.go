package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout канонический формат даты (YYYY-MM-DD)
	DateLayout = "2006-01-02"
	// LegacyDateLayout формат, который использует мобильное приложение (DD-MM-YYYY)
	LegacyDateLayout = "02-01-2006"
	// MinYear минимальный допустимый год
	MinYear = 1
)

// ErrInvalidDate возвращается, когда строку нельзя разобрать как календарную дату
var ErrInvalidDate = errors.New("invalid date")

// Date календарный день без времени и часового пояса.
// Нулевое значение означает "дата не указана".
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate создает дату из года, месяца и дня.
// Значения нормализуются так же, как в time.Date (32 января -> 1 февраля).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf возвращает календарный день момента t в его собственной локации
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate разбирает дату в формате YYYY-MM-DD или DD-MM-YYYY.
// Пустая строка и любой другой формат - ошибка, подстановки значения по умолчанию нет.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty string", ErrInvalidDate)
	}

	for _, layout := range []string{DateLayout, LegacyDateLayout} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// PostgreSQL DATE не хранит год 0000
		if t.Year() < MinYear {
			return Date{}, fmt.Errorf("%w: %q, year must be at least %d", ErrInvalidDate, s, MinYear)
		}
		return DateOf(t), nil
	}

	return Date{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD or DD-MM-YYYY", ErrInvalidDate, s)
}

// MustParseDate как ParseDate, но паникует при ошибке. Только для тестов и констант.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero возвращает true, если дата не указана
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Year, Month, Day компоненты даты
func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// Time возвращает полночь этого дня в указанной локации
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

// Compare возвращает -1, 0 или +1
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return cmpInt(d.year, other.year)
	case d.month != other.month:
		return cmpInt(int(d.month), int(other.month))
	default:
		return cmpInt(d.day, other.day)
	}
}

// Before возвращает true, если d раньше other
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After возвращает true, если d позже other
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Equal возвращает true для одного и того же дня
func (d Date) Equal(other Date) bool { return d.Compare(other) == 0 }

// AddDays сдвигает дату на n дней (n может быть отрицательным)
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

// DaysUntil количество дней от d до other (отрицательное, если other раньше)
func (d Date) DaysUntil(other Date) int {
	// через Unix-секунды: time.Duration переполняется на ~292 годах
	return int((other.Time(time.UTC).Unix() - d.Time(time.UTC).Unix()) / secondsPerDay)
}

// String возвращает дату в формате YYYY-MM-DD или пустую строку для нулевой даты
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time(time.UTC).Format(DateLayout)
}

// MarshalJSON сериализует дату как строку YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON разбирает дату из строки (оба формата)
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer для сохранения в колонку DATE
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan реализует sql.Scanner для чтения колонки DATE
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T into Date", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	// драйвер может вернуть дату с временем: 2025-01-10T00:00:00Z
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	*d = DateOf(t)
	return nil
}

const secondsPerDay = 24 * 60 * 60

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
