package intent

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date é uma data de calendário sem hora, serializada como "2006-01-02"
type Date struct {
	t time.Time
}

// NewDate cria uma data a partir de ano, mês e dia
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf extrai a data de calendário de um instante, no fuso do próprio instante
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate interpreta uma data no formato "2006-01-02"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Time retorna a data como time.Time à meia-noite UTC
func (d Date) Time() time.Time { return d.t }

// IsZero indica se a data não foi definida
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays soma n dias à data
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Before indica se d é anterior a o
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After indica se d é posterior a o
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal indica se as datas são o mesmo dia
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

const secondsPerDay = 24 * 60 * 60

// DaysUntil retorna quantos dias faltam de d até o (negativo se o já passou)
func (d Date) DaysUntil(o Date) int {
	return int((o.t.Unix() - d.t.Unix()) / secondsPerDay)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// Human formata a data para mensagens, ex: "March 1, 2026"
func (d Date) Human() string {
	return d.t.Format("January 2, 2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("data inválida: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("data inválida %q: %w", s, err)
	}
	*d = parsed
	return nil
}
