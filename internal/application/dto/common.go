package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessagesResponse mensajes informativos producidos por los hooks.
type MessagesResponse struct {
	Messages []string `json:"messages,omitempty"`
}

// Date fecha sin hora; acepta "2006-01-02" o RFC3339 en la entrada.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate envuelve t.
func NewDate(t time.Time) Date { return Date{Time: t} }

// DatePtr devuelve nil si t es nil.
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := Date{Time: *t}
	return &d
}

// TimePtr convierte a *time.Time (nil si d es nil o cero).
func (d *Date) TimePtr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: use AAAA-MM-DD", s)
	}
	d.Time = t
	return nil
}
