package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// layouts aceitos pelos formulários: ISO completo, datetime-local e data pura
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	dateLayout,
}

// ParseInstant interpreta uma data/hora enviada pelo cliente. Sem fuso, assume UTC.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q", s)
}

// Date é uma data de calendário (coluna DATE) serializada como "2006-01-02"
type Date datatypes.Date

// NewDate cria uma Date descartando o horário
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf trunca t para o dia
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Time devolve a data como time.Time à meia-noite UTC
func (d Date) Time() time.Time {
	t := time.Time(d)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// Scan implementa sql.Scanner
func (d *Date) Scan(value interface{}) error {
	return (*datatypes.Date)(d).Scan(value)
}

// Value implementa driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return d.Time(), nil
}

// GormDataType define o tipo da coluna
func (Date) GormDataType() string {
	return "date"
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := ParseInstant(s)
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

// Timestamp é um instante recebido em formulários; aceita os mesmos formatos de ParseInstant
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseInstant(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Value implementa driver.Valuer para uso direto em updates parciais
func (t Timestamp) Value() (driver.Value, error) {
	return t.Time, nil
}
