// Package numeric convierte cantidades y montos recibidos del cliente en decimal.Decimal.
// Acepta punto o coma como separador decimal ("12.5", "12,5", "1.234,56", "1,234.56").
package numeric

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse interpreta s como número decimal. Si aparecen ambos separadores, el último es el decimal
// y el otro se descarta como separador de miles. Una coma sola es siempre decimal; varios puntos
// sin coma son separadores de miles.
func Parse(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("valor numérico vacío")
	}
	norm := raw
	lastComma := strings.LastIndex(norm, ",")
	lastDot := strings.LastIndex(norm, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			norm = strings.ReplaceAll(norm, ".", "")
			norm = strings.Replace(norm, ",", ".", 1)
		} else {
			norm = strings.ReplaceAll(norm, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(norm, ",") > 1 {
			return decimal.Zero, fmt.Errorf("valor numérico inválido: %q", raw)
		}
		norm = strings.Replace(norm, ",", ".", 1)
	case strings.Count(norm, ".") > 1:
		norm = strings.ReplaceAll(norm, ".", "")
	}
	if strings.Count(norm, ".") > 1 || strings.ContainsAny(norm, "eE") {
		return decimal.Zero, fmt.Errorf("valor numérico inválido: %q", raw)
	}
	d, err := decimal.NewFromString(norm)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor numérico inválido: %q", raw)
	}
	return d, nil
}

// Decimal es un decimal.Decimal que se decodifica desde número JSON, string o null.
// Set indica si el campo vino en el payload con un valor.
type Decimal struct {
	decimal.Decimal
	Set bool
}

// UnmarshalJSON implementa json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = Decimal{}
		return nil
	}
	var text string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
	} else {
		text = string(b)
	}
	v, err := Parse(text)
	if err != nil {
		return err
	}
	d.Decimal, d.Set = v, true
	return nil
}

// MarshalJSON emite el valor como número JSON, o null si no fue informado.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.Set {
		return []byte("null"), nil
	}
	return []byte(d.Decimal.String()), nil
}

// New construye un Decimal informado.
func New(v decimal.Decimal) Decimal {
	return Decimal{Decimal: v, Set: true}
}
