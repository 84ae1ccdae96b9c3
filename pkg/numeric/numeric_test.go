package numeric

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12", "12"},
		{"12.5", "12.5"},
		{"12,5", "12.5"},
		{" 0,25 ", "0.25"},
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"1.234.567", "1234567"},
		{"-3,5", "-3.5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1,2,3", "1e5", "12,5kg", "--1"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestDecimal_UnmarshalJSON(t *testing.T) {
	var payload struct {
		A Decimal `json:"a"`
		B Decimal `json:"b"`
		C Decimal `json:"c"`
		D Decimal `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": 2.75, "b": "1.234,5", "c": null}`), &payload)
	require.NoError(t, err)

	assert.True(t, payload.A.Set)
	assert.Equal(t, "2.75", payload.A.String())
	assert.Equal(t, "1234.5", payload.B.String())
	assert.False(t, payload.C.Set)
	assert.False(t, payload.D.Set)

	err = json.Unmarshal([]byte(`{"a": "diez"}`), &payload)
	assert.Error(t, err)
	err = json.Unmarshal([]byte(`{"a": true}`), &payload)
	assert.Error(t, err)
}
