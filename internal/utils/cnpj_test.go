package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCNPJ(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"formatted", "29.309.127/0001-79", "29309127000179"},
		{"digits only", "29309127000179", "29309127000179"},
		{"surrounding spaces", " 29.309.127/0001-79 ", "29309127000179"},
		{"other characters kept", "29 309 127", "29 309 127"},
		{"letters kept", "abc.def", "abcdef"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCNPJ(tt.in))
		})
	}
}

func TestNormalizeCNPJ_Idempotent(t *testing.T) {
	for _, in := range []string{"11.222.333/0001-81", "11222333000181", "x-y/z"} {
		once := NormalizeCNPJ(in)
		assert.Equal(t, once, NormalizeCNPJ(once), "normalizing twice must not change %q", in)
	}
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "11222333000181", OnlyDigits("11.222.333/0001-81"))
	assert.Equal(t, "", OnlyDigits("abc"))
}

func TestValidateCNPJ(t *testing.T) {
	tests := []struct {
		name  string
		cnpj  string
		valid bool
	}{
		{"valid without formatting", "11222333000181", true},
		{"valid with formatting", "11.222.333/0001-81", true},
		{"valid real example", "29309127000179", true},
		{"valid with zero check digit", "33000167000101", true},
		{"wrong second check digit", "11222333000182", false},
		{"wrong first check digit", "11222333000191", false},
		{"all same digits", "11111111111111", false},
		{"too short", "1122233300018", false},
		{"too long", "112223330001811", false},
		{"empty", "", false},
		{"letters", "abcdefghijklmn", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateCNPJ(tt.cnpj))
		})
	}
}
