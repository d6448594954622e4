package money

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentsFromReais(t *testing.T) {
	assert.Equal(t, int64(5000), CentsFromReais(50))
	assert.Equal(t, int64(1999), CentsFromReais(19.99))
	assert.Equal(t, int64(1), CentsFromReais(0.005))
	assert.Equal(t, int64(0), CentsFromReais(0))
}

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, int64(10500), ApplyDiscount(15000, 30))
	assert.Equal(t, int64(15000), ApplyDiscount(15000, 0))
	assert.Equal(t, int64(0), ApplyDiscount(15000, 100))
	assert.Equal(t, int64(6701), ApplyDiscount(10001, 33))
}

func TestFormatBRL(t *testing.T) {
	formatted := FormatBRL(123450)
	assert.True(t, strings.HasPrefix(formatted, "R$ "), formatted)
	assert.True(t, strings.HasSuffix(formatted, ",50"), formatted)

	assert.True(t, strings.HasPrefix(FormatBRL(-990), "-R$ "))
}
