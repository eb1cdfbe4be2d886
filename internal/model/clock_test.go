package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClock(t *testing.T) {
	valid := []string{"00:00:00", "09:30:00", "23:59:59"}
	for _, s := range valid {
		assert.NoError(t, ValidateClock(s), s)
	}

	invalid := []string{"", "9:30:00", "09:30", "24:00:00", "09:60:00", "09:30:61", "ab:cd:ef", "09-30-00"}
	for _, s := range invalid {
		assert.Error(t, ValidateClock(s), s)
	}
}
