package model

import (
	"fmt"
	"time"
)

// ValidateClock проверяет что строка — корректное время вида HH:MM:SS.
// Строки с ведущими нулями сравниваются лексикографически в хронологическом порядке,
// поэтому дальше по коду время сравнивается обычными операторами.
func ValidateClock(s string) error {
	if len(s) != 8 {
		return fmt.Errorf("invalid time %q: want HH:MM:SS", s)
	}
	if _, err := time.Parse("15:04:05", s); err != nil {
		return fmt.Errorf("invalid time %q: want HH:MM:SS", s)
	}
	return nil
}
