package service

import "github.com/eduadmin/academia/internal/model"

// findConflict ищет первый слот того же дня, с которым пересекается интервал
// [start, end]. Слот с ID excludeID пропускается (им при обновлении исключают
// сам изменяемый слот; 0 не совпадает ни с одним реальным ID).
//
// Конфликт есть, если start или end кандидата попадает в
// [slot.start, slot.end], границы включительно. Случай, когда существующий
// слот целиком вложен в более широкий интервал кандидата, этим правилом
// не ловится.
// Времена — строки HH:MM:SS с ведущими нулями, поэтому сравнение строк
// совпадает с хронологическим.
func findConflict(slots []*model.ScheduleSlot, day, start, end string, excludeID int64) *model.ScheduleSlot {
	for _, slot := range slots {
		if slot.ID == excludeID || slot.Day != day {
			continue
		}
		if within(start, slot.StartTime, slot.EndTime) || within(end, slot.StartTime, slot.EndTime) {
			return slot
		}
	}
	return nil
}

func within(t, lo, hi string) bool {
	return t >= lo && t <= hi
}
