package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduadmin/academia/internal/model"
)

func slot(id int64, day, start, end string) *model.ScheduleSlot {
	return &model.ScheduleSlot{
		ID:        id,
		CourseID:  1,
		TeacherID: 1,
		Day:       day,
		StartTime: start,
		EndTime:   end,
	}
}

func TestFindConflict(t *testing.T) {
	existing := []*model.ScheduleSlot{
		slot(10, "Monday", "09:00:00", "10:00:00"),
		slot(11, "Wednesday", "14:00:00", "16:00:00"),
	}

	tests := []struct {
		name      string
		day       string
		start     string
		end       string
		excludeID int64
		wantID    int64
	}{
		{
			name:   "start falls inside existing slot",
			day:    "Monday",
			start:  "09:30:00",
			end:    "10:30:00",
			wantID: 10,
		},
		{
			name:   "end falls inside existing slot",
			day:    "Monday",
			start:  "08:00:00",
			end:    "09:15:00",
			wantID: 10,
		},
		{
			name:   "touching boundary counts as conflict",
			day:    "Monday",
			start:  "10:00:00",
			end:    "11:00:00",
			wantID: 10,
		},
		{
			name:  "same times on another day are free",
			day:   "Tuesday",
			start: "09:30:00",
			end:   "10:30:00",
		},
		{
			name:  "interval before existing slot is free",
			day:   "Monday",
			start: "07:00:00",
			end:   "08:30:00",
		},
		{
			name:  "interval after existing slot is free",
			day:   "Monday",
			start: "10:00:01",
			end:   "11:00:00",
		},
		{
			name:      "slot excluded by id does not conflict with itself",
			day:       "Monday",
			start:     "09:00:00",
			end:       "10:00:00",
			excludeID: 10,
		},
		{
			name:   "afternoon slot found on its own day",
			day:    "Wednesday",
			start:  "15:00:00",
			end:    "17:00:00",
			wantID: 11,
		},
		{
			// Полное вложение существующего слота в более широкий интервал
			// не считается конфликтом
			name:  "existing slot fully inside candidate is not detected",
			day:   "Monday",
			start: "08:00:00",
			end:   "11:00:00",
		},
		{
			// Обе границы кандидата внутри существующего слота
			name:   "candidate fully inside existing slot conflicts",
			day:    "Monday",
			start:  "09:15:00",
			end:    "09:45:00",
			wantID: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findConflict(existing, tt.day, tt.start, tt.end, tt.excludeID)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestFindConflictEmpty(t *testing.T) {
	assert.Nil(t, findConflict(nil, "Monday", "09:00:00", "10:00:00", 0))
}

func TestWithin(t *testing.T) {
	assert.True(t, within("09:30:00", "09:00:00", "10:00:00"))
	assert.True(t, within("09:00:00", "09:00:00", "10:00:00"))
	assert.True(t, within("10:00:00", "09:00:00", "10:00:00"))
	assert.False(t, within("08:59:59", "09:00:00", "10:00:00"))
	assert.False(t, within("10:00:01", "09:00:00", "10:00:00"))
}
