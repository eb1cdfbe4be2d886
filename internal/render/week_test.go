package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduadmin/academia/internal/model"
)

func TestWeekPNG(t *testing.T) {
	slots := []*model.ScheduleSlot{
		{ID: 1, Day: "Monday", StartTime: "09:00:00", EndTime: "10:30:00"},
		{ID: 2, Day: "Thursday", StartTime: "14:00:00", EndTime: "16:00:00"},
		{ID: 3, Day: "Someday", StartTime: "10:00:00", EndTime: "11:00:00"},
	}

	data, err := WeekPNG("Algebra", slots)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestWeekPNGEmpty(t *testing.T) {
	data, err := WeekPNG("Algebra", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestCalculateHourRange(t *testing.T) {
	slots := []*model.ScheduleSlot{
		{Day: "Monday", StartTime: "09:00:00", EndTime: "10:30:00"},
		{Day: "Friday", StartTime: "16:00:00", EndTime: "17:00:00"},
	}

	hours := calculateHourRange(slots)
	assert.Equal(t, 8, hours.start)
	assert.Equal(t, 18, hours.end)
	assert.Equal(t, 11, hours.total)
}
