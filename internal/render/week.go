package render

import (
	"bytes"
	"image/color"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/eduadmin/academia/internal/model"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	dayPaddingX      = 8
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 18
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	hourLabelColor = color.RGBA{110, 115, 120, 200}
	hourLineColor  = color.NRGBA{150, 150, 150, 255}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{220, 220, 220, 255}

	slotFillColor   = color.RGBA{133, 193, 85, 220}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
	slotShadowColor = color.RGBA{0, 0, 0, 20}
)

// weekDays задаёт порядок колонок: дни хранятся текстом, Monday..Sunday
var weekDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// WeekPNG рисует недельную сетку занятий курса и кодирует её в PNG.
// Слоты с днём вне Monday..Sunday пропускаются
func WeekPNG(courseName string, slots []*model.ScheduleSlot) ([]byte, error) {
	slotsByDay := groupSlotsByDay(slots)
	hours := calculateHourRange(slots)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, courseName)
	drawHourLabels(dc, hours, cellHeight)

	for dayIndex, day := range weekDays {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex)
		drawDayHeader(dc, day, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)

		for _, slot := range slotsByDay[day] {
			drawSlot(dc, slot, x, y, dayWidth, hours, cellHeight)
		}
	}

	return encodeImage(dc)
}

// groupSlotsByDay группирует слоты по названию дня
func groupSlotsByDay(slots []*model.ScheduleSlot) map[string][]*model.ScheduleSlot {
	slotsByDay := make(map[string][]*model.ScheduleSlot)
	for _, slot := range slots {
		slotsByDay[slot.Day] = append(slotsByDay[slot.Day], slot)
	}
	return slotsByDay
}

// clockToHours переводит "HH:MM:SS" в дробные часы
func clockToHours(clock string) (float64, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return float64(h) + float64(m)/60.0, true
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(slots []*model.ScheduleSlot) hourRange {
	minHour := 24
	maxHour := 0

	for _, slot := range slots {
		start, okStart := clockToHours(slot.StartTime)
		end, okEnd := clockToHours(slot.EndTime)
		if !okStart || !okEnd {
			continue
		}
		startH := int(start)
		endH := int(end)
		if end > float64(endH) {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour + 1,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует название курса в шапке
func drawHeader(dc *gg.Context, courseName string) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(courseName, float64(imageWidth)/2, float64(headerHeight)/3, 0.5, 0.5)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		actualHour := hours.start + hIdx
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(formatHourLabel(actualHour), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int) {
	if dayIndex%2 == 0 {
		dc.SetColor(evenDayColor)
	} else {
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели
func drawDayHeader(dc *gg.Context, day string, x, y float64, dayWidth int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(day, x+float64(dayWidth)/2, y-12, 0.5, 0.5)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawSlot рисует один слот
func drawSlot(dc *gg.Context, slot *model.ScheduleSlot, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	start, okStart := clockToHours(slot.StartTime)
	end, okEnd := clockToHours(slot.EndTime)
	if !okStart || !okEnd {
		return
	}

	slotY := y + (start-float64(hours.start))*cellHeight
	slotHeight := (end - start) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}

	slotWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, slotY+2+shadowOffset, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	// Основной слот
	dc.SetColor(slotFillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Fill()

	// Рамка
	dc.SetColor(darkenColor(slotFillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), slotY+2, slotWidth, slotHeight-4, slotBorderRadius)
	dc.Stroke()

	// Текст интервала
	dc.SetColor(slotTextColor)
	label := shortClock(slot.StartTime) + " - " + shortClock(slot.EndTime)
	dc.DrawStringAnchored(label, x+float64(dayPaddingX)+8, slotY+14, 0, 0)
}

// shortClock обрезает "HH:MM:SS" до "HH:MM"
func shortClock(clock string) string {
	if len(clock) >= 5 {
		return clock[:5]
	}
	return clock
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatHourLabel(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h) + ":00"
	}
	return strconv.Itoa(h) + ":00"
}
