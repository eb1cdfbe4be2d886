package repository

import (
	"context"
	"fmt"

	"github.com/eduadmin/academia/internal/model"
	"github.com/eduadmin/academia/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Времена хранятся в колонках TIME и читаются как текст HH:MM:SS
const slotColumns = `id, course_id, teacher_id, day, start_time::text, end_time::text, created_at, updated_at`

func scanSlot(row pgx.Row, s *model.ScheduleSlot) error {
	return row.Scan(&s.ID, &s.CourseID, &s.TeacherID, &s.Day, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt)
}

func collectSlots(rows pgx.Rows) ([]*model.ScheduleSlot, error) {
	defer rows.Close()

	var slots []*model.ScheduleSlot
	for rows.Next() {
		var slot model.ScheduleSlot
		if err := scanSlot(rows, &slot); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, rows.Err()
}

// Create создаёт новый слот расписания
func (r *SlotRepository) Create(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (course_id, teacher_id, day, start_time, end_time)
		VALUES ($1, $2, $3, $4::time, $5::time)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.CourseID,
		slot.TeacherID,
		slot.Day,
		slot.StartTime,
		slot.EndTime,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots WHERE id = $1`

	var slot model.ScheduleSlot
	err := scanSlot(r.pool.QueryRow(ctx, query, id), &slot)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// List получает все слоты, отсортированные по дню и времени начала
func (r *SlotRepository) List(ctx context.Context) ([]*model.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots ORDER BY day, start_time`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	return collectSlots(rows)
}

// ListByCourse получает слоты курса
func (r *SlotRepository) ListByCourse(ctx context.Context, courseID int64) ([]*model.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots WHERE course_id = $1 ORDER BY day, start_time`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list slots by course: %w", err)
	}

	return collectSlots(rows)
}

// ListByCourseAndDay получает слоты курса в конкретный день — кандидаты для проверки конфликтов
func (r *SlotRepository) ListByCourseAndDay(ctx context.Context, courseID int64, day string) ([]*model.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots WHERE course_id = $1 AND day = $2 ORDER BY start_time`

	rows, err := r.pool.Query(ctx, query, courseID, day)
	if err != nil {
		return nil, fmt.Errorf("list slots by course and day: %w", err)
	}

	return collectSlots(rows)
}

// ListByTeacher получает слоты преподавателя
func (r *SlotRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots WHERE teacher_id = $1 ORDER BY day, start_time`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list slots by teacher: %w", err)
	}

	return collectSlots(rows)
}

// ListByDay получает слоты в конкретный день
func (r *SlotRepository) ListByDay(ctx context.Context, day string) ([]*model.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots WHERE day = $1 ORDER BY start_time`

	rows, err := r.pool.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("list slots by day: %w", err)
	}

	return collectSlots(rows)
}

// ListByTimeRange получает слоты, у которых начало или конец попадает в [from, to] включительно
func (r *SlotRepository) ListByTimeRange(ctx context.Context, from, to string) ([]*model.ScheduleSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM schedule_slots
		WHERE start_time BETWEEN $1::time AND $2::time
		   OR end_time BETWEEN $1::time AND $2::time
		ORDER BY day, start_time
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list slots by time range: %w", err)
	}

	return collectSlots(rows)
}

// Update сохраняет все изменяемые поля слота
func (r *SlotRepository) Update(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		UPDATE schedule_slots
		SET course_id = $1, teacher_id = $2, day = $3, start_time = $4::time, end_time = $5::time, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.CourseID,
		slot.TeacherID,
		slot.Day,
		slot.StartTime,
		slot.EndTime,
		slot.ID,
	).Scan(&slot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}

	return nil
}

// Delete удаляет слот
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM schedule_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// Count возвращает общее число слотов
func (r *SlotRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM schedule_slots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return count, nil
}

// CountPerDay возвращает число слотов по дням, по убыванию
func (r *SlotRepository) CountPerDay(ctx context.Context) ([]*model.DaySlotCount, error) {
	query := `
		SELECT day, COUNT(id) AS total
		FROM schedule_slots
		GROUP BY day
		ORDER BY total DESC, day
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count slots per day: %w", err)
	}
	defer rows.Close()

	var counts []*model.DaySlotCount
	for rows.Next() {
		var c model.DaySlotCount
		if err := rows.Scan(&c.Day, &c.Slots); err != nil {
			return nil, fmt.Errorf("scan day slot count: %w", err)
		}
		counts = append(counts, &c)
	}

	return counts, rows.Err()
}

// CountPerCourse возвращает число слотов по курсам, по убыванию
func (r *SlotRepository) CountPerCourse(ctx context.Context) ([]*model.CourseSlotCount, error) {
	query := `
		SELECT s.course_id, c.name, COUNT(s.id) AS total
		FROM schedule_slots s
		INNER JOIN courses c ON c.id = s.course_id
		GROUP BY s.course_id, c.name
		ORDER BY total DESC, s.course_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count slots per course: %w", err)
	}
	defer rows.Close()

	var counts []*model.CourseSlotCount
	for rows.Next() {
		var c model.CourseSlotCount
		if err := rows.Scan(&c.CourseID, &c.CourseName, &c.Slots); err != nil {
			return nil, fmt.Errorf("scan course slot count: %w", err)
		}
		counts = append(counts, &c)
	}

	return counts, rows.Err()
}
