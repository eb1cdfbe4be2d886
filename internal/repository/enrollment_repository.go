package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eduadmin/academia/internal/model"
	"github.com/eduadmin/academia/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

const enrollmentColumns = `id, student_id, course_id, created_at, updated_at`

func scanEnrollment(row pgx.Row, e *model.Enrollment) error {
	return row.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.CreatedAt, &e.UpdatedAt)
}

func collectEnrollments(rows pgx.Rows) ([]*model.Enrollment, error) {
	defer rows.Close()

	var enrollments []*model.Enrollment
	for rows.Next() {
		var enrollment model.Enrollment
		if err := scanEnrollment(rows, &enrollment); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		enrollments = append(enrollments, &enrollment)
	}

	return enrollments, rows.Err()
}

// Create создаёт новую запись на курс
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, enrollment.StudentID, enrollment.CourseID).
		Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`

	var enrollment model.Enrollment
	err := scanEnrollment(r.pool.QueryRow(ctx, query, id), &enrollment)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enrollment by id: %w", err)
	}

	return &enrollment, nil
}

// GetByStudentAndCourse ищет запись пары (студент, курс)
func (r *EnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 AND course_id = $2`

	var enrollment model.Enrollment
	err := scanEnrollment(r.pool.QueryRow(ctx, query, studentID, courseID), &enrollment)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enrollment by student and course: %w", err)
	}

	return &enrollment, nil
}

// List получает все записи
func (r *EnrollmentRepository) List(ctx context.Context) ([]*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	return collectEnrollments(rows)
}

// ListByStudent получает записи студента
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE student_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by student: %w", err)
	}

	return collectEnrollments(rows)
}

// ListByCourse получает записи на курс
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE course_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by course: %w", err)
	}

	return collectEnrollments(rows)
}

// ListByCreatedBetween получает записи, созданные в интервале [from, to]
func (r *EnrollmentRepository) ListByCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE created_at BETWEEN $1 AND $2 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by date: %w", err)
	}

	return collectEnrollments(rows)
}

// Update сохраняет все изменяемые поля записи
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *model.Enrollment) error {
	query := `
		UPDATE enrollments
		SET student_id = $1, course_id = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, enrollment.StudentID, enrollment.CourseID, enrollment.ID).
		Scan(&enrollment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}

	return nil
}

// Delete удаляет запись
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("enrollment not found")
	}

	return nil
}

// Count возвращает общее число записей
func (r *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}

// CountByStudent возвращает число записей студента
func (r *EnrollmentRepository) CountByStudent(ctx context.Context, studentID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments WHERE student_id = $1`, studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count enrollments by student: %w", err)
	}
	return count, nil
}

// CountByCourse возвращает число записей на курс
func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments WHERE course_id = $1`, courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count enrollments by course: %w", err)
	}
	return count, nil
}

// CountPerCourse возвращает рейтинг курсов по числу записей
func (r *EnrollmentRepository) CountPerCourse(ctx context.Context) ([]*model.CourseEnrollmentCount, error) {
	query := `
		SELECT e.course_id, c.name, COUNT(e.id) AS total
		FROM enrollments e
		INNER JOIN courses c ON c.id = e.course_id
		GROUP BY e.course_id, c.name
		ORDER BY total DESC, e.course_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count enrollments per course: %w", err)
	}
	defer rows.Close()

	var counts []*model.CourseEnrollmentCount
	for rows.Next() {
		var c model.CourseEnrollmentCount
		if err := rows.Scan(&c.CourseID, &c.CourseName, &c.Enrollments); err != nil {
			return nil, fmt.Errorf("scan enrollment count: %w", err)
		}
		counts = append(counts, &c)
	}

	return counts, rows.Err()
}
