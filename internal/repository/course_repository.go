package repository

import (
	"context"
	"fmt"

	"github.com/eduadmin/academia/internal/model"
	"github.com/eduadmin/academia/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, name, teacher_id, created_at, updated_at`

func scanCourse(row pgx.Row, c *model.Course) error {
	return row.Scan(&c.ID, &c.Name, &c.TeacherID, &c.CreatedAt, &c.UpdatedAt)
}

func collectCourses(rows pgx.Rows) ([]*model.Course, error) {
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		var course model.Course
		if err := scanCourse(rows, &course); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, &course)
	}

	return courses, rows.Err()
}

// Create создаёт новый курс
func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	query := `
		INSERT INTO courses (name, teacher_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, course.Name, course.TeacherID).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID получает курс по ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	var course model.Course
	err := scanCourse(r.pool.QueryRow(ctx, query, id), &course)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course by id: %w", err)
	}

	return &course, nil
}

// List получает все курсы
func (r *CourseRepository) List(ctx context.Context) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return collectCourses(rows)
}

// SearchByName ищет курсы по подстроке названия без учёта регистра
func (r *CourseRepository) SearchByName(ctx context.Context, name string) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE name ILIKE '%' || $1 || '%' ORDER BY id`

	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("search courses by name: %w", err)
	}

	return collectCourses(rows)
}

// ListByTeacher получает курсы преподавателя
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*model.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE teacher_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list courses by teacher: %w", err)
	}

	return collectCourses(rows)
}

// Update сохраняет все изменяемые поля курса
func (r *CourseRepository) Update(ctx context.Context, course *model.Course) error {
	query := `
		UPDATE courses
		SET name = $1, teacher_id = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, course.Name, course.TeacherID, course.ID).
		Scan(&course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}

	return nil
}

// Delete удаляет курс; слоты расписания удаляются каскадно на уровне БД
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course not found")
	}

	return nil
}

// Count возвращает общее число курсов
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}

// CountByTeacher возвращает число курсов преподавателя
func (r *CourseRepository) CountByTeacher(ctx context.Context, teacherID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE teacher_id = $1`, teacherID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count courses by teacher: %w", err)
	}
	return count, nil
}

// CountWithEnrollments возвращает число курсов хотя бы с одной записью
func (r *CourseRepository) CountWithEnrollments(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT c.id)
		FROM courses c
		INNER JOIN enrollments e ON e.course_id = c.id
	`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count courses with enrollments: %w", err)
	}
	return count, nil
}

// ListPopular получает топ курсов по числу записанных студентов
func (r *CourseRepository) ListPopular(ctx context.Context, limit int) ([]*model.PopularCourse, error) {
	query := `
		SELECT c.id, c.name, c.teacher_id, c.created_at, c.updated_at, COUNT(e.id) AS enrollments
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id
		GROUP BY c.id
		ORDER BY enrollments DESC, c.id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular courses: %w", err)
	}
	defer rows.Close()

	var popular []*model.PopularCourse
	for rows.Next() {
		var course model.Course
		var enrollments int64
		err := rows.Scan(&course.ID, &course.Name, &course.TeacherID, &course.CreatedAt, &course.UpdatedAt, &enrollments)
		if err != nil {
			return nil, fmt.Errorf("scan popular course: %w", err)
		}
		popular = append(popular, &model.PopularCourse{Course: &course, Enrollments: enrollments})
	}

	return popular, rows.Err()
}
