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

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, name, email, registered_at, created_at, updated_at`

func scanStudent(row pgx.Row, s *model.Student) error {
	return row.Scan(&s.ID, &s.Name, &s.Email, &s.RegisteredAt, &s.CreatedAt, &s.UpdatedAt)
}

func collectStudents(rows pgx.Rows) ([]*model.Student, error) {
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		var student model.Student
		if err := scanStudent(rows, &student); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &student)
	}

	return students, rows.Err()
}

// Create создаёт нового студента
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (name, email)
		VALUES ($1, $2)
		RETURNING id, registered_at, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, student.Name, student.Email).
		Scan(&student.ID, &student.RegisteredAt, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID получает студента по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	var student model.Student
	err := scanStudent(r.pool.QueryRow(ctx, query, id), &student)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return &student, nil
}

// GetByEmail получает студента по email (точное совпадение)
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1`

	var student model.Student
	err := scanStudent(r.pool.QueryRow(ctx, query, email), &student)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by email: %w", err)
	}

	return &student, nil
}

// List получает всех студентов
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	return collectStudents(rows)
}

// SearchByName ищет студентов по подстроке имени без учёта регистра
func (r *StudentRepository) SearchByName(ctx context.Context, name string) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE name ILIKE '%' || $1 || '%' ORDER BY id`

	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("search students by name: %w", err)
	}

	return collectStudents(rows)
}

// ListByRegisteredBetween получает студентов, зарегистрированных в интервале [from, to]
func (r *StudentRepository) ListByRegisteredBetween(ctx context.Context, from, to time.Time) ([]*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE registered_at BETWEEN $1 AND $2 ORDER BY registered_at`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list students by registration date: %w", err)
	}

	return collectStudents(rows)
}

// Update сохраняет все изменяемые поля студента
func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE students
		SET name = $1, email = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, student.Name, student.Email, student.ID).
		Scan(&student.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}

	return nil
}

// Delete удаляет студента
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("student not found")
	}

	return nil
}

// Count возвращает общее число студентов
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// CountEnrolled возвращает число студентов хотя бы с одной записью на курс
func (r *StudentRepository) CountEnrolled(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT s.id)
		FROM students s
		INNER JOIN enrollments e ON e.student_id = s.id
	`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count enrolled students: %w", err)
	}
	return count, nil
}
