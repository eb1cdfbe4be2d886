package repository

import (
	"context"
	"fmt"

	"github.com/eduadmin/academia/internal/model"
	"github.com/eduadmin/academia/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TeacherRepository struct {
	pool *pgxpool.Pool
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

func scanTeacher(row pgx.Row, t *model.Teacher) error {
	return row.Scan(&t.ID, &t.Name, &t.Specialty, &t.CreatedAt, &t.UpdatedAt)
}

// Create создаёт нового преподавателя
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	query := `
		INSERT INTO teachers (name, specialty)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, teacher.Name, teacher.Specialty).
		Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// GetByID получает преподавателя по ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	query := `
		SELECT id, name, specialty, created_at, updated_at
		FROM teachers
		WHERE id = $1
	`

	var teacher model.Teacher
	err := scanTeacher(r.pool.QueryRow(ctx, query, id), &teacher)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return &teacher, nil
}

// List получает всех преподавателей
func (r *TeacherRepository) List(ctx context.Context) ([]*model.Teacher, error) {
	query := `
		SELECT id, name, specialty, created_at, updated_at
		FROM teachers
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*model.Teacher
	for rows.Next() {
		var teacher model.Teacher
		if err := scanTeacher(rows, &teacher); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, &teacher)
	}

	return teachers, rows.Err()
}

// ListBySpecialty получает преподавателей с точным совпадением специальности
func (r *TeacherRepository) ListBySpecialty(ctx context.Context, specialty string) ([]*model.Teacher, error) {
	query := `
		SELECT id, name, specialty, created_at, updated_at
		FROM teachers
		WHERE specialty = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, specialty)
	if err != nil {
		return nil, fmt.Errorf("list teachers by specialty: %w", err)
	}
	defer rows.Close()

	var teachers []*model.Teacher
	for rows.Next() {
		var teacher model.Teacher
		if err := scanTeacher(rows, &teacher); err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, &teacher)
	}

	return teachers, rows.Err()
}

// Update сохраняет все изменяемые поля преподавателя
func (r *TeacherRepository) Update(ctx context.Context, teacher *model.Teacher) error {
	query := `
		UPDATE teachers
		SET name = $1, specialty = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query, teacher.Name, teacher.Specialty, teacher.ID).
		Scan(&teacher.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}

	return nil
}

// Delete удаляет преподавателя
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("teacher not found")
	}

	return nil
}

// Count возвращает общее число преподавателей
func (r *TeacherRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return count, nil
}

// CountWithCourses возвращает число преподавателей, у которых есть хотя бы один курс
func (r *TeacherRepository) CountWithCourses(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT t.id)
		FROM teachers t
		INNER JOIN courses c ON c.teacher_id = t.id
	`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count teachers with courses: %w", err)
	}
	return count, nil
}
