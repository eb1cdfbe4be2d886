package service

import (
	"errors"
	"fmt"
)

// NotFoundError — запрошенная сущность отсутствует
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string { return e.msg }

func notFound(format string, args ...interface{}) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// ConflictError — нарушение бизнес-правила: пересечение расписания,
// повторная запись на курс, дубликат email, запрещённое удаление
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string { return e.msg }

func conflict(format string, args ...interface{}) error {
	return &ConflictError{msg: fmt.Sprintf(format, args...)}
}

// ValidationError — некорректные входные данные
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
