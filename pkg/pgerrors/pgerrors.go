package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE коды нарушений ограничений
const (
	CodeForeignKeyViolation = "23503"
	CodeUniqueViolation     = "23505"
	CodeCheckViolation      = "23514"
	CodeExclusionViolation  = "23P01"
)

// Violation нарушение ограничения, извлечённое из ошибки драйвера
type Violation struct {
	Code       string
	Constraint string
}

// AsViolation ищет в цепочке ошибок *pq.Error класса 23 (integrity constraint violation)
func AsViolation(err error) (Violation, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return Violation{}, false
	}
	if pqErr.Code.Class() != "23" {
		return Violation{}, false
	}
	return Violation{Code: string(pqErr.Code), Constraint: pqErr.Constraint}, true
}

// Is возвращает true, если err нарушает ограничение constraint с кодом code.
// Пустой constraint совпадает с любым именем.
func Is(err error, code, constraint string) bool {
	v, ok := AsViolation(err)
	if !ok || v.Code != code {
		return false
	}
	return constraint == "" || v.Constraint == constraint
}

// IsUniqueViolation нарушение уникальности
func IsUniqueViolation(err error) bool {
	return Is(err, CodeUniqueViolation, "")
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Is(err, CodeForeignKeyViolation, "")
}
