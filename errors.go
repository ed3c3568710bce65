package godocx

import (
	"errors"
	"fmt"
)

// ErrNoPlaceholders возвращается, когда записи переданы без шаблонов и
// таблицу для заполнения найти нельзя.
var ErrNoPlaceholders = errors.New("no placeholders given")

// ParseError - ошибка чтения пакета документа.
type ParseError struct {
	Part string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("parse error in %s: %v", e.Part, e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError - ошибка открытия или записи файла документа.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
