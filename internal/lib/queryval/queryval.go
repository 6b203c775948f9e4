// Package queryval проверяет параметры запроса, из которых строятся
// фильтры к хранилищу. Параметр обязан быть одиночной скалярной строкой
// ограниченной длины: структурные значения в духе query-операторов
// (email[$ne]=x) отвергаются до построения какого-либо фильтра.
package queryval

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator"
)

// Ошибки проверки скалярного параметра.
var (
	// ErrMissing — параметр отсутствует или пуст.
	ErrMissing = errors.New("parameter is missing")
	// ErrStructured — вместо скаляра передано структурное значение
	// (ключ с оператором или повторяющийся параметр).
	ErrStructured = errors.New("parameter is not a plain scalar")
	// ErrOutOfBounds — длина значения вне допустимых границ схемы.
	ErrOutOfBounds = errors.New("parameter is out of bounds")
)

var validate = validator.New()

// Scalar извлекает именованный параметр запроса, требуя, чтобы он был
// единственным скалярным строковым значением длиной не более maxLen.
//
// Возвращает значение параметра либо одну из ошибок пакета. Любая ошибка
// означает, что значение не должно попадать в фильтр хранилища.
func Scalar(values url.Values, name string, maxLen int) (string, error) {
	const op = "queryval.Scalar"

	// Ключ вида name[...] — попытка передать оператор вместо скаляра.
	for key := range values {
		if strings.HasPrefix(key, name+"[") {
			return "", fmt.Errorf("%s: %q: %w", op, key, ErrStructured)
		}
	}

	vs, ok := values[name]
	if !ok || len(vs) == 0 || vs[0] == "" {
		return "", fmt.Errorf("%s: %q: %w", op, name, ErrMissing)
	}
	if len(vs) > 1 {
		return "", fmt.Errorf("%s: %q: %w", op, name, ErrStructured)
	}

	if err := validate.Var(vs[0], fmt.Sprintf("required,max=%d", maxLen)); err != nil {
		return "", fmt.Errorf("%s: %q: %w", op, name, ErrOutOfBounds)
	}
	return vs[0], nil
}
