package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	inner := errors.New("file not found")

	withInner := NewNotFoundError("Файл не найден", inner)
	assert.Equal(t, "Файл не найден: file not found", withInner.Error())

	withoutInner := NewValidationError("Недопустимое имя файла", nil)
	assert.Equal(t, "Недопустимое имя файла", withoutInner.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("file not found")
	appErr := NewNotFoundError("Файл не найден", inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestNewInternalError_HidesDetails(t *testing.T) {
	appErr := NewInternalError("не удалось сохранить файл", errors.New("disk full"))

	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	// Пользователь видит общее сообщение, детали остаются в Err
	assert.Equal(t, "Внутренняя ошибка сервера", appErr.UserMessage())
	assert.Contains(t, appErr.Err.Error(), "disk full")
}

func TestWrapError(t *testing.T) {
	original := NewValidationError("Недопустимый файл", nil)

	wrapped := WrapError(original, "другое сообщение")
	assert.Same(t, original, wrapped)

	plain := WrapError(errors.New("boom"), "сбой обработки")
	assert.Equal(t, http.StatusInternalServerError, plain.StatusCode())
}

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("x", nil).StatusCode())
	assert.Equal(t, http.StatusBadRequest, NewValidationError("x", nil).StatusCode())
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("x", nil).StatusCode())
}
