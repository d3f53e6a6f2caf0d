package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, Kind(0), KindOf(errors.New("untyped")))
}

func TestKindOfSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while hiring: %w", Authorization("outside your reporting line"))
	assert.Equal(t, KindAuthorization, KindOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("x")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Authorization("x")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("role")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Transaction("x", errors.New("db"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("untyped")))
}

func TestTransactionWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Transaction("failed to create employment", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to create employment")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestWriteMapsDuplicateKeyToConflict(t *testing.T) {
	err := Write("user already has an employment record in this organization",
		"failed to create employment", gorm.ErrDuplicatedKey)

	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Contains(t, err.Error(), "already has an employment record")
}

func TestWriteKeepsOtherFailuresAsTransaction(t *testing.T) {
	cause := errors.New("connection reset")
	err := Write("duplicate", "failed to create employment", cause)

	assert.Equal(t, KindTransaction, KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
	assert.ErrorIs(t, err, cause)
}

func TestNotFoundMessageStaysGeneric(t *testing.T) {
	assert.EqualError(t, NotFound("employment"), "employment not found")
}
