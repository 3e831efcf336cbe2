package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCodeWalksWrappedChain(t *testing.T) {
	inner := New(CodeInvalidRange, "start after end")
	outer := Wrap(inner, CodeInternal, "build year domain")

	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, HasCode(outer, CodeInvalidRange))
	assert.False(t, HasCode(outer, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
}

func TestIsOnlyChecksOutermostCode(t *testing.T) {
	inner := New(CodeInvalidRange, "start after end")
	outer := Wrap(inner, CodeInternal, "build year domain")

	assert.True(t, Is(outer, CodeInternal))
	assert.False(t, Is(outer, CodeInvalidRange))
	assert.True(t, Is(fmt.Errorf("ctx: %w", inner), CodeInvalidRange))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Wrap(errors.New("connection refused"), CodeStoreUnavailable, "count by year")
	assert.Equal(t, "count by year: connection refused", err.Error())
	assert.Equal(t, "not found", New(CodeNotFound, "not found").Error())
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeSourceNotFound:   http.StatusNotFound,
		CodeValidation:       http.StatusBadRequest,
		CodeUnauthorized:     http.StatusUnauthorized,
		CodeStoreUnavailable: http.StatusServiceUnavailable,
		CodeInvalidRange:     http.StatusInternalServerError,
		CodeInternal:         http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, ToHTTPStatus(code), "code %s", code)
	}
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, CodeSourceNotFound, CodeOf(New(CodeSourceNotFound, "missing")))
}
