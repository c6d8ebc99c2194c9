package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCode(t *testing.T) {
	base := NotFound("dataset")
	wrapped := Wrap(base, "loading chart source")

	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.Equal(t, "loading chart source: dataset not found", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrap_PlainErrorIsInternal(t *testing.T) {
	cause := stderrors.New("disk full")
	wrapped := Wrapf(cause, "saving %s", "sales.csv")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "saving sales.csv: disk full", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, cause))
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "x"))
	assert.NoError(t, Wrapf(nil, "x %d", 1))
	assert.NoError(t, WithCode(CodeNotFound, nil))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeDatabaseError, stderrors.New("connection refused"))
	assert.Equal(t, CodeDatabaseError, GetCode(err))

	recoded := WithCode(CodeInvalidInput, InvalidInput("bad"))
	assert.Equal(t, CodeInvalidInput, GetCode(recoded))
}

func TestGetCode_FindsWrappedAppError(t *testing.T) {
	err := fmt.Errorf("handler: %w", UnsupportedChart("radar"))

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeUnsupportedChart, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.False(t, IsAppError(stderrors.New("plain")))
}

func TestUploadRejected(t *testing.T) {
	cause := stderrors.New("unsupported file type")
	err := UploadRejected(CodeUnsupportedFile, cause)

	assert.Equal(t, CodeUnsupportedFile, GetCode(err))
	assert.True(t, stderrors.Is(err, cause))
}
