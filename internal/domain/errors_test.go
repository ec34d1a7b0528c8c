package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "network with cause",
			err:  NewNetworkError("http://x/a.pdf", 0, "GET http://x/a.pdf failed", cause),
			want: "network error: GET http://x/a.pdf failed: connection refused",
		},
		{
			name: "document without cause",
			err:  NewDocumentError("a.pdf", "not a PDF file", nil),
			want: "document error: not a PDF file",
		},
		{
			name: "translation with stderr",
			err:  NewTranslationError("ollama translation failed", "model not found", nil),
			want: "translation error: ollama translation failed:\nmodel not found",
		},
		{
			name: "io",
			err:  NewIOError("/ro/out.json", "failed to write output", cause),
			want: "io error: failed to write output: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("saving results: %w", NewIOError("out.json", "write failed", cause))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "out.json", ioErr.Path)
	assert.ErrorIs(t, err, cause)

	var netErr *NetworkError
	assert.False(t, errors.As(err, &netErr))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNetwork, KindOf(NewNetworkError("u", 404, "not found", nil)))
	assert.Equal(t, KindDocument, KindOf(NewDocumentError("p", "bad", nil)))
	assert.Equal(t, KindTranslation, KindOf(fmt.Errorf("wrap: %w", NewTranslationError("x", "", nil))))
	assert.Equal(t, KindIO, KindOf(NewIOError("p", "x", nil)))
	assert.Equal(t, KindValidation, KindOf(NewValidationError("x", nil)))
	assert.Equal(t, KindConfig, KindOf(NewConfigError("x", nil)))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}

func TestNewParagraphRecord(t *testing.T) {
	r := NewParagraphRecord(2, 0, "Hello")
	assert.Equal(t, ParagraphRecord{Page: 2, Index: 0, Original: "Hello"}, r)
}
