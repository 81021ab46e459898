package errs

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFoundError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		err := NewNotFoundError("samples.csv", fs.ErrNotExist)

		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInputNotFound)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.True(t, errors.Is(err, fs.ErrNotExist))

		path, ok := Meta(err, MetaKeyPath)
		assert.True(t, ok)
		assert.Equal(t, "samples.csv", path)
	})

	t.Run("without cause", func(t *testing.T) {
		err := NewNotFoundError("FilamentSamples.scad", nil)

		require.Error(t, err)
		assert.True(t, Is(err, KindNotFound))
	})
}

func TestNewExecutableNotFoundError(t *testing.T) {
	err := NewExecutableNotFoundError("darwin", []string{"/a", "/b", "openscad"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgExecutableNotFound)
	assert.True(t, Is(err, KindExecutableNotFound))

	tried, ok := Meta(err, MetaKeyTried)
	assert.True(t, ok)
	assert.Equal(t, "/a, /b, openscad", tried)

	platform, ok := Meta(err, MetaKeyPlatform)
	assert.True(t, ok)
	assert.Equal(t, "darwin", platform)
}

func TestNewMalformedRowError(t *testing.T) {
	err := NewMalformedRowError(7, "TEMP_BED", "missing")

	assert.True(t, Is(err, KindMalformedRow))
	line, ok := Meta(err, MetaKeyLine)
	assert.True(t, ok)
	assert.Equal(t, "7", line)
	field, ok := Meta(err, MetaKeyField)
	assert.True(t, ok)
	assert.Equal(t, "TEMP_BED", field)
}

func TestNewRenderFailedError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewRenderFailedError("Prusa_PLA_Red_210_60", 3, cause)

	assert.True(t, Is(err, KindRenderFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), ErrMsgRenderFailed)

	row, ok := Meta(err, MetaKeyRow)
	assert.True(t, ok)
	assert.Equal(t, "Prusa_PLA_Red_210_60", row)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "plain error", err: errors.New("boom"), want: KindUnknown},
		{name: "syntax", err: NewRowSyntaxError(2, errors.New("bare quote")), want: KindMalformedRow},
		{name: "config", err: NewInvalidConfigError("c.yaml", "bad", nil), want: KindInvalidConfig},
		{name: "wrapped", err: wrap(NewRenderFailedError("x", 1, errors.New("boom"))), want: KindRenderFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "outer: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }

func wrap(err error) error { return &wrapped{err: err} }
