package percent_test

import (
	"errors"
	"testing"

	"github.com/bjaus/percent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidPassthrough(t *testing.T) {
	t.Parallel()
	got, err := percent.DecodeUTF8([]byte("héllo"), "strict")
	require.NoError(t, err)
	assert.Equal(t, "héllo", got)
}

func TestDecodeStrict(t *testing.T) {
	t.Parallel()
	_, err := percent.DecodeUTF8([]byte{'a', 0xFF}, "strict")
	assert.ErrorIs(t, err, percent.ErrInvalidEncoding)
	assert.Contains(t, err.Error(), "can't decode byte 0xff in position 1")
}

func TestDecodeIgnore(t *testing.T) {
	t.Parallel()
	got, err := percent.DecodeUTF8([]byte{'a', 0xFF, 'b'}, "ignore")
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

func TestDecodeReplace(t *testing.T) {
	t.Parallel()
	got, err := percent.DecodeUTF8([]byte{'a', 0xFF, 'b'}, "replace")
	require.NoError(t, err)
	assert.Equal(t, "a�b", got)
}

func TestDecodeContinuationByteReason(t *testing.T) {
	t.Parallel()
	_, err := percent.DecodeUTF8([]byte{'a', 0x80}, "strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid continuation byte")
}

func TestEncodeReplace(t *testing.T) {
	t.Parallel()
	got, err := percent.EncodeUTF8(string([]byte{'a', 0xFF, 'b'}), "replace")
	require.NoError(t, err)
	assert.Equal(t, []byte("a?b"), got)
}

func TestEncodeStrict(t *testing.T) {
	t.Parallel()
	_, err := percent.EncodeUTF8(string([]byte{0xFF}), "strict")
	assert.ErrorIs(t, err, percent.ErrInvalidEncoding)
	assert.Contains(t, err.Error(), "can't encode byte")
}

func TestUnknownHandler(t *testing.T) {
	t.Parallel()
	_, err := percent.DecodeUTF8([]byte{0xFF}, "no-such-handler")
	assert.ErrorIs(t, err, percent.ErrUnknownHandler)
}

func TestCustomHandler(t *testing.T) {
	t.Parallel()
	percent.RegisterErrorHandler("codec-test-mark", func(input []byte, reason, encoding string, start, end int) ([]byte, int, error) {
		assert.Equal(t, "utf-8", encoding)
		assert.NotEmpty(t, reason)
		return []byte("<bad>"), end, nil
	})
	got, err := percent.DecodeUTF8([]byte{'a', 0xFF, 'b'}, "codec-test-mark")
	require.NoError(t, err)
	assert.Equal(t, "a<bad>b", got)
}

func TestCustomHandlerNegativePosition(t *testing.T) {
	t.Parallel()
	// A negative resume position counts from the end of the input.
	percent.RegisterErrorHandler("codec-test-neg", func(input []byte, reason, encoding string, start, end int) ([]byte, int, error) {
		return []byte("*"), -1, nil
	})
	got, err := percent.DecodeUTF8([]byte{'a', 0xFF, 'b'}, "codec-test-neg")
	require.NoError(t, err)
	assert.Equal(t, "a*b", got)
}

func TestCustomHandlerPositionOutOfBounds(t *testing.T) {
	t.Parallel()
	percent.RegisterErrorHandler("codec-test-oob", func(input []byte, reason, encoding string, start, end int) ([]byte, int, error) {
		return nil, 10, nil
	})
	_, err := percent.DecodeUTF8([]byte{0xFF}, "codec-test-oob")
	assert.ErrorIs(t, err, percent.ErrValueOutOfRange)
}

func TestCustomHandlerErrorPropagates(t *testing.T) {
	t.Parallel()
	boom := errors.New("handler refused")
	percent.RegisterErrorHandler("codec-test-boom", func(input []byte, reason, encoding string, start, end int) ([]byte, int, error) {
		return nil, 0, boom
	})
	_, err := percent.DecodeUTF8([]byte{0xFF}, "codec-test-boom")
	assert.ErrorIs(t, err, boom)
}
