package errz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompileErrorMessage(t *testing.T) {
	err := New(ErrStackUnderflow, "IL_0004", "pop on empty stack")
	require.Equal(t, "stack underflow: pop on empty stack (at IL_0004)", err.Error())

	err = Newf(ErrUnsupportedInstruction, "", "%s is not supported", "calli")
	require.Equal(t, "unsupported instruction: calli is not supported", err.Error())
}

func TestDecompileErrorCause(t *testing.T) {
	cause := errors.New("override returned an int")
	err := New(ErrMalformedMember, "IL_0010", "cannot name call target").WithCause(cause)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "override returned an int")
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("decompiling Main: %w", New(ErrMalformedRegion, "", "bad label"))
	require.True(t, Is(err, ErrMalformedRegion))
	require.False(t, Is(err, ErrStackUnderflow))
	require.False(t, Is(errors.New("plain"), ErrMalformedRegion))

	nested := New(ErrMalformedMember, "", "outer").WithCause(New(ErrSyntax, "", "inner"))
	require.True(t, Is(nested, ErrSyntax))
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		kind  ErrorKind
		fatal bool
	}{
		{ErrStackUnderflow, false},
		{ErrMalformedRegion, false},
		{ErrMalformedMember, false},
		{ErrUnsupportedInstruction, true},
		{ErrMemberNotReadable, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			require.Equal(t, tt.fatal, IsFatal(New(tt.kind, "", "x")))
		})
	}
	require.True(t, IsFatal(errors.New("unknown")))
}
