package otp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCode_LengthAndDigits(t *testing.T) {
	t.Parallel()

	gen := New()

	for _, length := range []int{4, 6, 8} {
		code, err := gen.GenerateCode(length)
		require.NoError(t, err)
		require.Len(t, code, length)

		for _, r := range code {
			require.True(t, r >= '0' && r <= '9', "non-digit %q in code %q", r, code)
		}
	}
}

func TestGenerateCode_LeadingZeroPreserved(t *testing.T) {
	t.Parallel()

	gen := New()

	// Код - строка, а не число: ведущие нули не теряются.
	// За 200 попыток 4-значный код с ведущим нулём почти наверняка встретится.
	seen := false
	for i := 0; i < 200; i++ {
		code, err := gen.GenerateCode(4)
		require.NoError(t, err)
		require.Len(t, code, 4)

		if code[0] == '0' {
			seen = true
			break
		}
	}
	require.True(t, seen, "no code with leading zero in 200 draws")
}

func TestGenerateCode_InvalidLength(t *testing.T) {
	t.Parallel()

	gen := New()

	_, err := gen.GenerateCode(0)
	require.ErrorIs(t, err, ErrInvalidLength)

	_, err = gen.GenerateCode(-1)
	require.ErrorIs(t, err, ErrInvalidLength)
}
