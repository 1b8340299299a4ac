package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seojinp/point-ledger/internal/api/validate"
)

func TestUserID_WholeNumber_Parses(t *testing.T) {
	id, ef := validate.UserID("42")
	require.Nil(t, ef)
	assert.Equal(t, int64(42), id)
}

func TestUserID_Trimmed(t *testing.T) {
	id, ef := validate.UserID(" 7 ")
	require.Nil(t, ef)
	assert.Equal(t, int64(7), id)
}

func TestUserID_NonNumeric_Rejected(t *testing.T) {
	for _, raw := range []string{"abc", "1.5", "", "1e3"} {
		_, ef := validate.UserID(raw)
		assert.NotNil(t, ef, "raw %q", raw)
	}
}

func TestMinInt(t *testing.T) {
	assert.Nil(t, validate.MinInt("amount", 1, 1))
	assert.NotNil(t, validate.MinInt("amount", 0, 1))
}
