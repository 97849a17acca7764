package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brightlex/golox/value"
)

func TestPrintNumberAppendsTrailingZeroForIntegralValues(t *testing.T) {
	assert.Equal(t, "1.0", value.Print(value.Number(1)))
	assert.Equal(t, "1.5", value.Print(value.Number(1.5)))
}

func TestPrintNilBoolString(t *testing.T) {
	assert.Equal(t, "nil", value.Print(value.Nil))
	assert.Equal(t, "true", value.Print(value.True))
	assert.Equal(t, "false", value.Print(value.False))
	assert.Equal(t, "ab", value.Print(value.String("ab")))
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, value.Nil.IsTruthy())
	assert.False(t, value.False.IsTruthy())
	assert.True(t, value.True.IsTruthy())
	assert.True(t, value.Number(0).IsTruthy())
	assert.True(t, value.String("").IsTruthy())
}

func TestEqualCrossKindIsAlwaysFalse(t *testing.T) {
	assert.False(t, value.Number(0).Equal(value.String("0")))
	assert.False(t, value.Nil.Equal(value.False))
}

func TestNaNIsNotEqualToItself(t *testing.T) {
	nan := value.Number(math.NaN())
	assert.False(t, nan.Equal(nan))
}

func TestAddNumbersAndStrings(t *testing.T) {
	sum, err := value.Add(value.Number(1), value.Number(2))
	assert.Nil(t, err)
	assert.Equal(t, value.Number(3), sum)

	cat, err := value.Add(value.String("foo"), value.String("bar"))
	assert.Nil(t, err)
	assert.Equal(t, value.String("foobar"), cat)
}

func TestAddMixedKindsIsError(t *testing.T) {
	_, err := value.Add(value.String("1"), value.Number(2))
	assert.NotNil(t, err)
	assert.Equal(t, "Operands must be numbers.", err.Message)
}

func TestDivByZeroFollowsIEEE(t *testing.T) {
	v, err := value.Div(value.Number(1), value.Number(0))
	assert.Nil(t, err)
	assert.True(t, math.IsInf(v.Num, 1))
}

func TestComparisonOperatorsRequireNumbers(t *testing.T) {
	_, err := value.Greater(value.String("a"), value.Number(1))
	assert.NotNil(t, err)
}
