package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixed(chunks []decimal.Decimal) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.StringFixed(Places)
	}
	return out
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   []string
	}{
		{"over cap", "25000.00", []string{"10000.00", "10000.00", "5000.00"}},
		{"exactly cap", "10000.00", []string{"10000.00"}},
		{"exact multiple", "30000", []string{"10000.00", "10000.00", "10000.00"}},
		{"rounds up before splitting", "999.995", []string{"1000.00"}},
		{"rounds down before splitting", "10000.004", []string{"10000.00"}},
		{"cent above cap", "10000.01", []string{"10000.00", "0.01"}},
		{"small", "5", []string{"5.00"}},
		{"half cent rounds to one cent", "0.005", []string{"0.01"}},
		{"below half cent", "0.004", []string{}},
		{"zero", "0", []string{}},
		{"negative", "-5", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fixed(Split(d(tt.amount), DefaultCap)))
		})
	}
}

func TestSplitSumAndBounds(t *testing.T) {
	caps := []string{"10000.00", "250", "3.33", "0.07"}
	amounts := []string{"0.01", "1", "9.995", "33.333", "1234.565", "9999.99", "10000", "10000.01"}

	for _, c := range caps {
		limit := d(c)
		for _, a := range amounts {
			amount := d(a)
			chunks := Split(amount, limit)

			sum := decimal.Zero
			for _, chunk := range chunks {
				require.True(t, chunk.IsPositive(), "cap %s amount %s: chunk %s", c, a, chunk)
				require.True(t, chunk.LessThanOrEqual(limit), "cap %s amount %s: chunk %s", c, a, chunk)
				sum = sum.Add(chunk)
			}
			assert.True(t, sum.Equal(RoundHalfUp(amount)), "cap %s amount %s: sum %s", c, a, sum)

			maxSteps := RoundHalfUp(amount).Div(limit).Ceil().IntPart()
			assert.LessOrEqual(t, int64(len(chunks)), maxSteps, "cap %s amount %s", c, a)
		}
	}
}

func TestSplitOrdersCapsBeforeRemainder(t *testing.T) {
	chunks := Split(d("7.5"), d("2"))
	assert.Equal(t, []string{"2.00", "2.00", "2.00", "1.50"}, fixed(chunks))
}

func TestSplitPanicsOnNonPositiveCap(t *testing.T) {
	assert.Panics(t, func() { Split(d("1"), decimal.Zero) })
	assert.Panics(t, func() { Split(d("1"), d("-1")) })
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, "1.01", RoundHalfUp(d("1.005")).StringFixed(2))
	assert.Equal(t, "1.00", RoundHalfUp(d("1.0049")).StringFixed(2))
	assert.Equal(t, "2.50", RoundHalfUp(d("2.5")).StringFixed(2))
}

func TestCountMatchesSplit(t *testing.T) {
	for _, a := range []string{"-5", "0", "0.004", "5", "9999.995", "10000", "10000.01", "25000", "123456.785"} {
		assert.Equal(t, int64(len(Split(d(a), DefaultCap))), Count(d(a), DefaultCap), "amount %s", a)
	}
}

func TestCountDoesNotBuildChunks(t *testing.T) {
	assert.Equal(t, int64(100_000_000), Count(d("1000000000000"), DefaultCap))
	assert.Panics(t, func() { Count(d("1"), decimal.Zero) })
}
