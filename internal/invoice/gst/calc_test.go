package gst

import (
	"testing"

	"github.com/saralbooks/saral/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLine(t *testing.T) {
	// 2 × 150.00 at 18% -> base 300.00, tax 54.00, total 354.00
	line, err := ComputeLine(money.Paise(15000), 2, 1800)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(30000), line.Base)
	assert.Equal(t, money.Paise(5400), line.Tax)
	assert.Equal(t, money.Paise(35400), line.Total)
}

func TestComputeLineRounding(t *testing.T) {
	// 3 × 33.33 at 5% -> base 99.99, raw tax 4.9995 -> 5.00 half-up
	line, err := ComputeLine(money.Paise(3333), 3, 500)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(9999), line.Base)
	assert.Equal(t, money.Paise(500), line.Tax)
	assert.Equal(t, money.Paise(10499), line.Total)
}

func TestComputeLineZeroRate(t *testing.T) {
	line, err := ComputeLine(money.Paise(9999), 7, 0)
	require.NoError(t, err)
	assert.Equal(t, money.Paise(0), line.Tax)
	assert.Equal(t, line.Base, line.Total)
}

func TestComputeLineRejectsBadInput(t *testing.T) {
	_, err := ComputeLine(money.Paise(100), 0, 1800)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeLine(money.Paise(100), -3, 1800)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeLine(money.Paise(-1), 1, 1800)
	assert.ErrorIs(t, err, ErrInvalidUnitRate)

	_, err = ComputeLine(money.Paise(100), 1, -500)
	assert.ErrorIs(t, err, ErrInvalidTaxRate)
}

func TestAggregateIntrastateEvenSplit(t *testing.T) {
	lines := mustLines(t, []lineInput{
		{unitRate: 10000, qty: 1, rate: 1800}, // tax 18.00
		{unitRate: 5000, qty: 2, rate: 1800},  // tax 18.00
	})

	totals := Aggregate(lines, Intrastate)
	assert.Equal(t, money.Paise(20000), totals.Assessable)
	assert.Equal(t, money.Paise(3600), totals.TotalTax)
	assert.Equal(t, money.Paise(1800), totals.SGST)
	assert.Equal(t, money.Paise(1800), totals.CGST)
	assert.Equal(t, money.Paise(0), totals.IGST)
	assert.Equal(t, money.Paise(23600), totals.Grand)
}

func TestAggregateIntrastateOddPaisaGoesToCGST(t *testing.T) {
	lines := []Line{
		{Base: 10000, Tax: 1801, Total: 11801}, // odd number of paise
	}

	totals := Aggregate(lines, Intrastate)
	assert.Equal(t, money.Paise(900), totals.SGST)
	assert.Equal(t, money.Paise(901), totals.CGST)
	assert.Equal(t, totals.SGST+totals.CGST, totals.TotalTax)
	assert.Equal(t, totals.Assessable+totals.SGST+totals.CGST+totals.IGST, totals.Grand)
}

func TestAggregateInterstateAndExport(t *testing.T) {
	lines := mustLines(t, []lineInput{
		{unitRate: 12345, qty: 3, rate: 2800},
	})

	for _, j := range []Jurisdiction{Interstate, Export} {
		totals := Aggregate(lines, j)
		assert.Equal(t, money.Paise(0), totals.SGST, string(j))
		assert.Equal(t, money.Paise(0), totals.CGST, string(j))
		assert.Equal(t, totals.TotalTax, totals.IGST, string(j))
		assert.Equal(t, totals.Assessable+totals.IGST, totals.Grand, string(j))
	}
}

func TestAggregateInvariantAcrossStatutoryRates(t *testing.T) {
	rates := []money.BasisPoints{0, 500, 1200, 1800, 2800}
	unitRates := []money.Paise{1, 99, 3333, 10000, 987654}

	for _, rate := range rates {
		for _, unitRate := range unitRates {
			for _, j := range []Jurisdiction{Intrastate, Interstate, Export} {
				lines := mustLines(t, []lineInput{
					{unitRate: unitRate, qty: 1, rate: rate},
					{unitRate: unitRate, qty: 3, rate: rate},
					{unitRate: unitRate, qty: 7, rate: rate},
				})
				totals := Aggregate(lines, j)

				assert.Equal(t, totals.Grand,
					totals.Assessable+totals.SGST+totals.CGST+totals.IGST,
					"rate=%d unitRate=%d jurisdiction=%s", rate, unitRate, j)

				if j == Intrastate {
					assert.Equal(t, money.Paise(0), totals.IGST)
					diff := totals.CGST - totals.SGST
					assert.True(t, diff == 0 || diff == 1,
						"cgst-sgst must be 0 or 1 paisa, got %d", diff)
				} else {
					assert.Equal(t, money.Paise(0), totals.SGST)
					assert.Equal(t, money.Paise(0), totals.CGST)
					assert.Equal(t, totals.TotalTax, totals.IGST)
				}

				if rate == 0 {
					assert.Equal(t, totals.Assessable, totals.Grand)
					assert.Equal(t, money.Paise(0), totals.TotalTax)
				}
			}
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	lines := mustLines(t, []lineInput{
		{unitRate: 3333, qty: 3, rate: 1800},
		{unitRate: 100, qty: 1, rate: 1800},
	})
	first := Aggregate(lines, Intrastate)
	second := Aggregate(lines, Intrastate)
	assert.Equal(t, first, second)
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil, Interstate)
	assert.Equal(t, Totals{}, totals)
}

type lineInput struct {
	unitRate money.Paise
	qty      int64
	rate     money.BasisPoints
}

func mustLines(t *testing.T, inputs []lineInput) []Line {
	t.Helper()
	lines := make([]Line, 0, len(inputs))
	for _, in := range inputs {
		line, err := ComputeLine(in.unitRate, in.qty, in.rate)
		require.NoError(t, err)
		lines = append(lines, line)
	}
	return lines
}
