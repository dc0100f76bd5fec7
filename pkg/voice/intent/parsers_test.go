package intent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundOrderQuantity(t *testing.T) {
	cases := []struct {
		requested, available, want int
	}{
		{23, 50, 20},
		{7, 50, 10},
		{45, 40, 40},
		{10, 10, 10},
		{55, 37, 30},
		{20, 8, 8},
		{100, 100, 100},
		{0, 50, 10},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, roundOrderQuantity(c.requested, c.available),
			"requested=%d available=%d", c.requested, c.available)
	}
}

func TestParseExpiryDateRelative(t *testing.T) {
	cases := map[string]Date{
		"today":                today(),
		"it expires tomorrow":  day(1),
		"next week":            day(7),
		"in a week":            day(7),
		"in 10 days":           day(10),
		"in 1 day":             day(1),
		"it's good in 3 days!": day(3),
	}
	for text, want := range cases {
		got, ok := parseExpiryDate(newUtterance(text), today())
		require.True(t, ok, text)
		assert.True(t, want.Equal(got), "%s: want %s got %s", text, want, got)
	}
}

func TestParseExpiryDateAbsolute(t *testing.T) {
	got, ok := parseExpiryDate(newUtterance("2026-04-02"), today())
	require.True(t, ok)
	assert.Equal(t, NewDate(2026, time.April, 2), got)

	got, ok = parseExpiryDate(newUtterance("March 15th"), today())
	require.True(t, ok)
	assert.Equal(t, NewDate(2026, time.March, 15), got)

	got, ok = parseExpiryDate(newUtterance("on 20 dec"), today())
	require.True(t, ok)
	assert.Equal(t, NewDate(2026, time.December, 20), got)
}

func TestParseExpiryDateRollsToNextYear(t *testing.T) {
	// hoje é 10 de março; 1 de março já passou
	got, ok := parseExpiryDate(newUtterance("March 1"), today())
	require.True(t, ok)
	assert.Equal(t, NewDate(2027, time.March, 1), got)

	// o próprio dia de hoje não rola
	got, ok = parseExpiryDate(newUtterance("march 10"), today())
	require.True(t, ok)
	assert.Equal(t, NewDate(2026, time.March, 10), got)
}

func TestParseExpiryDateRejects(t *testing.T) {
	for _, text := range []string{"whenever", "soon-ish", "april 31", "march", "june 45"} {
		_, ok := parseExpiryDate(newUtterance(text), today())
		assert.False(t, ok, text)
	}
}

func TestParseQuantity(t *testing.T) {
	q, ok := parseQuantity(newUtterance("about 40 crates"))
	assert.True(t, ok)
	assert.Equal(t, 40, q)

	q, ok = parseQuantity(newUtterance("twenty"))
	assert.True(t, ok)
	assert.Equal(t, 20, q)

	q, ok = parseQuantity(newUtterance("a hundred"))
	assert.True(t, ok)
	assert.Equal(t, 100, q)

	_, ok = parseQuantity(newUtterance("0"))
	assert.False(t, ok)

	_, ok = parseQuantity(newUtterance("lots"))
	assert.False(t, ok)
}

func TestParsePrice(t *testing.T) {
	p := parsePrice(newUtterance("20 rupees"))
	require.NotNil(t, p)
	assert.Equal(t, 20.0, *p)

	p = parsePrice(newUtterance("Rs. 12.50 per kg"))
	require.NotNil(t, p)
	assert.Equal(t, 12.5, *p)

	p = parsePrice(newUtterance("$3."))
	require.NotNil(t, p)
	assert.Equal(t, 3.0, *p)

	for _, text := range []string{"skip", "no", "no price", "nan", "free", ""} {
		assert.Nil(t, parsePrice(newUtterance(text)), text)
	}
}

func TestParseProductName(t *testing.T) {
	name, ok := parseProductName("  cherry   tomatoes ")
	assert.True(t, ok)
	assert.Equal(t, "Cherry Tomatoes", name)

	_, ok = parseProductName("x")
	assert.False(t, ok)

	_, ok = parseProductName("   ")
	assert.False(t, ok)
}

func TestParseExpiryDateLeapDayRollover(t *testing.T) {
	// 29 de fevereiro já passou em 2028 e 2029 não é bissexto
	march5 := NewDate(2028, time.March, 5)
	_, ok := parseExpiryDate(newUtterance("feb 29"), march5)
	assert.False(t, ok)

	jan10 := NewDate(2028, time.January, 10)
	got, ok := parseExpiryDate(newUtterance("feb 29"), jan10)
	require.True(t, ok)
	assert.Equal(t, NewDate(2028, time.February, 29), got)
}

func TestParseQuantityRejectsOverflow(t *testing.T) {
	_, ok := parseQuantity(newUtterance("5000000000 units"))
	assert.False(t, ok)

	q, ok := parseQuantity(newUtterance("2147483647"))
	assert.True(t, ok)
	assert.Equal(t, maxQuantity, q)
}
