package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain ten digits", raw: "5551234567", want: "5551234567"},
		{name: "punctuation", raw: "(555) 123-4567", want: "5551234567"},
		{name: "country code", raw: "+1 555 123 4567", want: "5551234567"},
		{name: "float rendering", raw: "5551234567.0", want: "5551234567"},
		{name: "short", raw: "123-45", want: "12345"},
		{name: "empty", raw: "  ", want: ""},
		{name: "letters only", raw: "n/a", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.raw))
		})
	}
}

func TestPhoneIsIdempotent(t *testing.T) {
	for _, raw := range []string{"5551234567", "+44 (20) 7946-0958", "1-800-FLOWERS", "987"} {
		once := Phone(raw)
		assert.Equal(t, once, Phone(once), "raw %q", raw)
	}
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", Email("  Jane@Example.COM "))
	assert.Equal(t, "", Email("   "))
}

func TestNameKeys(t *testing.T) {
	assert.Equal(t, "MARY ANN", Name("  mary   ann "))
	assert.Equal(t, "JANE|DOE", NameKey(" jane", "Doe "))
	assert.Equal(t, "", NameKey("jane", ""))
	assert.Equal(t, "JANE DOE", CustomerKey("jane ", " doe"))
	assert.Equal(t, "DOE", CustomerKey("", "doe"))
}

func TestMoney(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		parsed bool
	}{
		{raw: "150", want: "150", parsed: true},
		{raw: "$1,250.50", want: "1250.5", parsed: true},
		{raw: "(12.00)", want: "-12", parsed: true},
		{raw: "abc", want: "0", parsed: false},
		{raw: "", want: "0", parsed: false},
	}
	for _, tt := range tests {
		got, ok := Money(tt.raw)
		assert.Equal(t, tt.parsed, ok, "raw %q", tt.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "raw %q got %s", tt.raw, got)
	}
}

func TestNonNegativeMoney(t *testing.T) {
	assert.True(t, NonNegativeMoney("-5").IsZero())
	assert.True(t, NonNegativeMoney("pending").IsZero())
	assert.True(t, NonNegativeMoney("40").Equal(decimal.NewFromInt(40)))
}

func TestSameLabel(t *testing.T) {
	assert.True(t, SameLabel(" not  interested", "Not Interested"))
	assert.False(t, SameLabel("Quoted", "Sold"))
}
