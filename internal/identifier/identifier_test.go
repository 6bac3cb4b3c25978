package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnuroopSrivastava/Verdictify/internal/apperr"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"https://www.myntra.com/tshirts/roadster/roadster-men-black-tshirt/1234567/buy", "1234567"},
		{"https://www.myntra.com/1234567?utm_source=share&p=99", "1234567"},
		{"www.myntra.com/kurtas/anouk/24680/buy#reviews", "24680"},
		{"https://m.myntra.com/shoes/11/22", "11"},
		{"www.myntra.com/tshirts/roadster/1234567/buy?ref=https://example.com", "1234567"},
		{"HTTPS://WWW.MYNTRA.COM/98765", "98765"},
	}
	for _, c := range cases {
		got, err := Resolve(c.in, "myntra.com")
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestResolveRejects(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"https://www.amazon.in/dp/123456",
		"https://notmyntra.com/123",
		"https://www.myntra.com/tshirts/roadster/buy",
		"https://www.myntra.com/buy?id=123456",
	} {
		_, err := Resolve(in, "myntra.com")
		assert.ErrorIs(t, err, apperr.ErrValidation, in)
	}
}

func TestProductURL(t *testing.T) {
	assert.Equal(t, "https://www.myntra.com/1234567", ProductURL("myntra.com", "1234567"))
	assert.Equal(t, "https://www.myntra.com/1234567", ProductURL("www.myntra.com", "1234567"))
}
