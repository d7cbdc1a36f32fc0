package checkout_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/internal/checkout"
)

func TestUPILink(t *testing.T) {
	link := checkout.UPILink("shop@oksbi", "Bazaar", "Bazaar Payment", 250)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "upi", u.Scheme)
	assert.Equal(t, "pay", u.Host)

	q := u.Query()
	assert.Equal(t, "shop@oksbi", q.Get("pa"))
	assert.Equal(t, "Bazaar", q.Get("pn"))
	assert.Equal(t, "Bazaar Payment", q.Get("tn"))
	assert.Equal(t, "250.00", q.Get("am"), "amount is a two-decimal string")
	assert.Equal(t, "INR", q.Get("cu"), "currency is fixed")
}

func TestUPILink_Deterministic(t *testing.T) {
	first := checkout.UPILink("shop@oksbi", "Bazaar", "note", 1234.5)
	second := checkout.UPILink("shop@oksbi", "Bazaar", "note", 1234.5)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "am=1234.50")
}
