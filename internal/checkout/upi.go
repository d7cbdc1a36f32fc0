package checkout

import (
	"net/url"
	"strconv"
)

// Launcher hands a URI to the platform's generic dispatch mechanism, which
// presents the user a chooser of installed payment apps. Fire-and-forget:
// the payment result is never observed by this engine.
type Launcher interface {
	Open(uri string) error
}

// UPILink builds the upi://pay deep link for the given payee and amount.
// The link is deterministic for a given order total; currency is fixed to INR.
func UPILink(payeeID, payeeName, note string, amount float64) string {
	q := url.Values{}
	q.Set("pa", payeeID)
	q.Set("pn", payeeName)
	q.Set("tn", note)
	q.Set("am", strconv.FormatFloat(amount, 'f', 2, 64))
	q.Set("cu", "INR")

	u := url.URL{Scheme: "upi", Host: "pay", RawQuery: q.Encode()}
	return u.String()
}
