// Package upi builds upi://pay deep links that a client renders into a QR code.
package upi

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const scheme = "upi://pay"

// Link describes a single payment intent. Amount is ignored when Dynamic is set:
// the payer enters it in their UPI app.
type Link struct {
	PayeeVPA  string
	PayeeName string
	Amount    decimal.Decimal
	Currency  string
	Note      string
	Dynamic   bool
}

// String renders the link keeping parameter order pa, pn, am, cu, tn.
func (l Link) String() string {
	var b strings.Builder
	b.WriteString(scheme)

	sep := byte('?')
	add := func(key, value string) {
		b.WriteByte(sep)
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(escape(value))
		sep = '&'
	}

	add("pa", l.PayeeVPA)
	add("pn", l.PayeeName)
	if !l.Dynamic {
		add("am", l.Amount.StringFixed(2))
	}
	add("cu", l.currency())
	add("tn", l.Note)

	return b.String()
}

func (l Link) currency() string {
	if l.Currency == "" {
		return "INR"
	}
	return l.Currency
}

// escape is query escaping that leaves '@' readable and encodes spaces as %20,
// which UPI apps parse more reliably than '+'.
func escape(s string) string {
	e := url.QueryEscape(s)
	e = strings.ReplaceAll(e, "+", "%20")
	return strings.ReplaceAll(e, "%40", "@")
}

// Amount rounds a float amount to paise.
func Amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
