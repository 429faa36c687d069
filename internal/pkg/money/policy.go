package money

// Policy says whether line amounts already include tax (gross) or tax is
// reported as a separate synthetic sales-tax line (net).
type Policy int

const (
	PolicyGross Policy = iota
	PolicyNet
)

// netTaxationCountry is the single jurisdiction Klarna treats as net-taxed.
const netTaxationCountry = "US"

// PolicyFor selects the taxation policy for a purchase country.
func PolicyFor(country string) Policy {
	if country == netTaxationCountry {
		return PolicyNet
	}
	return PolicyGross
}

func (p Policy) Net() bool { return p == PolicyNet }

func (p Policy) String() string {
	if p == PolicyNet {
		return "net"
	}
	return "gross"
}
