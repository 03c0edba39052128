package analyzer

// headerMissing is the sentinel value reported for an absent header.
const headerMissing = "Missing"

// fetchErrorText is the sole value in the header map when the probe failed.
const fetchErrorText = "Could not fetch headers"

// securityHeaderNames is the fixed probe set, in report order.
var securityHeaderNames = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Frame-Options",
	"X-Content-Type-Options",
	"Referrer-Policy",
	"Permissions-Policy",
}

// rule is one independent scoring check over the normalized scheme and the
// probed header map. When the check fails its failure message is reported.
type rule struct {
	applies  func(https bool, headers map[string]string) bool
	security int
	privacy  int
	failure  string
}

// scoringRules is evaluated in order; contributions sum. A fetch-error map
// carries none of the probed header names, so every header rule fails,
// which is exactly the degraded scoring the contract requires.
var scoringRules = []rule{
	{
		applies:  func(https bool, _ map[string]string) bool { return https },
		security: 30,
		privacy:  20,
		failure:  "Site does not use HTTPS - traffic is not encrypted",
	},
	{
		applies:  headerPresent("Strict-Transport-Security"),
		security: 15,
		failure:  "Missing HSTS header - vulnerable to protocol downgrade attacks",
	},
	{
		applies:  headerPresent("Content-Security-Policy"),
		security: 15,
		privacy:  15,
		failure:  "Missing CSP header - vulnerable to XSS attacks",
	},
	{
		applies:  headerPresent("X-Frame-Options"),
		security: 10,
		failure:  "Missing X-Frame-Options - vulnerable to clickjacking",
	},
	{
		applies:  headerPresent("X-Content-Type-Options"),
		security: 10,
		failure:  "Missing X-Content-Type-Options header",
	},
	{
		applies: headerPresent("Referrer-Policy"),
		privacy: 15,
		failure: "Missing Referrer-Policy - may leak information",
	},
	{
		applies: headerPresent("Permissions-Policy"),
		privacy: 20,
		failure: "Missing Permissions-Policy header",
	},
}

func headerPresent(name string) func(bool, map[string]string) bool {
	return func(_ bool, headers map[string]string) bool {
		v, ok := headers[name]
		return ok && v != headerMissing
	}
}
