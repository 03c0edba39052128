package analyzer

// Score computes the security and privacy scores plus the ordered
// recommendation list from the normalized scheme and a probed header map.
// It is a pure function: no I/O, no state, safe for concurrent use.
// Passing a fetch-error map (or nil) counts every header as absent.
func Score(https bool, headers map[string]string) (securityScore, privacyScore int, recommendations []string) {
	recommendations = []string{}

	for _, r := range scoringRules {
		if r.applies(https, headers) {
			securityScore += r.security
			privacyScore += r.privacy
		} else {
			recommendations = append(recommendations, r.failure)
		}
	}

	securityScore = clampScore(securityScore)
	privacyScore = clampScore(privacyScore)

	switch {
	case securityScore >= 80:
		recommendations = append([]string{"Excellent security configuration!"}, recommendations...)
	case securityScore >= 60:
		recommendations = append([]string{"Good security, but room for improvement"}, recommendations...)
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "All security checks passed!")
	}

	return securityScore, privacyScore, recommendations
}

// clampScore bounds a score to [0,100]. Rule sums stay in range by
// construction; the clamp is a hard invariant of the result contract.
func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
