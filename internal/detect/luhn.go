package detect

// LuhnValid reports whether a string of digits passes the Luhn mod-10
// checksum used by payment card numbers. Any non-digit byte makes the
// input invalid.
func LuhnValid(number string) bool {
	if number == "" {
		return false
	}

	sum := 0
	// Walk right to left, doubling every second digit.
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}
