package script

import "fmt"

// FormatPhone canonicalizes a phone number to "(NNN) NNN-NNNN" when the
// input carries exactly 10 digits. Anything else is returned unchanged.
//
// The function is idempotent: a formatted number still has 10 digits and
// formats to itself.
func FormatPhone(input string) string {
	digits := digitsOf(input)
	if len(digits) != 10 {
		return input
	}
	return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:10])
}
