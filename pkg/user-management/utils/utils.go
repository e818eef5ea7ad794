package utils

import (
	"regexp"
	"strings"
)

// digits only, tolerates leading zeros; length bounds keep out obvious garbage
// without normalizing away any structure the caller sent
var phoneNumberRule = regexp.MustCompile(`^[0-9]{7,15}$`)

func SanitizePhoneNumber(phone string) string {
	phone = strings.Trim(phone, " \n\r")
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phone
}

// CheckPhoneNumberFormat to check if input string can be used as a phone
// number key. Phone numbers stay strings end to end, never numeric types.
func CheckPhoneNumberFormat(phone string) bool {
	return phoneNumberRule.MatchString(phone)
}

// BlurPhoneNumber transforms a phone number to reduce exposed personal info
// in logs
func BlurPhoneNumber(phone string) string {
	if len(phone) < 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-3) + phone[len(phone)-3:]
}
