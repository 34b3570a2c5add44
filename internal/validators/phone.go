package validators

import "regexp"

// Formato internacional simples: +233123456789, 9 a 15 dígitos
var phoneRe = regexp.MustCompile(`^\+?\d{9,15}$`)

func IsPhoneValid(phone string) bool {
	return phoneRe.MatchString(phone)
}
