package validators

import "strings"

// NormalizePhone mantém só dígitos (e o + inicial), para o telefone servir
// de chave do cliente na filial.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhoneValid exige entre 8 e 15 dígitos.
func IsPhoneValid(phone string) bool {
	digits := strings.TrimPrefix(NormalizePhone(phone), "+")
	return len(digits) >= 8 && len(digits) <= 15
}
