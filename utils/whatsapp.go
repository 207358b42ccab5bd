package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppOrderLink builds a wa.me deep link pre-filled with an order message
// for a single product. The phone number keeps its digits only.
func WhatsAppOrderLink(phone, productName string, price float64) string {
	message := fmt.Sprintf("Bonjour, je souhaite commander %s (%.2f FCFA)", productName, price)
	return fmt.Sprintf("https://wa.me/%s?text=%s", DigitsOnly(phone), url.QueryEscape(message))
}

// WhatsAppLink builds a plain wa.me link without a pre-filled message.
func WhatsAppLink(phone string) string {
	return "https://wa.me/" + DigitsOnly(phone)
}

func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
