package cards

import (
	"fmt"

	"github.com/gosimple/slug"
)

const fallbackFileStem = "celebration"

// FileName returns the download name of a card, card-<name>.png, with the
// name reduced to a safe slug.
func FileName(name string) string {
	stem := slug.Make(name)
	if stem == "" {
		stem = fallbackFileStem
	}
	return fmt.Sprintf("card-%s.png", stem)
}

// FallbackGreeting is used when greeting generation fails.
func FallbackGreeting(name, age string) string {
	return fmt.Sprintf("¡Felicidades por tus %s años, %s! Que este día sea tan especial como tú eres.", age, name)
}
