// Package genai wraps the generative services a card depends on: the
// background painter and the greeting writer.
package genai

import (
	"context"
	"fmt"
)

// Generator produces the two generated inputs of a card.
type Generator interface {
	// GenerateBackgroundImage returns a base64 encoded 9:16 PNG.
	GenerateBackgroundImage(ctx context.Context) (string, error)
	// GenerateGreeting returns a short plain text birthday message.
	GenerateGreeting(ctx context.Context, name, age, profession string) (string, error)
}

// ServiceError reports a failed call to a generative service.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Operation names used in ServiceError.
const (
	OpBackground = "generate background"
	OpGreeting   = "generate greeting"
)

const backgroundPrompt = `Una imagen de fondo vertical festiva para una tarjeta de cumpleaños, de 1080x1920 píxeles. El estilo debe ser alegre, elegante y tridimensional.
- Fondo: Un degradado suave desde un azul claro y aireado en la parte inferior hasta blanco puro en la parte superior.
- Iluminación: Un efecto de luz solar suave y cálida que brilla desde el centro superior.
- Decoraciones:
  - Confeti plateado pequeño y brillante y diminutas estrellas luminosas esparcidas con elegancia.
  - Varios grupos de globos festivos flotando en las esquinas superior derecha e inferior izquierda. Los globos deben estar superpuestos para crear una sensación de profundidad.
  - Los globos deben ser en tonos de azul, algunos con brillo metálico y otros con textura de purpurina, atados con finas cuerdas plateadas.
  - Una cinta azul ondulada y elegante a lo largo del borde inferior.
El ambiente general debe ser limpio, brillante y feliz. No incluir texto ni marcos para fotos.`

// GreetingPrompt builds the text prompt for a greeting. A profession adds
// a playful nod to it and allows a slightly longer message.
func GreetingPrompt(name, age, profession string) string {
	if profession != "" {
		return fmt.Sprintf(`Genera un mensaje de cumpleaños corto, alegre y creativo en español para %[1]s, que cumple %[2]s años y es %[3]s. El mensaje no debe superar las 25 palabras. Sé cálido y celebratorio, haciendo un guiño ingenioso a su profesión. Ejemplo para un programador: "¡Feliz %[2]s cumpleaños, %[1]s! Que tu vida compile sin errores y esté llena de funciones de alegría."`, name, age, profession)
	}
	return fmt.Sprintf(`Genera un mensaje de cumpleaños corto, alegre y universal en español para %[1]s, que cumple %[2]s años. El mensaje no debe superar las 20 palabras. Ejemplo: "¡Felices %[2]s, %[1]s! Que este nuevo año de vida venga cargado de momentos inolvidables y mucha felicidad."`, name, age)
}
