// Package messages define el mensaje renderizado que se entrega a los suscriptores.
package messages

type PartKind string

const (
	PartText  PartKind = "text"
	PartImage PartKind = "image"
)

// MaxImageParts es el tope de imágenes por mensaje.
// Con el texto suman 5, el máximo de mensajes por llamada de LINE.
const MaxImageParts = 4

type Part struct {
	Kind PartKind

	// Text solo para PartText.
	Text string

	// URLs solo para PartImage.
	OriginalURL string
	PreviewURL  string
}

// Message es una secuencia ordenada: primero el texto, luego las imágenes.
type Message struct {
	Parts []Part
}

func TextPart(body string) Part {
	return Part{Kind: PartText, Text: body}
}

func ImagePart(url string) Part {
	return Part{Kind: PartImage, OriginalURL: url, PreviewURL: url}
}

// New arma el mensaje con el resumen y hasta MaxImageParts fotos, en orden.
func New(summary string, photos []string) Message {
	parts := make([]Part, 0, 1+min(len(photos), MaxImageParts))
	parts = append(parts, TextPart(summary))
	for _, url := range photos {
		if len(parts)-1 >= MaxImageParts {
			break
		}
		parts = append(parts, ImagePart(url))
	}
	return Message{Parts: parts}
}

func (m Message) IsEmpty() bool { return len(m.Parts) == 0 }

// Summary devuelve el texto de la primera parte.
func (m Message) Summary() string {
	if len(m.Parts) == 0 || m.Parts[0].Kind != PartText {
		return ""
	}
	return m.Parts[0].Text
}

func (m Message) Images() []Part {
	out := make([]Part, 0, len(m.Parts))
	for _, p := range m.Parts {
		if p.Kind == PartImage {
			out = append(out, p)
		}
	}
	return out
}
