package backends

import "github.com/khevencolino/Rucomp/internal/parser"

// Backend traduz um programa analisado para texto de saída.
// Compile não guarda estado entre chamadas; cada compilação usa o seu.
type Backend interface {
	Compile(programa *parser.Programa) (string, error)
	GetName() string
	GetExtension() string
}
