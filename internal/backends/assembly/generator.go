package assembly

import (
	"fmt"

	"github.com/khevencolino/Rucomp/internal/backends"
	"github.com/khevencolino/Rucomp/internal/backends/assembly/x86_64"
)

// NomeFuncaoPadrao é o símbolo exportado quando nenhum outro é configurado
const NomeFuncaoPadrao = "foo"

func NewAssemblyBackend(arch string, nomeFuncao string) (backends.Backend, error) {
	if nomeFuncao == "" {
		nomeFuncao = NomeFuncaoPadrao
	}
	switch arch {
	case "x86_64", "amd64":
		return x86_64.NewX86_64Backend(nomeFuncao), nil
	default:
		return nil, fmt.Errorf("unsupported assembly architecture: %s", arch)
	}
}
