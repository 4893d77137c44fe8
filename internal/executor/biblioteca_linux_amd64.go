//go:build linux && amd64

package executor

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/khevencolino/Rucomp/internal/backends/assembly/x86_64"
	"github.com/khevencolino/Rucomp/internal/debug"
)

// Biblioteca é uma biblioteca compartilhada carregada no processo
type Biblioteca struct {
	caminho string
	handle  uintptr
	funcao  func(a, b, c, d, e, f int64) int64
}

// Carregar abre a biblioteca e resolve nomeFuncao
func Carregar(caminho, nomeFuncao string) (*Biblioteca, error) {
	handle, err := purego.Dlopen(caminho, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar '%s': %w", caminho, err)
	}

	if _, err := purego.Dlsym(handle, nomeFuncao); err != nil {
		_ = purego.Dlclose(handle)
		return nil, fmt.Errorf("símbolo '%s' ausente em '%s': %w", nomeFuncao, caminho, err)
	}

	bib := &Biblioteca{caminho: caminho, handle: handle}
	purego.RegisterLibFunc(&bib.funcao, handle, nomeFuncao)

	debug.Log("biblioteca carregada", "caminho", caminho, "funcao", nomeFuncao)
	return bib, nil
}

// Chamar invoca a função; argumentos não usados vão como zero
func (b *Biblioteca) Chamar(argumentos ...int64) (int64, error) {
	if len(argumentos) > x86_64.MaxArgumentos {
		return 0, fmt.Errorf("no máximo %d argumentos, recebidos %d", x86_64.MaxArgumentos, len(argumentos))
	}
	var regs [x86_64.MaxArgumentos]int64
	copy(regs[:], argumentos)
	return b.funcao(regs[0], regs[1], regs[2], regs[3], regs[4], regs[5]), nil
}

// Fechar libera a biblioteca
func (b *Biblioteca) Fechar() error {
	if b.handle == 0 {
		return nil
	}
	err := purego.Dlclose(b.handle)
	b.handle = 0
	return err
}
