//go:build !(linux && amd64)

package executor

// Biblioteca só existe em linux/amd64
type Biblioteca struct{}

func Carregar(caminho, nomeFuncao string) (*Biblioteca, error) {
	return nil, ErrNaoSuportado
}

func (b *Biblioteca) Chamar(argumentos ...int64) (int64, error) {
	return 0, ErrNaoSuportado
}

func (b *Biblioteca) Fechar() error {
	return nil
}
