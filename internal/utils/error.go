package utils

import (
	"errors"
	"fmt"
	"strings"
)

// TipoErro classifica os erros que abortam uma compilação
type TipoErro int

const (
	ErroLexico                    TipoErro = iota // caractere ou literal não reconhecido
	ErroSintatico                                 // sequência de tokens fora da gramática
	ErroIdentificadorNaoDeclarado                 // nome ausente das listas de argumentos e variáveis
	ErroArgumentosDemais                          // mais argumentos que registradores disponíveis
	ErroEstrutural                                // chave, parêntese, retorno ou comparação ausente
)

// String retorna uma representação em string do tipo de erro
func (t TipoErro) String() string {
	switch t {
	case ErroLexico:
		return "erro léxico"
	case ErroSintatico:
		return "erro sintático"
	case ErroIdentificadorNaoDeclarado:
		return "identificador não declarado"
	case ErroArgumentosDemais:
		return "argumentos demais"
	case ErroEstrutural:
		return "erro estrutural"
	default:
		return "erro desconhecido"
	}
}

// Sentinelas para uso com errors.Is
var (
	ErrLexico                    = errors.New(ErroLexico.String())
	ErrSintatico                 = errors.New(ErroSintatico.String())
	ErrIdentificadorNaoDeclarado = errors.New(ErroIdentificadorNaoDeclarado.String())
	ErrArgumentosDemais          = errors.New(ErroArgumentosDemais.String())
	ErrEstrutural                = errors.New(ErroEstrutural.String())
)

var sentinelas = map[TipoErro]error{
	ErroLexico:                    ErrLexico,
	ErroSintatico:                 ErrSintatico,
	ErroIdentificadorNaoDeclarado: ErrIdentificadorNaoDeclarado,
	ErroArgumentosDemais:          ErrArgumentosDemais,
	ErroEstrutural:                ErrEstrutural,
}

// CompilerError representa um erro do compilador com informações de posição
type CompilerError struct {
	Tipo     TipoErro // Categoria do erro
	Mensagem string   // Mensagem de erro
	Linha    int      // Linha onde ocorreu o erro
	Coluna   int      // Coluna onde ocorreu o erro
	Detalhes string   // Detalhes adicionais do erro
}

// Error implementa a interface error
func (e *CompilerError) Error() string {
	var builder strings.Builder
	builder.WriteString(e.Tipo.String())
	builder.WriteString(": ")
	builder.WriteString(e.Mensagem)
	if e.Linha > 0 && e.Coluna > 0 {
		builder.WriteString(fmt.Sprintf(" em linha %d, coluna %d", e.Linha, e.Coluna))
	}
	if e.Detalhes != "" {
		builder.WriteString(" (")
		builder.WriteString(e.Detalhes)
		builder.WriteString(")")
	}
	return builder.String()
}

// Is permite comparar com as sentinelas do pacote
func (e *CompilerError) Is(alvo error) bool {
	return sentinelas[e.Tipo] == alvo
}

// NovoErro cria um novo erro do compilador
func NovoErro(tipo TipoErro, mensagem string, linha, coluna int, detalhes string) *CompilerError {
	return &CompilerError{
		Tipo:     tipo,
		Mensagem: mensagem,
		Linha:    linha,
		Coluna:   coluna,
		Detalhes: detalhes,
	}
}

// TipoDoErro extrai a categoria de um erro do compilador, se houver
func TipoDoErro(err error) (TipoErro, bool) {
	var ce *CompilerError
	if errors.As(err, &ce) {
		return ce.Tipo, true
	}
	return 0, false
}
