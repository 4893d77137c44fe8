package compiler

import (
	"fmt"

	"github.com/khevencolino/Rucomp/internal/backends"
	"github.com/khevencolino/Rucomp/internal/debug"
	"github.com/khevencolino/Rucomp/internal/lexer"
	"github.com/khevencolino/Rucomp/internal/parser"
	"github.com/khevencolino/Rucomp/internal/utils"
)

// Compiler representa o compilador principal. Uma instância atende uma
// compilação por vez; compilações em paralelo usam instâncias separadas.
type Compiler struct {
	backend   backends.Backend // Gerador de saída
	validador *Validador       // Checagens entre parser e backend
	estrito   bool             // Falha no primeiro caractere inválido
}

// Analise guarda os artefatos intermediários de uma compilação
type Analise struct {
	Tokens   []lexer.Token
	Programa *parser.Programa
}

// NovoCompilador cria um novo compilador
func NovoCompilador(backend backends.Backend, lexicoEstrito bool) *Compiler {
	return &Compiler{
		backend:   backend,
		validador: NovoValidador(),
		estrito:   lexicoEstrito,
	}
}

// Backend devolve o backend em uso
func (c *Compiler) Backend() backends.Backend {
	return c.backend
}

// Analisar executa as etapas de front-end: léxico, sintático e validação
func (c *Compiler) Analisar(fonte string) (*Analise, error) {
	tokens, err := c.tokenizar(fonte)
	if err != nil {
		return nil, err
	}

	programa, err := parser.NovoParser(tokens).AnalisarPrograma()
	if err != nil {
		return nil, err
	}
	debug.Log("programa analisado",
		"argumentos", len(programa.Argumentos),
		"variaveis", len(programa.Variaveis),
		"comandos", len(programa.Comandos))

	if err := c.validador.Validar(programa); err != nil {
		return nil, err
	}

	return &Analise{Tokens: tokens, Programa: programa}, nil
}

// Compilar traduz o texto fonte inteiro. Em caso de erro nenhuma saída
// parcial é devolvida.
func (c *Compiler) Compilar(fonte string) (string, error) {
	analise, err := c.Analisar(fonte)
	if err != nil {
		return "", err
	}
	return c.Gerar(analise.Programa)
}

// Gerar passa um programa já validado ao backend
func (c *Compiler) Gerar(programa *parser.Programa) (string, error) {
	debug.Printf("Gerando saída com backend %s\n", c.backend.GetName())
	saida, err := c.backend.Compile(programa)
	if err != nil {
		return "", err
	}
	return saida, nil
}

// CompilarArquivo compila arquivoEntrada e grava o resultado em arquivoSaida
func (c *Compiler) CompilarArquivo(arquivoEntrada, arquivoSaida string) error {
	conteudo, err := utils.LerArquivo(arquivoEntrada)
	if err != nil {
		return err
	}

	saida, err := c.Compilar(conteudo)
	if err != nil {
		return fmt.Errorf("%s: %w", arquivoEntrada, err)
	}

	if err := utils.EscreverArquivo(arquivoSaida, saida); err != nil {
		return err
	}

	debug.Log("arquivo compilado", "entrada", arquivoEntrada, "saida", arquivoSaida)
	return nil
}

// tokenizar realiza análise léxica
func (c *Compiler) tokenizar(conteudo string) ([]lexer.Token, error) {
	l := lexer.NovoLexer(conteudo)
	l.Estrito = c.estrito
	tokens, err := l.Tokenizar()
	if err != nil {
		return nil, err
	}
	debug.Log("tokens encontrados", "quantidade", len(tokens))
	return tokens, nil
}
