package parser

import (
	"fmt"
	"strings"

	"github.com/khevencolino/Rucomp/internal/lexer"
)

// Expressao representa a interface base para os nós aritméticos da AST
type Expressao interface {
	Aceitar(visitante Visitante) error
	String() string
}

// Numero representa um literal inteiro, guardado como texto
type Numero struct {
	Valor string
	Token lexer.Token
}

// Aceitar implementa o padrão visitor para Numero
func (n *Numero) Aceitar(visitante Visitante) error {
	return visitante.Numero(n)
}

// String retorna representação em string do número
func (n *Numero) String() string {
	return n.Valor
}

// Identificador representa uma referência a argumento ou variável
type Identificador struct {
	Nome  string
	Token lexer.Token
}

// Aceitar implementa o padrão visitor para Identificador
func (i *Identificador) Aceitar(visitante Visitante) error {
	return visitante.Identificador(i)
}

// String retorna o nome do identificador
func (i *Identificador) String() string {
	return i.Nome
}

// OperacaoBinaria representa uma operação binária na árvore
type OperacaoBinaria struct {
	OperandoEsquerdo Expressao
	Operador         TipoOperador
	OperandoDireito  Expressao
	Token            lexer.Token
}

// Aceitar implementa o padrão visitor para OperacaoBinaria
func (o *OperacaoBinaria) Aceitar(visitante Visitante) error {
	return visitante.OperacaoBinaria(o)
}

// String retorna representação em string da operação
func (o *OperacaoBinaria) String() string {
	return fmt.Sprintf("(%s %s %s)",
		o.OperandoEsquerdo.String(),
		o.Operador.String(),
		o.OperandoDireito.String())
}

// TipoOperador representa os tipos de operadores aritméticos
type TipoOperador int

const (
	ADICAO TipoOperador = iota
	SUBTRACAO
	MULTIPLICACAO
)

// String retorna representação em string do operador
func (t TipoOperador) String() string {
	switch t {
	case ADICAO:
		return "+"
	case SUBTRACAO:
		return "-"
	case MULTIPLICACAO:
		return "*"
	default:
		return "?"
	}
}

// Visitante define a interface para o padrão visitor
type Visitante interface {
	Numero(numero *Numero) error
	Identificador(identificador *Identificador) error
	OperacaoBinaria(operacao *OperacaoBinaria) error
}

// Condicao é o teste de um 'if' ou 'while'
type Condicao interface {
	condicao()
	String() string
}

// Literal representa true ou false
type Literal struct {
	Valor bool
	Token lexer.Token
}

func (*Literal) condicao() {}

func (l *Literal) String() string {
	if l.Valor {
		return "true"
	}
	return "false"
}

// TipoComparacao representa os operadores de comparação
type TipoComparacao int

const (
	MENOR_QUE TipoComparacao = iota
	MENOR_IGUAL
	MAIOR_QUE
	MAIOR_IGUAL
	IGUALDADE
)

// String retorna representação em string da comparação
func (t TipoComparacao) String() string {
	switch t {
	case MENOR_QUE:
		return "<"
	case MENOR_IGUAL:
		return "<="
	case MAIOR_QUE:
		return ">"
	case MAIOR_IGUAL:
		return ">="
	case IGUALDADE:
		return "=="
	default:
		return "?"
	}
}

// Comparacao compara duas expressões; não há encadeamento
type Comparacao struct {
	Esquerda Expressao
	Operador TipoComparacao
	Direita  Expressao
	Token    lexer.Token
}

func (*Comparacao) condicao() {}

func (c *Comparacao) String() string {
	return fmt.Sprintf("%s %s %s", c.Esquerda, c.Operador, c.Direita)
}

// Comando representa um statement
type Comando interface {
	comando()
	String() string
}

// Atribuicao representa 'nome = expressao;'
type Atribuicao struct {
	Nome  string
	Valor Expressao
	Token lexer.Token
}

func (*Atribuicao) comando() {}

func (a *Atribuicao) String() string {
	return fmt.Sprintf("%s = %s;", a.Nome, a.Valor)
}

// Bloco representa uma sequência de comandos entre chaves
type Bloco struct {
	Comandos []Comando
	Token    lexer.Token
}

// ComandoSe representa um if/else; o 'else' é obrigatório na linguagem
type ComandoSe struct {
	Condicao   Condicao
	BlocoSe    *Bloco
	BlocoSenao *Bloco
	Token      lexer.Token
}

func (*ComandoSe) comando() {}

func (c *ComandoSe) String() string {
	var b strings.Builder
	escreverComando(&b, c, 0)
	return strings.TrimRight(b.String(), "\n")
}

// ComandoEnquanto representa um while
type ComandoEnquanto struct {
	Condicao Condicao
	Corpo    *Bloco
	Token    lexer.Token
}

func (*ComandoEnquanto) comando() {}

func (c *ComandoEnquanto) String() string {
	var b strings.Builder
	escreverComando(&b, c, 0)
	return strings.TrimRight(b.String(), "\n")
}

// Declaracao é um nome declarado em 'args' ou 'int'
type Declaracao struct {
	Nome  string
	Token lexer.Token
}

// Programa é o resultado completo da análise sintática
type Programa struct {
	Argumentos []Declaracao
	Variaveis  []Declaracao
	Comandos   []Comando
	Retorno    *Identificador
}

// NomesArgumentos retorna os nomes dos argumentos na ordem declarada
func (p *Programa) NomesArgumentos() []string {
	return nomes(p.Argumentos)
}

// NomesVariaveis retorna os nomes das variáveis locais na ordem declarada
func (p *Programa) NomesVariaveis() []string {
	return nomes(p.Variaveis)
}

func nomes(declaracoes []Declaracao) []string {
	out := make([]string, len(declaracoes))
	for i, d := range declaracoes {
		out[i] = d.Nome
	}
	return out
}

// String gera uma forma canônica do código fonte, que analisa de volta
// para a mesma árvore.
func (p *Programa) String() string {
	var b strings.Builder
	b.WriteString("args ")
	b.WriteString(strings.Join(p.NomesArgumentos(), " "))
	b.WriteString(";\nint ")
	b.WriteString(strings.Join(p.NomesVariaveis(), ", "))
	b.WriteString(";\n")
	for _, cmd := range p.Comandos {
		escreverComando(&b, cmd, 0)
	}
	if p.Retorno != nil {
		fmt.Fprintf(&b, "return %s;\n", p.Retorno.Nome)
	}
	return b.String()
}

func escreverComando(b *strings.Builder, cmd Comando, nivel int) {
	recuo := strings.Repeat("    ", nivel)
	switch c := cmd.(type) {
	case *Atribuicao:
		fmt.Fprintf(b, "%s%s\n", recuo, c)
	case *ComandoSe:
		fmt.Fprintf(b, "%sif %s then {\n", recuo, c.Condicao)
		escreverBloco(b, c.BlocoSe, nivel+1)
		fmt.Fprintf(b, "%s} else {\n", recuo)
		escreverBloco(b, c.BlocoSenao, nivel+1)
		fmt.Fprintf(b, "%s}\n", recuo)
	case *ComandoEnquanto:
		fmt.Fprintf(b, "%swhile %s then {\n", recuo, c.Condicao)
		escreverBloco(b, c.Corpo, nivel+1)
		fmt.Fprintf(b, "%s}\n", recuo)
	}
}

func escreverBloco(b *strings.Builder, bloco *Bloco, nivel int) {
	if bloco == nil {
		return
	}
	for _, cmd := range bloco.Comandos {
		escreverComando(b, cmd, nivel)
	}
}
