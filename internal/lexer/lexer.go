package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/khevencolino/Rucomp/internal/utils"
)

// Padrões para sequências de tamanho variável; os operadores são
// reconhecidos caractere a caractere com um de lookahead.
var (
	padraoNumero        = regexp.MustCompile(`^[0-9]+`)
	padraoIdentificador = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	padraoEspacos       = regexp.MustCompile(`^\s+`)
)

// simbolosSimples mapeia pontuação de um caractere para o tipo de token
var simbolosSimples = map[byte]TokenType{
	';': SEMICOLON,
	',': COMMA,
	'{': LBRACE,
	'}': RBRACE,
	'(': LPAREN,
	')': RPAREN,
	'+': PLUS,
	'-': MINUS,
	'*': MULTIPLY,
}

// Lexer representa o analisador léxico
type Lexer struct {
	entrada string // Código fonte de entrada
	posicao int    // Posição atual no código
	linha   int    // Linha atual
	coluna  int    // Coluna atual

	// Estrito faz o lexer falhar no primeiro caractere inválido em vez de
	// emitir um token INVALID para o parser.
	Estrito bool
}

// NovoLexer cria um novo analisador léxico
func NovoLexer(entrada string) *Lexer {
	return &Lexer{
		entrada: entrada,
		linha:   1,
		coluna:  1,
	}
}

// Tokenizar converte a entrada em uma lista de tokens terminada por EOF.
// Só retorna erro no modo estrito.
func (l *Lexer) Tokenizar() ([]Token, error) {
	var tokens []Token

	for {
		l.pularEspacos()

		token := l.proximoToken()
		if token.Type == INVALID && l.Estrito {
			return nil, utils.NovoErro(
				utils.ErroLexico,
				"caractere inválido",
				token.Position.Line,
				token.Position.Column,
				fmt.Sprintf("'%s'", token.Value),
			)
		}

		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// proximoToken encontra o próximo token a partir da posição atual
func (l *Lexer) proximoToken() Token {
	posicaoAtual := l.obterPosicaoAtual()
	if !l.temMais() {
		return NovoToken(EOF, "", posicaoAtual)
	}

	restante := l.entrada[l.posicao:]

	if match := padraoNumero.FindString(restante); match != "" {
		l.avancar(len(match))
		return NovoToken(NUMBER, match, posicaoAtual)
	}

	if match := padraoIdentificador.FindString(restante); match != "" {
		l.avancar(len(match))
		if tipo, ok := palavrasChave[match]; ok {
			return NovoToken(tipo, match, posicaoAtual)
		}
		return NovoToken(IDENTIFIER, match, posicaoAtual)
	}

	atual := l.espiar()
	switch atual {
	case '<':
		return l.operadorComIgual(LESS, LESS_EQUAL, posicaoAtual)
	case '>':
		return l.operadorComIgual(GREATER, GREATER_EQUAL, posicaoAtual)
	case '=':
		return l.operadorComIgual(ASSIGN, EQUAL, posicaoAtual)
	}

	if tipo, ok := simbolosSimples[atual]; ok {
		l.avancar(1)
		return NovoToken(tipo, string(atual), posicaoAtual)
	}

	// Caractere inválido: consome a runa inteira para não partir UTF-8
	_, tamanho := utf8.DecodeRuneInString(restante)
	invalido := restante[:tamanho]
	l.avancar(tamanho)
	return NovoToken(INVALID, invalido, posicaoAtual)
}

// operadorComIgual decide entre a forma simples e a forma seguida de '='
func (l *Lexer) operadorComIgual(simples, composto TokenType, posicao Position) Token {
	primeiro := l.entrada[l.posicao : l.posicao+1]
	l.avancar(1)
	if l.espiar() == '=' {
		l.avancar(1)
		return NovoToken(composto, primeiro+"=", posicao)
	}
	return NovoToken(simples, primeiro, posicao)
}

// pularEspacos consome espaços em branco entre tokens
func (l *Lexer) pularEspacos() {
	if match := padraoEspacos.FindString(l.entrada[l.posicao:]); match != "" {
		l.avancar(len(match))
	}
}

// obterPosicaoAtual retorna a posição atual no código fonte
func (l *Lexer) obterPosicaoAtual() Position {
	return NovaPosicao(l.linha, l.coluna, l.posicao)
}

// avancar move a posição do lexer para frente
func (l *Lexer) avancar(comprimento int) {
	for i := 0; i < comprimento; i++ {
		if l.posicao < len(l.entrada) {
			if l.entrada[l.posicao] == '\n' {
				l.linha++
				l.coluna = 1
			} else {
				l.coluna++
			}
			l.posicao++
		}
	}
}

// espiar retorna o caractere atual sem avançar
func (l *Lexer) espiar() byte {
	if l.posicao >= len(l.entrada) {
		return 0
	}
	return l.entrada[l.posicao]
}

// temMais verifica se há mais caracteres para processar
func (l *Lexer) temMais() bool {
	return l.posicao < len(l.entrada)
}

// Escanear tokeniza a fonte no modo padrão, em que caracteres inválidos
// viram tokens INVALID.
func Escanear(fonte string) []Token {
	tokens, _ := NovoLexer(fonte).Tokenizar()
	return tokens
}

// ImprimirTokens imprime todos os tokens de forma formatada
func ImprimirTokens(tokens []Token) string {
	var saida strings.Builder
	fmt.Fprintf(&saida, "%-14s %-15s %-20s\n", "TIPO", "VALOR", "POSIÇÃO")
	saida.WriteString(strings.Repeat("-", 50))
	saida.WriteString("\n")

	for _, token := range tokens {
		if token.Type != EOF {
			fmt.Fprintf(&saida, "%-14s %-15s %-20s\n", token.Type, token.Value, token.Position)
		}
	}
	return saida.String()
}
