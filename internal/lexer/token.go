package lexer

import "fmt"

// TokenType representa o tipo de token
type TokenType int

const (
	// Valores
	IDENTIFIER TokenType = iota // Identificadores
	NUMBER                      // Números

	// Aritmética e parênteses
	PLUS     // Operador de adição (+)
	MINUS    // Operador de subtração (-)
	MULTIPLY // Operador de multiplicação (*)
	LPAREN   // Parêntese esquerdo (()
	RPAREN   // Parêntese direito ())

	// Pontuação
	SEMICOLON // Ponto e vírgula (;)
	ASSIGN    // Atribuição (=)
	COMMA     // Vírgula (,)
	LBRACE    // Chave esquerda ({)
	RBRACE    // Chave direita (})

	// Comparações
	LESS          // Menor que (<)
	LESS_EQUAL    // Menor ou igual (<=)
	GREATER       // Maior que (>)
	GREATER_EQUAL // Maior ou igual (>=)
	EQUAL         // Igualdade (==)

	// Palavras-chave
	ARGS   // args
	INT    // int
	IF     // if
	THEN   // then
	ELSE   // else
	WHILE  // while
	TRUE   // true
	FALSE  // false
	RETURN // return

	EOF     // Fim do arquivo
	INVALID // Token inválido
)

var nomesTokens = map[TokenType]string{
	IDENTIFIER:    "IDENTIFIER",
	NUMBER:        "NUMBER",
	PLUS:          "PLUS",
	MINUS:         "MINUS",
	MULTIPLY:      "MULTIPLY",
	LPAREN:        "LPAREN",
	RPAREN:        "RPAREN",
	SEMICOLON:     "SEMICOLON",
	ASSIGN:        "ASSIGN",
	COMMA:         "COMMA",
	LBRACE:        "LBRACE",
	RBRACE:        "RBRACE",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	EQUAL:         "EQUAL",
	ARGS:          "ARGS",
	INT:           "INT",
	IF:            "IF",
	THEN:          "THEN",
	ELSE:          "ELSE",
	WHILE:         "WHILE",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	RETURN:        "RETURN",
	EOF:           "EOF",
	INVALID:       "INVALID",
}

// String retorna uma representação em string do tipo de token
func (t TokenType) String() string {
	if nome, ok := nomesTokens[t]; ok {
		return nome
	}
	return "UNKNOWN"
}

// palavrasChave mapeia o texto reservado para o tipo de token
var palavrasChave = map[string]TokenType{
	"args":   ARGS,
	"int":    INT,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"while":  WHILE,
	"true":   TRUE,
	"false":  FALSE,
	"return": RETURN,
}

// Token representa um token encontrado no código fonte
type Token struct {
	Type     TokenType // Tipo do token
	Value    string    // Valor do token
	Position Position  // Posição no código fonte
}

// String retorna uma representação em string do token
func (t Token) String() string {
	return fmt.Sprintf("%s('%s') em %s", t.Type, t.Value, t.Position)
}

// NovoToken cria um novo token
func NovoToken(tipoToken TokenType, valor string, posicao Position) Token {
	return Token{
		Type:     tipoToken,
		Value:    valor,
		Position: posicao,
	}
}

// EComparacao verifica se o token é um operador de comparação
func (t Token) EComparacao() bool {
	switch t.Type {
	case LESS, LESS_EQUAL, GREATER, GREATER_EQUAL, EQUAL:
		return true
	}
	return false
}

// EInicioComando verifica se o token pode iniciar um comando
func (t Token) EInicioComando() bool {
	return t.Type == IDENTIFIER || t.Type == IF || t.Type == WHILE
}

// EPalavraChave verifica se o token é uma palavra reservada
func (t Token) EPalavraChave() bool {
	return t.Type >= ARGS && t.Type <= RETURN
}
