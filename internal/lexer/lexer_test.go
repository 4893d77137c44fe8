package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/khevencolino/Rucomp/internal/utils"
)

func tipos(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizarOperadores(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{"menor", "<", []TokenType{LESS, EOF}},
		{"menor igual", "<=", []TokenType{LESS_EQUAL, EOF}},
		{"maior", ">", []TokenType{GREATER, EOF}},
		{"maior igual", ">=", []TokenType{GREATER_EQUAL, EOF}},
		{"atribuicao", "=", []TokenType{ASSIGN, EOF}},
		{"igualdade", "==", []TokenType{EQUAL, EOF}},
		{"igualdade seguida de atribuicao", "===", []TokenType{EQUAL, ASSIGN, EOF}},
		{"separados por espaco", "< =", []TokenType{LESS, ASSIGN, EOF}},
		{"pontuacao", ";,{}()+-*", []TokenType{SEMICOLON, COMMA, LBRACE, RBRACE, LPAREN, RPAREN, PLUS, MINUS, MULTIPLY, EOF}},
		{"vazio", "", []TokenType{EOF}},
		{"so espacos", " \t\n\r ", []TokenType{EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tipos(Escanear(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTokenizarPalavrasChave(t *testing.T) {
	input := "args int if then else while true false return argsx _if If"
	want := []TokenType{ARGS, INT, IF, THEN, ELSE, WHILE, TRUE, FALSE, RETURN, IDENTIFIER, IDENTIFIER, IDENTIFIER, EOF}

	tokens := Escanear(input)
	got := tipos(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d (%q): got %v, want %v", i, tokens[i].Value, got[i], want[i])
		}
	}
}

func TestTokenizarNumerosEIdentificadores(t *testing.T) {
	tokens := Escanear("x1 = 0042*_tmp9")
	want := []Token{
		{Type: IDENTIFIER, Value: "x1"},
		{Type: ASSIGN, Value: "="},
		{Type: NUMBER, Value: "0042"},
		{Type: MULTIPLY, Value: "*"},
		{Type: IDENTIFIER, Value: "_tmp9"},
		{Type: EOF, Value: ""},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i := range want {
		if tokens[i].Type != want[i].Type || tokens[i].Value != want[i].Value {
			t.Errorf("token %d: got %s, want %s(%q)", i, tokens[i], want[i].Type, want[i].Value)
		}
	}
}

func TestNumeroSeguidoDeLetras(t *testing.T) {
	got := tipos(Escanear("12ab"))
	want := []TokenType{NUMBER, IDENTIFIER, EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestPosicoes(t *testing.T) {
	tokens := Escanear("args a;\n  int b;")
	cases := []struct {
		idx    int
		linha  int
		coluna int
	}{
		{0, 1, 1}, // args
		{1, 1, 6}, // a
		{2, 1, 7}, // ;
		{3, 2, 3}, // int
		{4, 2, 7}, // b
	}
	for _, c := range cases {
		pos := tokens[c.idx].Position
		if pos.Line != c.linha || pos.Column != c.coluna {
			t.Errorf("token %d (%s): got %d:%d, want %d:%d", c.idx, tokens[c.idx].Value, pos.Line, pos.Column, c.linha, c.coluna)
		}
	}
}

func TestCaractereInvalidoNaoInterrompe(t *testing.T) {
	tokens, err := NovoLexer("a $ b ç").Tokenizar()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := tipos(tokens)
	want := []TokenType{IDENTIFIER, INVALID, IDENTIFIER, INVALID, EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if tokens[3].Value != "ç" {
		t.Errorf("invalid token should carry the whole rune, got %q", tokens[3].Value)
	}
}

func TestModoEstrito(t *testing.T) {
	l := NovoLexer("args a;\n int b @;")
	l.Estrito = true

	_, err := l.Tokenizar()
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
	if !errors.Is(err, utils.ErrLexico) {
		t.Fatalf("expected lexical error, got %v", err)
	}
	var ce *utils.CompilerError
	if !errors.As(err, &ce) || ce.Linha != 2 || ce.Coluna != 8 {
		t.Fatalf("unexpected position in %v", err)
	}
}

func TestImprimirTokens(t *testing.T) {
	saida := ImprimirTokens(Escanear("x = 1;"))
	for _, trecho := range []string{"TIPO", "IDENTIFIER", "NUMBER", "SEMICOLON"} {
		if !strings.Contains(saida, trecho) {
			t.Errorf("output missing %q:\n%s", trecho, saida)
		}
	}
	if strings.Contains(saida, "EOF") {
		t.Errorf("EOF should not be printed:\n%s", saida)
	}
}

func TestDestacar(t *testing.T) {
	fonte := "args a;\nint b;\nb = a $ 1;\n"
	got := NovaPosicao(3, 7, 0).Destacar(fonte)
	want := "   3 | b = a $ 1;\n     |       ^\n"
	if got != want {
		t.Fatalf("got\n%q\nwant\n%q", got, want)
	}

	if NovaPosicao(9, 1, 0).Destacar(fonte) != "" {
		t.Error("line past the end should render nothing")
	}
	if NovaPosicao(0, 0, 0).Destacar(fonte) != "" {
		t.Error("zero position should render nothing")
	}
}
