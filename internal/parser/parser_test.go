package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/khevencolino/Rucomp/internal/lexer"
	"github.com/khevencolino/Rucomp/internal/utils"
)

func analisar(t *testing.T, fonte string) *Programa {
	t.Helper()
	programa, err := NovoParser(lexer.Escanear(fonte)).AnalisarPrograma()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return programa
}

func analisarComErro(t *testing.T, fonte string) error {
	t.Helper()
	_, err := NovoParser(lexer.Escanear(fonte)).AnalisarPrograma()
	if err == nil {
		t.Fatalf("expected error for %q", fonte)
	}
	return err
}

func expressaoAtribuida(t *testing.T, programa *Programa, idx int) Expressao {
	t.Helper()
	atribuicao, ok := programa.Comandos[idx].(*Atribuicao)
	if !ok {
		t.Fatalf("statement %d is %T, want *Atribuicao", idx, programa.Comandos[idx])
	}
	return atribuicao.Valor
}

func TestAnalisarDeclaracoes(t *testing.T) {
	programa := analisar(t, "args a b c; int x, y; return x;")

	if got := strings.Join(programa.NomesArgumentos(), ","); got != "a,b,c" {
		t.Errorf("args: got %q", got)
	}
	if got := strings.Join(programa.NomesVariaveis(), ","); got != "x,y" {
		t.Errorf("vars: got %q", got)
	}
	if len(programa.Comandos) != 0 {
		t.Errorf("expected no statements, got %d", len(programa.Comandos))
	}
	if programa.Retorno.Nome != "x" {
		t.Errorf("return: got %q", programa.Retorno.Nome)
	}
}

func TestAssociatividadeEPrecedencia(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1+2+3", "((1 + 2) + 3)"},
		{"10-3-2", "((10 - 3) - 2)"},
		{"2*3*4", "((2 * 3) * 4)"},
		{"1+2*3", "(1 + (2 * 3))"},
		{"1*2+3", "((1 * 2) + 3)"},
		{"(1+2)*3", "((1 + 2) * 3)"},
		{"10-(3-2)", "(10 - (3 - 2))"},
		{"a-b+c", "((a - b) + c)"},
		{"((a))", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			programa := analisar(t, "args a b c; int r; r = "+tt.expr+"; return r;")
			if got := expressaoAtribuida(t, programa, 0).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAnalisarControleDeFluxo(t *testing.T) {
	fonte := `args n; int r;
r = 1;
while n > 0 then {
    if n == 3 then { r = r * 2; } else { }
    r = r * n;
    n = n - 1;
}
return r;`
	programa := analisar(t, fonte)

	if len(programa.Comandos) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(programa.Comandos))
	}
	enquanto, ok := programa.Comandos[1].(*ComandoEnquanto)
	if !ok {
		t.Fatalf("statement 1 is %T", programa.Comandos[1])
	}
	comparacao, ok := enquanto.Condicao.(*Comparacao)
	if !ok || comparacao.Operador != MAIOR_QUE {
		t.Fatalf("unexpected condition %v", enquanto.Condicao)
	}
	if len(enquanto.Corpo.Comandos) != 3 {
		t.Fatalf("expected 3 statements in body, got %d", len(enquanto.Corpo.Comandos))
	}
	se, ok := enquanto.Corpo.Comandos[0].(*ComandoSe)
	if !ok {
		t.Fatalf("body[0] is %T", enquanto.Corpo.Comandos[0])
	}
	if len(se.BlocoSe.Comandos) != 1 || len(se.BlocoSenao.Comandos) != 0 {
		t.Errorf("unexpected if blocks: then=%d else=%d", len(se.BlocoSe.Comandos), len(se.BlocoSenao.Comandos))
	}
}

func TestAnalisarComparacoes(t *testing.T) {
	tests := []struct {
		op   string
		want TipoComparacao
	}{
		{"<", MENOR_QUE},
		{"<=", MENOR_IGUAL},
		{">", MAIOR_QUE},
		{">=", MAIOR_IGUAL},
		{"==", IGUALDADE},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			programa := analisar(t, "args a; int b; while a "+tt.op+" b+1 then { } return b;")
			c := programa.Comandos[0].(*ComandoEnquanto).Condicao.(*Comparacao)
			if c.Operador != tt.want {
				t.Errorf("got %v, want %v", c.Operador, tt.want)
			}
			if c.Direita.String() != "(b + 1)" {
				t.Errorf("right side: got %s", c.Direita)
			}
		})
	}
}

func TestAnalisarLiterais(t *testing.T) {
	programa := analisar(t, "args a; int b; if true then { } else { } while false then { } return b;")
	if l := programa.Comandos[0].(*ComandoSe).Condicao.(*Literal); !l.Valor {
		t.Error("expected true")
	}
	if l := programa.Comandos[1].(*ComandoEnquanto).Condicao.(*Literal); l.Valor {
		t.Error("expected false")
	}
}

func TestAnaliseDeterministica(t *testing.T) {
	fonte := `args x y; int t, u;
t = (x + y) * 2 - 1;
if x >= y then { u = x; } else { while u < y then { u = u + 1; } }
return u;`
	tokens := lexer.Escanear(fonte)

	primeiro, err := NovoParser(tokens).AnalisarPrograma()
	if err != nil {
		t.Fatal(err)
	}
	segundo, err := NovoParser(tokens).AnalisarPrograma()
	if err != nil {
		t.Fatal(err)
	}
	if primeiro.String() != segundo.String() {
		t.Fatalf("parsing is not deterministic:\n%s\n---\n%s", primeiro, segundo)
	}

	// a forma canônica analisa de volta para a mesma árvore
	terceiro := analisar(t, primeiro.String())
	if terceiro.String() != primeiro.String() {
		t.Fatalf("canonical form does not round-trip:\n%s\n---\n%s", primeiro, terceiro)
	}
}

func TestErrosDeAnalise(t *testing.T) {
	tests := []struct {
		name   string
		fonte  string
		tipo   error
		trecho string
	}{
		{"sem args", "int a; return a;", utils.ErrSintatico, "args"},
		{"args vazio", "args ; int a; return a;", utils.ErrSintatico, "identificador"},
		{"sem int", "args a; return a;", utils.ErrSintatico, "INT"},
		{"int sem virgula", "args a; int b c; return b;", utils.ErrSintatico, "declaração"},
		{"palavra reservada", "args while; int a; return a;", utils.ErrSintatico, "reservada"},
		{"sem return", "args a; int b; b = a;", utils.ErrEstrutural, "return"},
		{"return sem ponto e virgula", "args a; int b; return b", utils.ErrSintatico, "SEMICOLON"},
		{"chave nao fechada", "args a; int b; while a > 0 then { a = a - 1; return b;", utils.ErrEstrutural, "bloco"},
		{"parentese nao fechado", "args a; int b; b = (a + 1; return b;", utils.ErrEstrutural, "parêntese"},
		{"comparacao ausente", "args a; int b; if a then { } else { } return b;", utils.ErrEstrutural, "comparação"},
		{"comparacao encadeada", "args a; int b; if a < b < 1 then { } else { } return b;", utils.ErrSintatico, "THEN"},
		{"if sem else", "args a; int b; if a < 1 then { } return b;", utils.ErrSintatico, "ELSE"},
		{"caractere invalido", "args a; int b; b = a $ 1; return b;", utils.ErrLexico, "$"},
		{"caractere invalido no inicio", "# args a;", utils.ErrLexico, "#"},
		{"literal enorme", "args a; int b; b = 99999999999999999999; return b;", utils.ErrLexico, "64 bits"},
		{"tokens apos return", "args a; int b; return b; b = 1;", utils.ErrSintatico, "após o return"},
		{"fator invalido", "args a; int b; b = *; return b;", utils.ErrSintatico, "expressão"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := analisarComErro(t, tt.fonte)
			if !errors.Is(err, tt.tipo) {
				t.Fatalf("got %v, want kind %v", err, tt.tipo)
			}
			if !strings.Contains(err.Error(), tt.trecho) {
				t.Errorf("error %q does not mention %q", err, tt.trecho)
			}
		})
	}
}

func TestErroCarregaPosicao(t *testing.T) {
	err := analisarComErro(t, "args a;\nint b;\nb = a +;\nreturn b;")
	var ce *utils.CompilerError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompilerError, got %T", err)
	}
	if ce.Linha != 3 || ce.Coluna != 8 {
		t.Errorf("got %d:%d, want 3:8", ce.Linha, ce.Coluna)
	}
}

func TestVisualizador(t *testing.T) {
	programa := analisar(t, "args a; int b; b = a * 2 + 1; if b > 3 then { b = 1; } else { b = 0; } return b;")
	desenho := NovoVisualizador().ImprimirArvore(programa)
	for _, trecho := range []string{"programa", "args a", "int b", "return b", "if", "then", "else", "*", "+"} {
		if !strings.Contains(desenho, trecho) {
			t.Errorf("drawing missing %q:\n%s", trecho, desenho)
		}
	}

	expr := expressaoAtribuida(t, programa, 0)
	if arvore := NovoVisualizador().CriarArvore(expr).String(); !strings.Contains(arvore, "+") {
		t.Errorf("expression tree missing root operator:\n%s", arvore)
	}
}
