package parser

import (
	"fmt"
	"strings"

	"github.com/m1gwings/treedrawer/tree"
)

// VisualizadorArvore cria representações visuais da AST
type VisualizadorArvore struct{}

// NovoVisualizador cria um novo visualizador
func NovoVisualizador() *VisualizadorArvore {
	return &VisualizadorArvore{}
}

// CriarArvorePrograma converte o programa inteiro para o formato do treedrawer
func (v *VisualizadorArvore) CriarArvorePrograma(programa *Programa) *tree.Tree {
	arvore := tree.NewTree(tree.NodeString("programa"))

	arvore.AddChild(tree.NodeString("args " + strings.Join(programa.NomesArgumentos(), " ")))
	arvore.AddChild(tree.NodeString("int " + strings.Join(programa.NomesVariaveis(), ", ")))

	if len(programa.Comandos) > 0 {
		comandos := arvore.AddChild(tree.NodeString("comandos"))
		v.adicionarComandos(comandos, programa.Comandos)
	}

	if programa.Retorno != nil {
		arvore.AddChild(tree.NodeString("return " + programa.Retorno.Nome))
	}

	return arvore
}

// CriarArvore converte uma expressão para o formato do treedrawer
func (v *VisualizadorArvore) CriarArvore(expressao Expressao) *tree.Tree {
	switch expr := expressao.(type) {
	case *OperacaoBinaria:
		// Operador como raiz e operandos como filhos
		arvore := tree.NewTree(tree.NodeString(expr.Operador.String()))
		v.adicionarExpressao(arvore, expr.OperandoEsquerdo)
		v.adicionarExpressao(arvore, expr.OperandoDireito)
		return arvore

	case nil:
		return tree.NewTree(tree.NodeString("?"))

	default:
		// Folha da árvore: número ou identificador
		return tree.NewTree(tree.NodeString(expr.String()))
	}
}

// ImprimirArvore devolve o desenho do programa pronto para o console
func (v *VisualizadorArvore) ImprimirArvore(programa *Programa) string {
	return fmt.Sprintf("=== Árvore Sintática ===\n%s\n", v.CriarArvorePrograma(programa))
}

// adicionarComandos pendura cada comando como filho de pai
func (v *VisualizadorArvore) adicionarComandos(pai *tree.Tree, comandos []Comando) {
	for _, comando := range comandos {
		switch c := comando.(type) {
		case *Atribuicao:
			no := pai.AddChild(tree.NodeString(c.Nome + " ="))
			v.adicionarExpressao(no, c.Valor)

		case *ComandoSe:
			no := pai.AddChild(tree.NodeString("if"))
			v.adicionarCondicao(no, c.Condicao)
			entao := no.AddChild(tree.NodeString("then"))
			v.adicionarComandos(entao, c.BlocoSe.Comandos)
			senao := no.AddChild(tree.NodeString("else"))
			v.adicionarComandos(senao, c.BlocoSenao.Comandos)

		case *ComandoEnquanto:
			no := pai.AddChild(tree.NodeString("while"))
			v.adicionarCondicao(no, c.Condicao)
			corpo := no.AddChild(tree.NodeString("corpo"))
			v.adicionarComandos(corpo, c.Corpo.Comandos)
		}
	}
}

// adicionarCondicao pendura a condição como filho de pai
func (v *VisualizadorArvore) adicionarCondicao(pai *tree.Tree, condicao Condicao) {
	switch c := condicao.(type) {
	case *Literal:
		pai.AddChild(tree.NodeString(c.String()))
	case *Comparacao:
		no := pai.AddChild(tree.NodeString(c.Operador.String()))
		v.adicionarExpressao(no, c.Esquerda)
		v.adicionarExpressao(no, c.Direita)
	}
}

// adicionarExpressao pendura a subárvore da expressão como filho de pai
func (v *VisualizadorArvore) adicionarExpressao(pai *tree.Tree, expressao Expressao) {
	switch expr := expressao.(type) {
	case *OperacaoBinaria:
		no := pai.AddChild(tree.NodeString(expr.Operador.String()))
		v.adicionarExpressao(no, expr.OperandoEsquerdo)
		v.adicionarExpressao(no, expr.OperandoDireito)
	default:
		pai.AddChild(tree.NodeString(expr.String()))
	}
}
