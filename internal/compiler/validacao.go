package compiler

import (
	"fmt"

	"github.com/khevencolino/Rucomp/internal/backends/assembly/x86_64"
	"github.com/khevencolino/Rucomp/internal/lexer"
	"github.com/khevencolino/Rucomp/internal/parser"
	"github.com/khevencolino/Rucomp/internal/utils"
)

// Validador confere a AST antes da geração de código
type Validador struct {
	declarados map[string]lexer.Token
}

func NovoValidador() *Validador {
	return &Validador{declarados: make(map[string]lexer.Token)}
}

// Validar checa, nesta ordem, o limite de argumentos, declarações
// duplicadas e identificadores não declarados.
func (v *Validador) Validar(programa *parser.Programa) error {
	v.declarados = make(map[string]lexer.Token)

	if len(programa.Argumentos) > x86_64.MaxArgumentos {
		excedente := programa.Argumentos[x86_64.MaxArgumentos].Token
		return utils.NovoErro(utils.ErroArgumentosDemais, "argumentos demais",
			excedente.Position.Line, excedente.Position.Column,
			fmt.Sprintf("%d declarados, máximo de %d", len(programa.Argumentos), x86_64.MaxArgumentos))
	}

	declaracoes := append(append([]parser.Declaracao{}, programa.Argumentos...), programa.Variaveis...)
	for _, d := range declaracoes {
		if anterior, existe := v.declarados[d.Nome]; existe {
			return utils.NovoErro(utils.ErroEstrutural, "declaração duplicada",
				d.Token.Position.Line, d.Token.Position.Column,
				fmt.Sprintf("'%s' já declarado em %s", d.Nome, anterior.Position))
		}
		v.declarados[d.Nome] = d.Token
	}

	if err := v.validarComandos(programa.Comandos); err != nil {
		return err
	}

	if programa.Retorno == nil {
		return utils.NovoErro(utils.ErroEstrutural, "return ausente no fim do programa", 0, 0, "")
	}
	return v.usar(programa.Retorno.Nome, programa.Retorno.Token)
}

func (v *Validador) validarComandos(comandos []parser.Comando) error {
	for _, comando := range comandos {
		switch c := comando.(type) {
		case *parser.Atribuicao:
			if err := v.usar(c.Nome, c.Token); err != nil {
				return err
			}
			if err := v.validarExpressao(c.Valor); err != nil {
				return err
			}

		case *parser.ComandoSe:
			if err := v.validarCondicao(c.Condicao); err != nil {
				return err
			}
			if err := v.validarBloco(c.BlocoSe); err != nil {
				return err
			}
			if err := v.validarBloco(c.BlocoSenao); err != nil {
				return err
			}

		case *parser.ComandoEnquanto:
			if err := v.validarCondicao(c.Condicao); err != nil {
				return err
			}
			if err := v.validarBloco(c.Corpo); err != nil {
				return err
			}

		default:
			return fmt.Errorf("comando desconhecido %T", comando)
		}
	}
	return nil
}

func (v *Validador) validarBloco(bloco *parser.Bloco) error {
	if bloco == nil {
		return nil
	}
	return v.validarComandos(bloco.Comandos)
}

func (v *Validador) validarCondicao(condicao parser.Condicao) error {
	if c, ok := condicao.(*parser.Comparacao); ok {
		if err := v.validarExpressao(c.Esquerda); err != nil {
			return err
		}
		return v.validarExpressao(c.Direita)
	}
	return nil
}

func (v *Validador) validarExpressao(expressao parser.Expressao) error {
	switch e := expressao.(type) {
	case *parser.Numero:
		return nil
	case *parser.Identificador:
		return v.usar(e.Nome, e.Token)
	case *parser.OperacaoBinaria:
		if err := v.validarExpressao(e.OperandoEsquerdo); err != nil {
			return err
		}
		return v.validarExpressao(e.OperandoDireito)
	default:
		return fmt.Errorf("expressão desconhecida %T", expressao)
	}
}

func (v *Validador) usar(nome string, token lexer.Token) error {
	if _, ok := v.declarados[nome]; !ok {
		return utils.NovoErro(utils.ErroIdentificadorNaoDeclarado,
			fmt.Sprintf("'%s' não foi declarado", nome),
			token.Position.Line, token.Position.Column, "")
	}
	return nil
}
