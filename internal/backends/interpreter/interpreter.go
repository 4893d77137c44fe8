package interpreter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/khevencolino/Rucomp/internal/backends/assembly/x86_64"
	"github.com/khevencolino/Rucomp/internal/debug"
	"github.com/khevencolino/Rucomp/internal/parser"
	"github.com/khevencolino/Rucomp/internal/utils"
)

// PassosMaximosPadrao limita comandos executados quando nada é configurado
const PassosMaximosPadrao = 1_000_000

// ErrLimitePassos indica que o programa não terminou dentro do limite
var ErrLimitePassos = errors.New("limite de passos excedido")

// InterpreterBackend executa a AST diretamente, com a mesma aritmética de
// 64 bits (com estouro circular) do código nativo.
type InterpreterBackend struct {
	argumentos    []int64
	passosMaximos int
}

func NewInterpreterBackend(argumentos []int64, passosMaximos int) *InterpreterBackend {
	if passosMaximos <= 0 {
		passosMaximos = PassosMaximosPadrao
	}
	return &InterpreterBackend{
		argumentos:    argumentos,
		passosMaximos: passosMaximos,
	}
}

func (i *InterpreterBackend) GetName() string      { return "Interpretador AST" }
func (i *InterpreterBackend) GetExtension() string { return "" }

// Compile executa o programa com os argumentos configurados e devolve o
// resultado como texto.
func (i *InterpreterBackend) Compile(programa *parser.Programa) (string, error) {
	resultado, err := i.Executar(programa, i.argumentos)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(resultado, 10) + "\n", nil
}

// Executar roda o programa; argumentos vão para os 'args' na ordem
// declarada e variáveis locais começam em zero.
func (i *InterpreterBackend) Executar(programa *parser.Programa, argumentos []int64) (int64, error) {
	debug.Printf("Interpretando diretamente da AST...\n")

	if len(programa.Argumentos) > x86_64.MaxArgumentos {
		excedente := programa.Argumentos[x86_64.MaxArgumentos].Token
		return 0, utils.NovoErro(utils.ErroArgumentosDemais, "argumentos demais",
			excedente.Position.Line, excedente.Position.Column,
			fmt.Sprintf("%d declarados, máximo de %d registradores", len(programa.Argumentos), x86_64.MaxArgumentos))
	}
	if len(argumentos) != len(programa.Argumentos) {
		return 0, fmt.Errorf("programa espera %d argumentos, recebeu %d", len(programa.Argumentos), len(argumentos))
	}

	e := &execucao{
		variaveis:     make(map[string]int64),
		passosMaximos: i.passosMaximos,
	}
	for idx, arg := range programa.Argumentos {
		e.variaveis[arg.Nome] = argumentos[idx]
	}
	for _, v := range programa.Variaveis {
		if _, existe := e.variaveis[v.Nome]; existe {
			return 0, utils.NovoErro(utils.ErroEstrutural, "declaração duplicada",
				v.Token.Position.Line, v.Token.Position.Column, v.Nome)
		}
		e.variaveis[v.Nome] = 0
	}

	if err := e.executarComandos(programa.Comandos); err != nil {
		return 0, err
	}

	if programa.Retorno == nil {
		return 0, utils.NovoErro(utils.ErroEstrutural, "return ausente no fim do programa", 0, 0, "")
	}
	if err := programa.Retorno.Aceitar(e); err != nil {
		return 0, err
	}

	debug.Log("interpretação concluída", "resultado", e.acumulador, "passos", e.passos)
	return e.acumulador, nil
}

// execucao guarda o estado de uma única execução; o acumulador faz o
// papel de %rax.
type execucao struct {
	variaveis     map[string]int64
	acumulador    int64
	passos        int
	passosMaximos int
}

func (e *execucao) executarComandos(comandos []parser.Comando) error {
	for _, comando := range comandos {
		if err := e.executarComando(comando); err != nil {
			return err
		}
	}
	return nil
}

func (e *execucao) executarBloco(bloco *parser.Bloco) error {
	if bloco == nil {
		return nil
	}
	return e.executarComandos(bloco.Comandos)
}

func (e *execucao) executarComando(comando parser.Comando) error {
	e.passos++
	if e.passos > e.passosMaximos {
		return fmt.Errorf("%w: %d", ErrLimitePassos, e.passosMaximos)
	}

	switch cmd := comando.(type) {
	case *parser.Atribuicao:
		if _, ok := e.variaveis[cmd.Nome]; !ok {
			return naoDeclarado(cmd.Nome, cmd.Token.Position.Line, cmd.Token.Position.Column)
		}
		if err := cmd.Valor.Aceitar(e); err != nil {
			return err
		}
		e.variaveis[cmd.Nome] = e.acumulador
		return nil

	case *parser.ComandoSe:
		verdadeiro, err := e.avaliarCondicao(cmd.Condicao)
		if err != nil {
			return err
		}
		if verdadeiro {
			return e.executarBloco(cmd.BlocoSe)
		}
		return e.executarBloco(cmd.BlocoSenao)

	case *parser.ComandoEnquanto:
		for {
			verdadeiro, err := e.avaliarCondicao(cmd.Condicao)
			if err != nil {
				return err
			}
			if !verdadeiro {
				return nil
			}
			if err := e.executarBloco(cmd.Corpo); err != nil {
				return err
			}
			// um corpo vazio ainda consome passos
			e.passos++
			if e.passos > e.passosMaximos {
				return fmt.Errorf("%w: %d", ErrLimitePassos, e.passosMaximos)
			}
		}

	default:
		return fmt.Errorf("comando desconhecido %T", comando)
	}
}

func (e *execucao) avaliarCondicao(condicao parser.Condicao) (bool, error) {
	switch c := condicao.(type) {
	case *parser.Literal:
		return c.Valor, nil

	case *parser.Comparacao:
		if err := c.Esquerda.Aceitar(e); err != nil {
			return false, err
		}
		esquerda := e.acumulador
		if err := c.Direita.Aceitar(e); err != nil {
			return false, err
		}
		direita := e.acumulador

		switch c.Operador {
		case parser.MENOR_QUE:
			return esquerda < direita, nil
		case parser.MENOR_IGUAL:
			return esquerda <= direita, nil
		case parser.MAIOR_QUE:
			return esquerda > direita, nil
		case parser.MAIOR_IGUAL:
			return esquerda >= direita, nil
		case parser.IGUALDADE:
			return esquerda == direita, nil
		}
		return false, fmt.Errorf("operador de comparação desconhecido %v", c.Operador)

	default:
		return false, fmt.Errorf("condição desconhecida %T", condicao)
	}
}

// Implementa interface Visitante

func (e *execucao) Numero(numero *parser.Numero) error {
	valor, err := strconv.ParseUint(numero.Valor, 10, 64)
	if err != nil {
		return utils.NovoErro(utils.ErroLexico, "literal numérico fora do intervalo de 64 bits",
			numero.Token.Position.Line, numero.Token.Position.Column, numero.Valor)
	}
	e.acumulador = int64(valor)
	return nil
}

func (e *execucao) Identificador(identificador *parser.Identificador) error {
	valor, ok := e.variaveis[identificador.Nome]
	if !ok {
		return naoDeclarado(identificador.Nome, identificador.Token.Position.Line, identificador.Token.Position.Column)
	}
	e.acumulador = valor
	return nil
}

func (e *execucao) OperacaoBinaria(operacao *parser.OperacaoBinaria) error {
	if err := operacao.OperandoEsquerdo.Aceitar(e); err != nil {
		return err
	}
	esquerdo := e.acumulador

	if err := operacao.OperandoDireito.Aceitar(e); err != nil {
		return err
	}
	direito := e.acumulador

	switch operacao.Operador {
	case parser.ADICAO:
		e.acumulador = esquerdo + direito
	case parser.SUBTRACAO:
		e.acumulador = esquerdo - direito
	case parser.MULTIPLICACAO:
		e.acumulador = esquerdo * direito
	default:
		return utils.NovoErro(utils.ErroEstrutural, "operador desconhecido",
			operacao.Token.Position.Line, operacao.Token.Position.Column, "")
	}
	return nil
}

func naoDeclarado(nome string, linha, coluna int) error {
	return utils.NovoErro(utils.ErroIdentificadorNaoDeclarado,
		fmt.Sprintf("'%s' não foi declarado", nome), linha, coluna, "")
}
