package x86_64

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/khevencolino/Rucomp/internal/debug"
	"github.com/khevencolino/Rucomp/internal/parser"
	"github.com/khevencolino/Rucomp/internal/utils"
)

// Convenção System V: argumentos inteiros em rdi, rsi, rdx, rcx, r8, r9
var registradoresArgumentos = [...]string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"}

// MaxArgumentos é o número de argumentos que cabem nos registradores
const MaxArgumentos = len(registradoresArgumentos)

const (
	tamanhoSlot      = 8
	alinhamentoPilha = 16
)

type X86_64Backend struct {
	nomeFuncao string
}

func NewX86_64Backend(nomeFuncao string) *X86_64Backend {
	return &X86_64Backend{nomeFuncao: nomeFuncao}
}

func (a *X86_64Backend) GetName() string      { return "Assembly x86-64" }
func (a *X86_64Backend) GetExtension() string { return ".s" }

// Compile gera uma função completa em sintaxe AT&T. Em caso de erro nenhum
// texto parcial é devolvido.
func (a *X86_64Backend) Compile(programa *parser.Programa) (string, error) {
	debug.Printf("Compilando para Assembly x86-64...\n")

	if len(programa.Argumentos) > MaxArgumentos {
		excedente := programa.Argumentos[MaxArgumentos].Token
		return "", utils.NovoErro(
			utils.ErroArgumentosDemais,
			"argumentos demais",
			excedente.Position.Line,
			excedente.Position.Column,
			fmt.Sprintf("%d declarados, máximo de %d registradores", len(programa.Argumentos), MaxArgumentos),
		)
	}

	ctx := novoContexto()
	if err := ctx.alocarSlots(programa); err != nil {
		return "", err
	}
	tamanhoFrame := TamanhoFrame(len(ctx.slots))
	debug.Log("frame alocado", "slots", len(ctx.slots), "bytes", tamanhoFrame)

	ctx.gerarPrologo(a.nomeFuncao, tamanhoFrame)

	// Guarda os registradores de entrada nos slots dos argumentos
	for i, arg := range programa.Argumentos {
		ctx.emitir("movq %s, %d(%%rbp)", registradoresArgumentos[i], ctx.slots[arg.Nome])
	}
	// Variáveis locais começam em zero
	for _, v := range programa.Variaveis {
		ctx.emitir("movq $0, %d(%%rbp)", ctx.slots[v.Nome])
	}

	for i, comando := range programa.Comandos {
		debug.Printf("  Processando comando %d...\n", i+1)
		if err := ctx.gerarComando(comando); err != nil {
			return "", err
		}
	}

	if err := ctx.gerarEpilogo(programa.Retorno, tamanhoFrame); err != nil {
		return "", err
	}

	debug.Log("assembly gerado", "rotulos", ctx.labelCount, "bytes", ctx.output.Len())
	return ctx.output.String(), nil
}

// TamanhoFrame devolve os bytes reservados para n slots, arredondados
// para o alinhamento de 16 bytes da ABI.
func TamanhoFrame(n int) int {
	bytes := n * tamanhoSlot
	if resto := bytes % alinhamentoPilha; resto != 0 {
		bytes += alinhamentoPilha - resto
	}
	return bytes
}

// contexto concentra o estado de uma única geração: saída, contador de
// rótulos e tabela de slots.
type contexto struct {
	output     strings.Builder
	slots      map[string]int
	labelCount int
}

func novoContexto() *contexto {
	return &contexto{slots: make(map[string]int)}
}

// alocarSlots dá a cada argumento e depois a cada variável um slot de 8
// bytes abaixo de %rbp, na ordem de declaração.
func (c *contexto) alocarSlots(programa *parser.Programa) error {
	deslocamento := -tamanhoSlot
	declaracoes := append(append([]parser.Declaracao{}, programa.Argumentos...), programa.Variaveis...)
	for _, d := range declaracoes {
		if _, existe := c.slots[d.Nome]; existe {
			return utils.NovoErro(utils.ErroEstrutural, "declaração duplicada",
				d.Token.Position.Line, d.Token.Position.Column, d.Nome)
		}
		c.slots[d.Nome] = deslocamento
		debug.Log("slot", "nome", d.Nome, "deslocamento", deslocamento)
		deslocamento -= tamanhoSlot
	}
	return nil
}

func (c *contexto) slot(ident *parser.Identificador) (int, error) {
	return c.slotPorNome(ident.Nome, ident.Token.Position.Line, ident.Token.Position.Column)
}

func (c *contexto) slotPorNome(nome string, linha, coluna int) (int, error) {
	deslocamento, ok := c.slots[nome]
	if !ok {
		return 0, utils.NovoErro(utils.ErroIdentificadorNaoDeclarado,
			fmt.Sprintf("'%s' não foi declarado", nome), linha, coluna, "")
	}
	return deslocamento, nil
}

func (c *contexto) emitir(formato string, args ...any) {
	c.output.WriteString("    ")
	fmt.Fprintf(&c.output, formato, args...)
	c.output.WriteString("\n")
}

func (c *contexto) rotulo(nome string) {
	c.output.WriteString(nome)
	c.output.WriteString(":\n")
}

// novoId reserva um identificador para os rótulos de uma construção
func (c *contexto) novoId() int {
	c.labelCount++
	return c.labelCount
}

func (c *contexto) gerarPrologo(nomeFuncao string, tamanhoFrame int) {
	c.output.WriteString(".text\n")
	fmt.Fprintf(&c.output, ".globl %s\n", nomeFuncao)
	c.rotulo(nomeFuncao)
	c.emitir("pushq %%rbp")
	c.emitir("movq %%rsp, %%rbp")
	if tamanhoFrame > 0 {
		c.emitir("subq $%d, %%rsp", tamanhoFrame)
	}
}

func (c *contexto) gerarEpilogo(retorno *parser.Identificador, tamanhoFrame int) error {
	if retorno == nil {
		return utils.NovoErro(utils.ErroEstrutural, "return ausente no fim do programa", 0, 0, "")
	}
	deslocamento, err := c.slot(retorno)
	if err != nil {
		return err
	}
	c.emitir("movq %d(%%rbp), %%rax", deslocamento)
	if tamanhoFrame > 0 {
		c.emitir("addq $%d, %%rsp", tamanhoFrame)
	}
	c.emitir("popq %%rbp")
	c.emitir("ret")
	return nil
}

func (c *contexto) gerarComando(comando parser.Comando) error {
	switch cmd := comando.(type) {
	case *parser.Atribuicao:
		deslocamento, err := c.slotPorNome(cmd.Nome, cmd.Token.Position.Line, cmd.Token.Position.Column)
		if err != nil {
			return err
		}
		if err := cmd.Valor.Aceitar(c); err != nil {
			return err
		}
		c.emitir("movq %%rax, %d(%%rbp)", deslocamento)
		return nil

	case *parser.ComandoSe:
		id := c.novoId()
		lentao := fmt.Sprintf(".if_entao_%d", id)
		lsenao := fmt.Sprintf(".if_senao_%d", id)
		lfim := fmt.Sprintf(".if_fim_%d", id)

		if err := c.gerarCondicao(cmd.Condicao, lentao, lsenao); err != nil {
			return err
		}

		c.rotulo(lentao)
		if err := c.gerarBloco(cmd.BlocoSe); err != nil {
			return err
		}
		c.emitir("jmp %s", lfim)

		c.rotulo(lsenao)
		if err := c.gerarBloco(cmd.BlocoSenao); err != nil {
			return err
		}
		c.emitir("jmp %s", lfim)

		c.rotulo(lfim)
		return nil

	case *parser.ComandoEnquanto:
		id := c.novoId()
		lcond := fmt.Sprintf(".while_cond_%d", id)
		lcorpo := fmt.Sprintf(".while_corpo_%d", id)
		lfim := fmt.Sprintf(".while_fim_%d", id)

		c.rotulo(lcond)
		if err := c.gerarCondicao(cmd.Condicao, lcorpo, lfim); err != nil {
			return err
		}

		c.rotulo(lcorpo)
		if err := c.gerarBloco(cmd.Corpo); err != nil {
			return err
		}
		c.emitir("jmp %s", lcond)

		c.rotulo(lfim)
		return nil

	default:
		return utils.NovoErro(utils.ErroEstrutural, fmt.Sprintf("comando desconhecido %T", comando), 0, 0, "")
	}
}

func (c *contexto) gerarBloco(bloco *parser.Bloco) error {
	if bloco == nil {
		return nil
	}
	for _, comando := range bloco.Comandos {
		if err := c.gerarComando(comando); err != nil {
			return err
		}
	}
	return nil
}

// saltosComparacao dá o salto condicional com sinal de cada comparação
var saltosComparacao = map[parser.TipoComparacao]string{
	parser.MENOR_QUE:   "jl",
	parser.MENOR_IGUAL: "jle",
	parser.MAIOR_QUE:   "jg",
	parser.MAIOR_IGUAL: "jge",
	parser.IGUALDADE:   "je",
}

// gerarCondicao compila a condição direto para saltos; nenhum 0/1 é
// materializado em registrador.
func (c *contexto) gerarCondicao(condicao parser.Condicao, verdadeiro, falso string) error {
	switch cond := condicao.(type) {
	case *parser.Literal:
		if cond.Valor {
			c.emitir("jmp %s", verdadeiro)
		} else {
			c.emitir("jmp %s", falso)
		}
		return nil

	case *parser.Comparacao:
		salto, ok := saltosComparacao[cond.Operador]
		if !ok {
			return utils.NovoErro(utils.ErroEstrutural, "operador de comparação desconhecido",
				cond.Token.Position.Line, cond.Token.Position.Column, cond.Operador.String())
		}
		if err := cond.Esquerda.Aceitar(c); err != nil {
			return err
		}
		c.emitir("pushq %%rax")
		if err := cond.Direita.Aceitar(c); err != nil {
			return err
		}
		c.emitir("popq %%rcx")
		// flags de %rcx - %rax, ou seja, esquerda - direita
		c.emitir("cmpq %%rax, %%rcx")
		c.emitir("%s %s", salto, verdadeiro)
		c.emitir("jmp %s", falso)
		return nil

	default:
		return utils.NovoErro(utils.ErroEstrutural, fmt.Sprintf("condição desconhecida %T", condicao), 0, 0, "")
	}
}

// Implementação da interface visitor: o valor sempre termina em %rax

func (c *contexto) Numero(numero *parser.Numero) error {
	bruto, err := strconv.ParseUint(numero.Valor, 10, 64)
	if err != nil {
		return utils.NovoErro(utils.ErroLexico, "literal numérico fora do intervalo de 64 bits",
			numero.Token.Position.Line, numero.Token.Position.Column, numero.Valor)
	}
	// Decimal normalizado: o montador leria "0042" como octal
	valor := int64(bruto)
	if valor >= math.MinInt32 && valor <= math.MaxInt32 {
		c.emitir("movq $%d, %%rax", valor)
	} else {
		c.emitir("movabsq $%d, %%rax", valor)
	}
	return nil
}

func (c *contexto) Identificador(identificador *parser.Identificador) error {
	deslocamento, err := c.slot(identificador)
	if err != nil {
		return err
	}
	c.emitir("movq %d(%%rbp), %%rax", deslocamento)
	return nil
}

func (c *contexto) OperacaoBinaria(operacao *parser.OperacaoBinaria) error {
	// Operando esquerdo fica salvo na pilha
	if err := operacao.OperandoEsquerdo.Aceitar(c); err != nil {
		return err
	}
	c.emitir("pushq %%rax")

	// Operando direito em %rax, esquerdo volta em %rcx
	if err := operacao.OperandoDireito.Aceitar(c); err != nil {
		return err
	}
	c.emitir("popq %%rcx")

	switch operacao.Operador {
	case parser.ADICAO:
		c.emitir("addq %%rcx, %%rax")
	case parser.MULTIPLICACAO:
		c.emitir("imulq %%rcx, %%rax")
	case parser.SUBTRACAO:
		// esquerda - direita: o resultado nasce em %rcx
		c.emitir("subq %%rax, %%rcx")
		c.emitir("movq %%rcx, %%rax")
	default:
		return utils.NovoErro(utils.ErroEstrutural, "operador desconhecido",
			operacao.Token.Position.Line, operacao.Token.Position.Column, operacao.Operador.String())
	}

	return nil
}
