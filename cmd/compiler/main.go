package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/khevencolino/Rucomp/internal/backends"
	"github.com/khevencolino/Rucomp/internal/backends/assembly"
	"github.com/khevencolino/Rucomp/internal/backends/interpreter"
	"github.com/khevencolino/Rucomp/internal/compiler"
	"github.com/khevencolino/Rucomp/internal/config"
	"github.com/khevencolino/Rucomp/internal/debug"
	"github.com/khevencolino/Rucomp/internal/executor"
	"github.com/khevencolino/Rucomp/internal/lexer"
	"github.com/khevencolino/Rucomp/internal/parser"
	"github.com/khevencolino/Rucomp/internal/utils"
)

// opcoes reúne as flags da linha de comando
type opcoes struct {
	entradas    []string
	backend     string
	arch        string
	funcao      string
	saida       string
	config      string
	argumentos  []int64
	tokens      bool
	ast         bool
	executar    bool
	debug       bool
	mostraAjuda bool
}

func main() {
	op, err := processarArgumentos(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(2)
	}

	if op.mostraAjuda {
		mostrarAjuda()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := executar(ctx, op); err != nil {
		fmt.Fprintf(os.Stderr, "Erro de compilação: %v\n", err)
		os.Exit(1)
	}
}

func processarArgumentos(argv []string) (*opcoes, error) {
	fs := flag.NewFlagSet("rucomp", flag.ContinueOnError)
	fs.Usage = mostrarAjuda

	op := &opcoes{}
	fs.StringVar(&op.backend, "backend", "assembly", "Backend a ser usado (assembly, interpreter)")
	fs.StringVar(&op.arch, "arch", "x86_64", "Arquitetura para assembly (x86_64)")
	fs.StringVar(&op.funcao, "funcao", "", "Nome do símbolo exportado (padrão: foo)")
	fs.StringVar(&op.saida, "o", "", "Arquivo de saída (apenas um arquivo de entrada)")
	fs.StringVar(&op.config, "config", "", "Arquivo de configuração YAML")
	args := fs.String("args", "", "Argumentos inteiros separados por vírgula, ex: 5,3")
	fs.BoolVar(&op.tokens, "tokens", false, "Imprime a lista de tokens")
	fs.BoolVar(&op.ast, "ast", false, "Imprime a árvore sintática")
	fs.BoolVar(&op.executar, "executar", false, "Monta e executa o código gerado")
	fs.BoolVar(&op.debug, "debug", false, "Ativar mensagens de debug")
	fs.BoolVar(&op.mostraAjuda, "help", false, "Mostra ajuda")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	if op.mostraAjuda {
		return op, nil
	}

	op.entradas = fs.Args()
	if len(op.entradas) < 1 {
		return nil, fmt.Errorf("arquivo de entrada requerido")
	}

	argumentos, err := lerArgumentos(*args)
	if err != nil {
		return nil, err
	}
	op.argumentos = argumentos

	return op, nil
}

// lerArgumentos converte "5,3" em inteiros de 64 bits
func lerArgumentos(texto string) ([]int64, error) {
	if strings.TrimSpace(texto) == "" {
		return nil, nil
	}
	var valores []int64
	for _, parte := range strings.Split(texto, ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(parte), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argumento inválido '%s': %w", parte, err)
		}
		valores = append(valores, v)
	}
	return valores, nil
}

func carregarConfig(op *opcoes) (config.Config, error) {
	var cfg config.Config
	var err error
	if op.config != "" {
		cfg, err = config.Carregar(op.config)
	} else {
		cfg, err = config.Procurar(op.entradas[0])
	}
	if err != nil {
		return cfg, err
	}

	if op.funcao != "" {
		cfg.NomeFuncao = op.funcao
	}
	if op.debug {
		cfg.Debug = true
	}
	return cfg, cfg.Validar()
}

func criarBackend(op *opcoes, cfg config.Config) (backends.Backend, error) {
	switch op.backend {
	case "assembly", "asm", "native":
		return assembly.NewAssemblyBackend(op.arch, cfg.NomeFuncao)
	case "interpreter", "interp", "ast":
		return interpreter.NewInterpreterBackend(op.argumentos, cfg.PassosMaximos), nil
	default:
		return nil, fmt.Errorf("backend desconhecido: %s", op.backend)
	}
}

func executar(ctx context.Context, op *opcoes) error {
	cfg, err := carregarConfig(op)
	if err != nil {
		return err
	}

	debug.Configurar(os.Stderr, cfg.Debug)
	slog.SetDefault(debug.Logger())

	backend, err := criarBackend(op, cfg)
	if err != nil {
		return err
	}
	debug.Printf("Backend selecionado: %s\n", backend.GetName())

	if len(op.entradas) == 1 {
		if info, err := os.Stat(op.entradas[0]); err == nil && !info.IsDir() {
			return compilarUnico(ctx, op, cfg, backend)
		}
	}
	return compilarVarios(ctx, op, cfg, backend)
}

func compilarUnico(ctx context.Context, op *opcoes, cfg config.Config, backend backends.Backend) error {
	entrada := op.entradas[0]
	fonte, err := utils.LerArquivo(entrada)
	if err != nil {
		return err
	}

	if op.tokens {
		fmt.Print(lexer.ImprimirTokens(lexer.Escanear(fonte)))
	}

	c := compiler.NovoCompilador(backend, cfg.LexicoEstrito)
	analise, err := c.Analisar(fonte)
	if err != nil {
		destacarErro(fonte, err)
		return fmt.Errorf("%s: %w", entrada, err)
	}

	if op.ast {
		fmt.Print(parser.NovoVisualizador().ImprimirArvore(analise.Programa))
	}

	saida, err := c.Gerar(analise.Programa)
	if err != nil {
		return fmt.Errorf("%s: %w", entrada, err)
	}

	// O interpretador devolve o resultado em vez de código
	if backend.GetExtension() == "" {
		fmt.Print(saida)
		return nil
	}

	arquivoSaida := op.saida
	if arquivoSaida == "" {
		arquivoSaida = utils.DerivarArquivoSaida(entrada, cfg.ExtensaoEntrada, cfg.ExtensaoSaida)
	}
	if err := utils.EscreverArquivo(arquivoSaida, saida); err != nil {
		return err
	}
	slog.Info("código gerado", "entrada", entrada, "saida", arquivoSaida)

	if op.executar {
		resultado, err := executor.Executar(ctx, saida, cfg.NomeFuncao, op.argumentos)
		if err != nil {
			return err
		}
		fmt.Println(resultado)
	}
	return nil
}

// destacarErro mostra a linha do fonte onde um erro de compilação ocorreu
func destacarErro(fonte string, err error) {
	var ce *utils.CompilerError
	if errors.As(err, &ce) {
		fmt.Fprint(os.Stderr, lexer.NovaPosicao(ce.Linha, ce.Coluna, 0).Destacar(fonte))
	}
}

func compilarVarios(ctx context.Context, op *opcoes, cfg config.Config, backend backends.Backend) error {
	if backend.GetExtension() == "" || op.saida != "" || op.executar || op.tokens || op.ast {
		return fmt.Errorf("vários arquivos só podem ser compilados para assembly, sem -o, -executar, -tokens ou -ast")
	}

	arquivos, err := compiler.NovoResolvedorFontes(cfg.ExtensaoEntrada).Resolver(op.entradas...)
	if err != nil {
		return err
	}
	if len(arquivos) == 0 {
		return fmt.Errorf("nenhum arquivo %s encontrado", cfg.ExtensaoEntrada)
	}

	lote := compiler.OpcoesLote{
		Backend:         backend,
		LexicoEstrito:   cfg.LexicoEstrito,
		ExtensaoEntrada: cfg.ExtensaoEntrada,
		ExtensaoSaida:   cfg.ExtensaoSaida,
		Paralelismo:     cfg.Paralelismo,
	}
	if !cfg.Debug && term.IsTerminal(int(os.Stderr.Fd())) {
		lote.Progresso = os.Stderr
	}

	resultados, err := compiler.CompilarLote(ctx, arquivos, lote)
	falhas := 0
	for _, r := range resultados {
		if r.Err != nil {
			falhas++
			tipo := "desconhecido"
			if t, ok := utils.TipoDoErro(r.Err); ok {
				tipo = t.String()
			}
			slog.Error("falha na compilação", "entrada", r.Entrada, "tipo", tipo, "erro", r.Err)
			continue
		}
		slog.Info("código gerado", "entrada", r.Entrada, "saida", r.Saida)
	}
	if err != nil {
		return fmt.Errorf("%d de %d arquivos falharam", falhas, len(resultados))
	}
	return nil
}

func mostrarAjuda() {
	fmt.Printf(`Compilador Rucomp - gera assembly x86-64 (AT&T)

USO:
    rucomp [flags] <arquivo>...
    rucomp [flags] <diretório>

FLAGS:
    -backend=<tipo>     Backend a ser usado (padrão: assembly)
    -arch=<arquitetura> Arquitetura para assembly (padrão: x86_64)
    -funcao=<nome>      Símbolo exportado (padrão: foo)
    -o=<arquivo>        Arquivo de saída (padrão: troca .rucomp por .s)
    -args=<a,b,...>     Argumentos para -executar ou para o interpretador
    -executar           Monta com cc e chama a função gerada
    -tokens             Imprime os tokens
    -ast                Imprime a árvore sintática
    -config=<arquivo>   Configuração YAML (padrão: rucomp.yaml ao lado da entrada)
    -debug              Ativar mensagens de debug
    -help               Mostra esta ajuda

BACKENDS DISPONÍVEIS:

assembly, asm, native
    - Assembly x86-64 no formato AT&T
    - Convenção System V: até 6 argumentos, resultado em %%rax

interpreter, interp, ast
    - Interpretação direta da AST
    - Imprime o valor de retorno

Com mais de um arquivo ou com um diretório, todos os arquivos são
compilados em paralelo.

EXEMPLOS:
    rucomp programa.rucomp                                # Gera programa.s
    rucomp -ast -tokens programa.rucomp                   # Mostra tokens e árvore
    rucomp -executar -args=5 fatorial.rucomp              # Gera, monta e executa
    rucomp -backend=interpreter -args=5 fatorial.rucomp   # Interpreta
    rucomp exemplos/                                      # Compila um diretório
`)
}
