package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// NomeArquivo é procurado ao lado do arquivo de entrada
const NomeArquivo = "rucomp.yaml"

// Tamanho máximo aceito para o arquivo de configuração
const tamanhoMaximo = 64 * 1024

var simboloValido = regexp.MustCompile(`^[A-Za-z_.$][A-Za-z0-9_.$]*$`)

// Config reúne as opções do compilador lidas do YAML
type Config struct {
	NomeFuncao      string `yaml:"nome_funcao"`
	ExtensaoEntrada string `yaml:"extensao_entrada"`
	ExtensaoSaida   string `yaml:"extensao_saida"`
	LexicoEstrito   bool   `yaml:"lexico_estrito"`
	Debug           bool   `yaml:"debug"`
	Paralelismo     int    `yaml:"paralelismo"`
	PassosMaximos   int    `yaml:"passos_maximos"`
}

// Padrao devolve a configuração usada quando nenhum arquivo existe
func Padrao() Config {
	return Config{
		NomeFuncao:      "foo",
		ExtensaoEntrada: ".rucomp",
		ExtensaoSaida:   ".s",
		Paralelismo:     runtime.GOMAXPROCS(0),
		PassosMaximos:   1_000_000,
	}
}

// Carregar lê o YAML em caminho sobre os valores padrão. Campos ausentes
// mantêm o padrão.
func Carregar(caminho string) (Config, error) {
	cfg := Padrao()

	info, err := os.Stat(caminho)
	if err != nil {
		return cfg, fmt.Errorf("erro ao acessar configuração '%s': %w", caminho, err)
	}
	if info.Size() > tamanhoMaximo {
		return cfg, fmt.Errorf("configuração '%s' grande demais (%d bytes)", caminho, info.Size())
	}

	dados, err := os.ReadFile(caminho)
	if err != nil {
		return cfg, fmt.Errorf("erro ao ler configuração '%s': %w", caminho, err)
	}

	if err := yaml.Unmarshal(dados, &cfg); err != nil {
		return cfg, fmt.Errorf("erro ao interpretar configuração '%s': %w", caminho, err)
	}

	if err := cfg.Validar(); err != nil {
		return cfg, fmt.Errorf("configuração '%s' inválida: %w", caminho, err)
	}

	slog.Debug("configuração carregada", "caminho", caminho, "funcao", cfg.NomeFuncao)
	return cfg, nil
}

// Procurar carrega rucomp.yaml do diretório do arquivo de entrada, se houver.
// Sem arquivo, devolve a configuração padrão.
func Procurar(arquivoEntrada string) (Config, error) {
	dir := arquivoEntrada
	if info, err := os.Stat(arquivoEntrada); err != nil || !info.IsDir() {
		dir = filepath.Dir(arquivoEntrada)
	}

	caminho := filepath.Join(dir, NomeArquivo)
	if _, err := os.Stat(caminho); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Padrao(), nil
		}
		return Padrao(), fmt.Errorf("erro ao acessar configuração '%s': %w", caminho, err)
	}
	return Carregar(caminho)
}

// Validar confere os campos que o restante do compilador assume corretos
func (c Config) Validar() error {
	if !simboloValido.MatchString(c.NomeFuncao) {
		return fmt.Errorf("nome_funcao '%s' não é um símbolo de assembler válido", c.NomeFuncao)
	}
	if !strings.HasPrefix(c.ExtensaoEntrada, ".") {
		return fmt.Errorf("extensao_entrada deve começar com '.': '%s'", c.ExtensaoEntrada)
	}
	if !strings.HasPrefix(c.ExtensaoSaida, ".") {
		return fmt.Errorf("extensao_saida deve começar com '.': '%s'", c.ExtensaoSaida)
	}
	if c.Paralelismo < 1 {
		return fmt.Errorf("paralelismo deve ser ao menos 1, recebido %d", c.Paralelismo)
	}
	if c.PassosMaximos < 1 {
		return fmt.Errorf("passos_maximos deve ser positivo, recebido %d", c.PassosMaximos)
	}
	return nil
}
