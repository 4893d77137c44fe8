package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func escrever(t *testing.T, dir, conteudo string) string {
	t.Helper()
	caminho := filepath.Join(dir, NomeArquivo)
	if err := os.WriteFile(caminho, []byte(conteudo), 0o644); err != nil {
		t.Fatal(err)
	}
	return caminho
}

func TestPadraoValido(t *testing.T) {
	cfg := Padrao()
	if err := cfg.Validar(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.NomeFuncao != "foo" || cfg.ExtensaoSaida != ".s" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestCarregarSobrepoePadrao(t *testing.T) {
	caminho := escrever(t, t.TempDir(), "nome_funcao: calcula\nparalelismo: 2\nlexico_estrito: true\n")

	cfg, err := Carregar(caminho)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NomeFuncao != "calcula" || cfg.Paralelismo != 2 || !cfg.LexicoEstrito {
		t.Errorf("fields not loaded: %+v", cfg)
	}
	if cfg.ExtensaoEntrada != ".rucomp" || cfg.PassosMaximos != 1_000_000 {
		t.Errorf("missing fields should keep defaults: %+v", cfg)
	}
}

func TestCarregarInvalido(t *testing.T) {
	tests := []struct {
		name     string
		conteudo string
		trecho   string
	}{
		{"simbolo", "nome_funcao: 9abc\n", "nome_funcao"},
		{"extensao", "extensao_saida: asm\n", "extensao_saida"},
		{"paralelismo", "paralelismo: 0\n", "paralelismo"},
		{"yaml", "nome_funcao: [\n", "interpretar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Carregar(escrever(t, t.TempDir(), tt.conteudo))
			if err == nil || !strings.Contains(err.Error(), tt.trecho) {
				t.Fatalf("expected error mentioning %q, got %v", tt.trecho, err)
			}
		})
	}
}

func TestProcurar(t *testing.T) {
	dir := t.TempDir()
	entrada := filepath.Join(dir, "prog.rucomp")

	cfg, err := Procurar(entrada)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Padrao() {
		t.Errorf("expected defaults without a file, got %+v", cfg)
	}

	escrever(t, dir, "nome_funcao: bar\n")
	cfg, err = Procurar(entrada)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NomeFuncao != "bar" {
		t.Errorf("file next to input not used: %+v", cfg)
	}

	// um diretório também serve como ponto de partida
	cfg, err = Procurar(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NomeFuncao != "bar" {
		t.Errorf("directory lookup failed: %+v", cfg)
	}
}
