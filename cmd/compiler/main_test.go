package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLerArgumentos(t *testing.T) {
	got, err := lerArgumentos("5, -3,7")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 5 || got[1] != -3 || got[2] != 7 {
		t.Fatalf("got %v", got)
	}

	if got, err := lerArgumentos(""); err != nil || got != nil {
		t.Fatalf("empty input: got %v, %v", got, err)
	}
	if _, err := lerArgumentos("5,x"); err == nil {
		t.Fatal("expected error for non-numeric argument")
	}
}

func TestProcessarArgumentos(t *testing.T) {
	op, err := processarArgumentos([]string{"-backend=interpreter", "-args=1,2", "-funcao=bar", "prog.rucomp"})
	if err != nil {
		t.Fatal(err)
	}
	if op.backend != "interpreter" || op.funcao != "bar" || len(op.argumentos) != 2 || op.entradas[0] != "prog.rucomp" {
		t.Fatalf("unexpected options %+v", op)
	}

	if _, err := processarArgumentos(nil); err == nil {
		t.Fatal("expected error without input file")
	}
}

func escreverFonte(t *testing.T, dir, nome, conteudo string) string {
	t.Helper()
	caminho := filepath.Join(dir, nome)
	if err := os.WriteFile(caminho, []byte(conteudo), 0o644); err != nil {
		t.Fatal(err)
	}
	return caminho
}

func TestExecutarArquivoUnico(t *testing.T) {
	dir := t.TempDir()
	entrada := escreverFonte(t, dir, "dobro.rucomp", "args a; int b; b = a * 2; return b;")
	escreverFonte(t, dir, "rucomp.yaml", "nome_funcao: dobro\n")

	op, err := processarArgumentos([]string{entrada})
	if err != nil {
		t.Fatal(err)
	}
	if err := executar(context.Background(), op); err != nil {
		t.Fatal(err)
	}

	asm, err := os.ReadFile(filepath.Join(dir, "dobro.s"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(asm), ".text\n.globl dobro\ndobro:\n") {
		t.Fatalf("config function name not applied:\n%s", asm)
	}
}

func TestExecutarDiretorio(t *testing.T) {
	dir := t.TempDir()
	escreverFonte(t, dir, "um.rucomp", "args a; int b; b = a + 1; return b;")
	escreverFonte(t, dir, "dois.rucomp", "args a; int b; b = a - 1; return b;")

	op, err := processarArgumentos([]string{"-o=x.s", dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := executar(context.Background(), op); err == nil {
		t.Fatal("-o must be rejected in batch mode")
	}

	op, err = processarArgumentos([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if err := executar(context.Background(), op); err != nil {
		t.Fatal(err)
	}
	for _, nome := range []string{"um.s", "dois.s"} {
		if _, err := os.Stat(filepath.Join(dir, nome)); err != nil {
			t.Errorf("missing %s: %v", nome, err)
		}
	}
}
