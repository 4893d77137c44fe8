package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/khevencolino/Rucomp/internal/debug"
	"github.com/khevencolino/Rucomp/internal/utils"
)

// ErrNaoSuportado indica uma plataforma onde o código gerado não roda
var ErrNaoSuportado = errors.New("execução nativa requer linux/amd64")

var compiladoresC = []string{"cc", "gcc", "clang"}

// CompiladorC devolve o primeiro compilador C encontrado no PATH
func CompiladorC() (string, error) {
	for _, nome := range compiladoresC {
		if caminho, err := exec.LookPath(nome); err == nil {
			return caminho, nil
		}
	}
	return "", fmt.Errorf("nenhum compilador C encontrado (%v)", compiladoresC)
}

// Montar grava asm em dir e o transforma numa biblioteca compartilhada.
// Devolve o caminho da biblioteca.
func Montar(ctx context.Context, asm, dir string) (string, error) {
	cc, err := CompiladorC()
	if err != nil {
		return "", err
	}

	arquivoAssembly := filepath.Join(dir, "programa.s")
	if err := utils.EscreverArquivo(arquivoAssembly, asm); err != nil {
		return "", err
	}

	biblioteca := filepath.Join(dir, "libprograma.so")
	debug.Printf("Montando %s com %s\n", arquivoAssembly, cc)

	cmd := exec.CommandContext(ctx, cc, "-shared", "-fPIC", "-nostdlib", "-o", biblioteca, arquivoAssembly)
	if saida, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("erro ao montar (%s): %v\n%s", filepath.Base(cc), err, saida)
	}

	return biblioteca, nil
}

// Executar monta asm num diretório temporário, chama nomeFuncao com os
// argumentos e devolve o valor de %rax.
func Executar(ctx context.Context, asm, nomeFuncao string, argumentos []int64) (int64, error) {
	dir, err := os.MkdirTemp("", "rucomp-*")
	if err != nil {
		return 0, fmt.Errorf("erro ao criar diretório temporário: %w", err)
	}
	defer os.RemoveAll(dir)

	caminho, err := Montar(ctx, asm, dir)
	if err != nil {
		return 0, err
	}

	bib, err := Carregar(caminho, nomeFuncao)
	if err != nil {
		return 0, err
	}
	defer bib.Fechar()

	return bib.Chamar(argumentos...)
}
