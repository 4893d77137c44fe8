package compiler

import (
	"context"
	"errors"
	"io"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/khevencolino/Rucomp/internal/backends"
	"github.com/khevencolino/Rucomp/internal/debug"
	"github.com/khevencolino/Rucomp/internal/utils"
)

// OpcoesLote configura uma compilação de vários arquivos
type OpcoesLote struct {
	Backend         backends.Backend
	LexicoEstrito   bool
	ExtensaoEntrada string
	ExtensaoSaida   string
	Paralelismo     int
	// Progresso recebe a barra de progresso; nil desliga a barra
	Progresso io.Writer
}

// ResultadoLote descreve o desfecho de um arquivo
type ResultadoLote struct {
	Entrada string
	Saida   string
	Err     error
}

// CompilarLote compila cada arquivo com a sua própria instância do
// compilador. Uma falha não interrompe os demais arquivos; o erro devolvido
// junta todas as falhas. Os resultados seguem a ordem de arquivos.
func CompilarLote(ctx context.Context, arquivos []string, opcoes OpcoesLote) ([]ResultadoLote, error) {
	paralelismo := opcoes.Paralelismo
	if paralelismo < 1 {
		paralelismo = runtime.GOMAXPROCS(0)
	}

	var barra *progressbar.ProgressBar
	if opcoes.Progresso != nil {
		barra = progressbar.NewOptions(len(arquivos),
			progressbar.OptionSetWriter(opcoes.Progresso),
			progressbar.OptionSetDescription("compilando"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer barra.Close()
	}

	resultados := make([]ResultadoLote, len(arquivos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(paralelismo)

	for i, entrada := range arquivos {
		i, entrada := i, entrada
		saida := utils.DerivarArquivoSaida(entrada, opcoes.ExtensaoEntrada, opcoes.ExtensaoSaida)
		resultados[i] = ResultadoLote{Entrada: entrada, Saida: saida}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				resultados[i].Err = err
				return err
			}

			c := NovoCompilador(opcoes.Backend, opcoes.LexicoEstrito)
			resultados[i].Err = c.CompilarArquivo(entrada, saida)

			if barra != nil {
				_ = barra.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return resultados, err
	}

	var falhas []error
	for _, r := range resultados {
		if r.Err != nil {
			falhas = append(falhas, r.Err)
		}
	}
	debug.Log("lote concluído", "arquivos", len(arquivos), "falhas", len(falhas))

	return resultados, errors.Join(falhas...)
}
