package lexer

import (
	"fmt"
	"strings"
)

// Position marca um ponto do texto fonte. Linha e coluna começam em 1;
// a coluna conta bytes.
type Position struct {
	Line   int // Linha no código
	Column int // Coluna no código
	Offset int // Posição absoluta no arquivo
}

func (p Position) String() string {
	return fmt.Sprintf("linha %d, coluna %d", p.Line, p.Column)
}

func NovaPosicao(linha, coluna, offset int) Position {
	return Position{
		Line:   linha,
		Column: coluna,
		Offset: offset,
	}
}

// Destacar devolve a linha de fonte onde p está, com um '^' embaixo da
// coluna. Devolve "" se p estiver fora do texto.
func (p Position) Destacar(fonte string) string {
	if p.Line < 1 || p.Column < 1 {
		return ""
	}
	linhas := strings.Split(fonte, "\n")
	if p.Line > len(linhas) {
		return ""
	}
	linha := strings.TrimRight(linhas[p.Line-1], "\r")
	coluna := min(p.Column, len(linha)+1)

	// tabs são mantidos para o marcador alinhar com o texto
	var recuo strings.Builder
	for _, c := range []byte(linha[:coluna-1]) {
		if c == '\t' {
			recuo.WriteByte('\t')
		} else {
			recuo.WriteByte(' ')
		}
	}
	return fmt.Sprintf("%4d | %s\n     | %s^\n", p.Line, linha, recuo.String())
}
