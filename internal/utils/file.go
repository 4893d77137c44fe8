package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LerArquivo lê um arquivo e retorna seu conteúdo
func LerArquivo(nomeArquivo string) (string, error) {
	bytesConteudo, err := os.ReadFile(nomeArquivo)
	if err != nil {
		return "", fmt.Errorf("erro ao ler arquivo: %w", err)
	}
	return string(bytesConteudo), nil
}

// EscreverArquivo escreve conteúdo em um arquivo
func EscreverArquivo(nomeArquivo string, conteudo string) error {
	// Cria o diretório se não existir
	diretorio := filepath.Dir(nomeArquivo)
	if err := os.MkdirAll(diretorio, 0755); err != nil {
		return fmt.Errorf("erro ao criar diretório: %w", err)
	}

	if err := os.WriteFile(nomeArquivo, []byte(conteudo), 0644); err != nil {
		return fmt.Errorf("erro ao escrever arquivo: %w", err)
	}

	return nil
}

// DerivarArquivoSaida troca a extensão de entrada pela de saída.
// Arquivos com outra extensão recebem a extensão de saída como sufixo.
func DerivarArquivoSaida(arquivoEntrada, extensaoEntrada, extensaoSaida string) string {
	if base, ok := strings.CutSuffix(arquivoEntrada, extensaoEntrada); ok && base != "" {
		return base + extensaoSaida
	}
	return arquivoEntrada + extensaoSaida
}
