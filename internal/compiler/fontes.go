package compiler

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolvedorFontes expande caminhos da linha de comando em arquivos fonte
type ResolvedorFontes struct {
	// Extensão procurada dentro de diretórios
	extensao string
	// Arquivos já incluídos, para não compilar duas vezes
	vistos map[string]bool
}

// NovoResolvedorFontes cria um resolvedor para arquivos com a extensão dada
func NovoResolvedorFontes(extensao string) *ResolvedorFontes {
	return &ResolvedorFontes{
		extensao: extensao,
		vistos:   make(map[string]bool),
	}
}

// Resolver devolve os arquivos fonte em ordem estável. Arquivos citados
// diretamente entram com qualquer extensão; diretórios são percorridos
// recursivamente atrás da extensão configurada.
func (r *ResolvedorFontes) Resolver(caminhos ...string) ([]string, error) {
	var arquivos []string

	for _, caminho := range caminhos {
		info, err := os.Stat(caminho)
		if err != nil {
			return nil, fmt.Errorf("fonte '%s' não encontrada: %w", caminho, err)
		}

		if !info.IsDir() {
			arquivos = r.adicionar(arquivos, caminho)
			continue
		}

		var encontrados []string
		err = filepath.WalkDir(caminho, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// diretórios ocultos ficam de fora
				if p != caminho && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), r.extensao) {
				encontrados = append(encontrados, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("erro ao percorrer '%s': %w", caminho, err)
		}

		sort.Strings(encontrados)
		for _, p := range encontrados {
			arquivos = r.adicionar(arquivos, p)
		}
	}

	return arquivos, nil
}

func (r *ResolvedorFontes) adicionar(arquivos []string, caminho string) []string {
	chave := filepath.Clean(caminho)
	if r.vistos[chave] {
		return arquivos
	}
	r.vistos[chave] = true
	return append(arquivos, caminho)
}
