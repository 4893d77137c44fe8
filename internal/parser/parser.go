package parser

import (
	"fmt"
	"strconv"

	"github.com/khevencolino/Rucomp/internal/lexer"
	"github.com/khevencolino/Rucomp/internal/utils"
)

// Parser representa o analisador sintático (descendente recursivo,
// um token de lookahead, sem retrocesso)
type Parser struct {
	tokens       []lexer.Token
	posicaoAtual int
}

// NovoParser cria um novo analisador sintático
func NovoParser(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:       tokens,
		posicaoAtual: 0,
	}
}

// AnalisarPrograma analisa um programa completo:
// args, declarações int, comandos e return
func (p *Parser) AnalisarPrograma() (*Programa, error) {
	argumentos, err := p.analisarArgumentos()
	if err != nil {
		return nil, err
	}

	variaveis, err := p.analisarVariaveis()
	if err != nil {
		return nil, err
	}

	comandos, err := p.analisarComandos()
	if err != nil {
		return nil, err
	}

	retorno, err := p.analisarRetorno()
	if err != nil {
		return nil, err
	}

	if token := p.tokenAtual(); token.Type != lexer.EOF {
		return nil, p.erro(utils.ErroSintatico, token, "token após o return",
			fmt.Sprintf("encontrado '%s'", token.Value))
	}

	return &Programa{
		Argumentos: argumentos,
		Variaveis:  variaveis,
		Comandos:   comandos,
		Retorno:    retorno,
	}, nil
}

// analisarArgumentos: 'args' IDENT (IDENT)* ';'
func (p *Parser) analisarArgumentos() ([]Declaracao, error) {
	if token := p.tokenAtual(); token.Type != lexer.ARGS {
		return nil, p.erro(utils.ErroSintatico, token, "programa deve começar com 'args'",
			fmt.Sprintf("encontrado '%s'", token.Value))
	}
	p.proximoToken() // consome 'args'

	primeiro, err := p.esperarIdentificador("após 'args'")
	if err != nil {
		return nil, err
	}
	argumentos := []Declaracao{{Nome: primeiro.Value, Token: primeiro}}

	for {
		token := p.tokenAtual()
		switch token.Type {
		case lexer.SEMICOLON:
			p.proximoToken()
			return argumentos, nil
		case lexer.IDENTIFIER:
			p.proximoToken()
			argumentos = append(argumentos, Declaracao{Nome: token.Value, Token: token})
		default:
			return nil, p.erro(utils.ErroSintatico, token, "token inesperado na lista de argumentos",
				fmt.Sprintf("esperado identificador ou ';', encontrado '%s'", token.Value))
		}
	}
}

// analisarVariaveis: 'int' IDENT (',' IDENT)* ';'
func (p *Parser) analisarVariaveis() ([]Declaracao, error) {
	if err := p.verificarProximoToken(lexer.INT); err != nil {
		return nil, err
	}

	primeiro, err := p.esperarIdentificador("após 'int'")
	if err != nil {
		return nil, err
	}
	variaveis := []Declaracao{{Nome: primeiro.Value, Token: primeiro}}

	for {
		token := p.tokenAtual()
		switch token.Type {
		case lexer.COMMA:
			p.proximoToken()
			ident, err := p.esperarIdentificador("após ','")
			if err != nil {
				return nil, err
			}
			variaveis = append(variaveis, Declaracao{Nome: ident.Value, Token: ident})
		case lexer.SEMICOLON:
			p.proximoToken()
			return variaveis, nil
		default:
			return nil, p.erro(utils.ErroSintatico, token, "token inesperado na declaração de variáveis",
				fmt.Sprintf("esperado ',' ou ';', encontrado '%s'", token.Value))
		}
	}
}

// analisarComandos consome comandos enquanto o token atual puder iniciar um.
// Assim o fim do bloco ('}' ou 'return') é reconhecido sem marcador próprio.
func (p *Parser) analisarComandos() ([]Comando, error) {
	var comandos []Comando

	for p.tokenAtual().EInicioComando() {
		comando, err := p.analisarComando()
		if err != nil {
			return nil, err
		}
		comandos = append(comandos, comando)
	}

	return comandos, nil
}

// analisarComando escolhe a produção pelo primeiro token
func (p *Parser) analisarComando() (Comando, error) {
	token := p.tokenAtual()

	switch token.Type {
	case lexer.IDENTIFIER:
		return p.analisarAtribuicao()
	case lexer.IF:
		return p.analisarComandoSe()
	case lexer.WHILE:
		return p.analisarComandoEnquanto()
	default:
		return nil, p.erro(utils.ErroSintatico, token, "comando inválido",
			fmt.Sprintf("encontrado '%s'", token.Value))
	}
}

// analisarAtribuicao: IDENT '=' Expr ';'
func (p *Parser) analisarAtribuicao() (Comando, error) {
	token := p.proximoToken() // consome o identificador

	if err := p.verificarProximoToken(lexer.ASSIGN); err != nil {
		return nil, err
	}

	valor, err := p.analisarExpressao()
	if err != nil {
		return nil, err
	}

	if err := p.verificarProximoToken(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return &Atribuicao{Nome: token.Value, Valor: valor, Token: token}, nil
}

// analisarComandoSe: 'if' Bool 'then' '{' Stmt* '}' 'else' '{' Stmt* '}'
func (p *Parser) analisarComandoSe() (Comando, error) {
	tokenSe := p.proximoToken() // consome 'if'

	condicao, err := p.analisarCondicao()
	if err != nil {
		return nil, err
	}

	if err := p.verificarProximoToken(lexer.THEN); err != nil {
		return nil, err
	}

	blocoSe, err := p.analisarBloco()
	if err != nil {
		return nil, err
	}

	if err := p.verificarProximoToken(lexer.ELSE); err != nil {
		return nil, err
	}

	blocoSenao, err := p.analisarBloco()
	if err != nil {
		return nil, err
	}

	return &ComandoSe{
		Condicao:   condicao,
		BlocoSe:    blocoSe,
		BlocoSenao: blocoSenao,
		Token:      tokenSe,
	}, nil
}

// analisarComandoEnquanto: 'while' Bool 'then' '{' Stmt* '}'
func (p *Parser) analisarComandoEnquanto() (Comando, error) {
	tokenEnquanto := p.proximoToken() // consome 'while'

	condicao, err := p.analisarCondicao()
	if err != nil {
		return nil, err
	}

	if err := p.verificarProximoToken(lexer.THEN); err != nil {
		return nil, err
	}

	corpo, err := p.analisarBloco()
	if err != nil {
		return nil, err
	}

	return &ComandoEnquanto{
		Condicao: condicao,
		Corpo:    corpo,
		Token:    tokenEnquanto,
	}, nil
}

// analisarBloco analisa '{' Stmt* '}'
func (p *Parser) analisarBloco() (*Bloco, error) {
	tokenInicio := p.tokenAtual()
	if err := p.verificarProximoToken(lexer.LBRACE); err != nil {
		return nil, err
	}

	comandos, err := p.analisarComandos()
	if err != nil {
		return nil, err
	}

	if token := p.tokenAtual(); token.Type != lexer.RBRACE {
		return nil, p.erro(utils.ErroEstrutural, token, "bloco não fechado",
			fmt.Sprintf("esperado '}' para o bloco aberto em %s, encontrado '%s'", tokenInicio.Position, token.Value))
	}
	p.proximoToken()

	return &Bloco{Comandos: comandos, Token: tokenInicio}, nil
}

// analisarRetorno: 'return' IDENT ';'
func (p *Parser) analisarRetorno() (*Identificador, error) {
	token := p.tokenAtual()
	switch token.Type {
	case lexer.RETURN:
		p.proximoToken()
	case lexer.EOF:
		return nil, utils.NovoErro(utils.ErroEstrutural, "return ausente no fim do programa",
			token.Position.Line, token.Position.Column, "")
	default:
		return nil, p.erro(utils.ErroSintatico, token, "token inesperado",
			fmt.Sprintf("esperado 'return', encontrado '%s'", token.Value))
	}

	ident, err := p.esperarIdentificador("após 'return'")
	if err != nil {
		return nil, err
	}

	if err := p.verificarProximoToken(lexer.SEMICOLON); err != nil {
		return nil, err
	}

	return &Identificador{Nome: ident.Value, Token: ident}, nil
}

// analisarCondicao: 'true' | 'false' | Expr CmpOp Expr
func (p *Parser) analisarCondicao() (Condicao, error) {
	token := p.tokenAtual()

	switch token.Type {
	case lexer.TRUE:
		p.proximoToken()
		return &Literal{Valor: true, Token: token}, nil
	case lexer.FALSE:
		p.proximoToken()
		return &Literal{Valor: false, Token: token}, nil
	}

	esquerda, err := p.analisarExpressao()
	if err != nil {
		return nil, err
	}

	tokenOperador := p.tokenAtual()
	operador, ok := tokenParaComparacao(tokenOperador)
	if !ok {
		return nil, p.erro(utils.ErroEstrutural, tokenOperador, "condição sem operador de comparação",
			fmt.Sprintf("esperado <, <=, >, >= ou ==, encontrado '%s'", tokenOperador.Value))
	}
	p.proximoToken()

	direita, err := p.analisarExpressao()
	if err != nil {
		return nil, err
	}

	return &Comparacao{
		Esquerda: esquerda,
		Operador: operador,
		Direita:  direita,
		Token:    tokenOperador,
	}, nil
}

// analisarExpressao: Termo (('+'|'-') Termo)*, dobrado à esquerda
func (p *Parser) analisarExpressao() (Expressao, error) {
	esquerda, err := p.analisarTermo()
	if err != nil {
		return nil, err
	}

	for {
		tokenOperador := p.tokenAtual()
		var operador TipoOperador
		switch tokenOperador.Type {
		case lexer.PLUS:
			operador = ADICAO
		case lexer.MINUS:
			operador = SUBTRACAO
		default:
			return esquerda, nil
		}
		p.proximoToken()

		direita, err := p.analisarTermo()
		if err != nil {
			return nil, err
		}

		esquerda = &OperacaoBinaria{
			OperandoEsquerdo: esquerda,
			Operador:         operador,
			OperandoDireito:  direita,
			Token:            tokenOperador,
		}
	}
}

// analisarTermo: Fator ('*' Fator)*, dobrado à esquerda
func (p *Parser) analisarTermo() (Expressao, error) {
	esquerda, err := p.analisarFator()
	if err != nil {
		return nil, err
	}

	for p.tokenAtual().Type == lexer.MULTIPLY {
		tokenOperador := p.proximoToken()

		direita, err := p.analisarFator()
		if err != nil {
			return nil, err
		}

		esquerda = &OperacaoBinaria{
			OperandoEsquerdo: esquerda,
			Operador:         MULTIPLICACAO,
			OperandoDireito:  direita,
			Token:            tokenOperador,
		}
	}

	return esquerda, nil
}

// analisarFator: Number | Ident | '(' Expr ')'
func (p *Parser) analisarFator() (Expressao, error) {
	token := p.tokenAtual()

	switch token.Type {
	case lexer.NUMBER:
		p.proximoToken()
		if _, err := strconv.ParseUint(token.Value, 10, 64); err != nil {
			return nil, utils.NovoErro(
				utils.ErroLexico,
				"literal numérico fora do intervalo de 64 bits",
				token.Position.Line,
				token.Position.Column,
				token.Value,
			)
		}
		return &Numero{Valor: token.Value, Token: token}, nil

	case lexer.IDENTIFIER:
		p.proximoToken()
		return &Identificador{Nome: token.Value, Token: token}, nil

	case lexer.LPAREN:
		p.proximoToken()
		expressao, err := p.analisarExpressao()
		if err != nil {
			return nil, err
		}

		if fechamento := p.tokenAtual(); fechamento.Type != lexer.RPAREN {
			return nil, p.erro(utils.ErroEstrutural, fechamento, "parêntese não fechado",
				fmt.Sprintf("esperado ')' para o '(' em %s, encontrado '%s'", token.Position, fechamento.Value))
		}
		p.proximoToken()

		return expressao, nil

	default:
		return nil, p.erro(utils.ErroSintatico, token, "expressão inválida",
			fmt.Sprintf("esperado número, variável ou '(', encontrado '%s'", token.Value))
	}
}

// tokenParaComparacao converte um token em um TipoComparacao
func tokenParaComparacao(token lexer.Token) (TipoComparacao, bool) {
	switch token.Type {
	case lexer.LESS:
		return MENOR_QUE, true
	case lexer.LESS_EQUAL:
		return MENOR_IGUAL, true
	case lexer.GREATER:
		return MAIOR_QUE, true
	case lexer.GREATER_EQUAL:
		return MAIOR_IGUAL, true
	case lexer.EQUAL:
		return IGUALDADE, true
	default:
		return 0, false
	}
}

// esperarIdentificador consome um identificador ou falha
func (p *Parser) esperarIdentificador(contexto string) (lexer.Token, error) {
	token := p.tokenAtual()
	if token.Type != lexer.IDENTIFIER {
		detalhe := fmt.Sprintf("esperado identificador %s, encontrado '%s'", contexto, token.Value)
		if token.EPalavraChave() {
			detalhe += " (palavra reservada)"
		}
		return token, p.erro(utils.ErroSintatico, token, "token inesperado", detalhe)
	}
	p.proximoToken()
	return token, nil
}

// proximoToken retorna o token atual e avança a posição
func (p *Parser) proximoToken() lexer.Token {
	token := p.tokenAtual()
	if p.posicaoAtual < len(p.tokens) {
		p.posicaoAtual++
	}
	return token
}

// verificarProximoToken verifica se o próximo token é do tipo esperado
func (p *Parser) verificarProximoToken(tipoEsperado lexer.TokenType) error {
	token := p.tokenAtual()
	if token.Type != tipoEsperado {
		return p.erro(utils.ErroSintatico, token, "token inesperado",
			fmt.Sprintf("esperado %s, encontrado %s '%s'", tipoEsperado, token.Type, token.Value))
	}
	p.proximoToken()
	return nil
}

// tokenAtual retorna o token atual sem avançar
func (p *Parser) tokenAtual() lexer.Token {
	if p.posicaoAtual >= len(p.tokens) {
		var posicao lexer.Position
		if len(p.tokens) > 0 {
			posicao = p.tokens[len(p.tokens)-1].Position
		}
		return lexer.NovoToken(lexer.EOF, "", posicao)
	}
	return p.tokens[p.posicaoAtual]
}

// erro monta o erro de compilação para o token; um token INVALID
// sempre vira erro léxico, qualquer que seja a produção esperada.
func (p *Parser) erro(tipo utils.TipoErro, token lexer.Token, mensagem, detalhes string) error {
	if token.Type == lexer.INVALID {
		return utils.NovoErro(utils.ErroLexico, "caractere inválido",
			token.Position.Line, token.Position.Column, fmt.Sprintf("'%s'", token.Value))
	}
	return utils.NovoErro(tipo, mensagem, token.Position.Line, token.Position.Column, detalhes)
}
