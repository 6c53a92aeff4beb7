package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrConflict           = errors.New("conflito com o estado atual")

	// Prestação de contas.
	ErrEntryAlreadyProcessed = errors.New("o lançamento já possui prestação de contas")
	ErrSupplierIsWinner      = errors.New("o fornecedor já é o vencedor deste processo")
	ErrSupplierAlreadyChosen = errors.New("o fornecedor já foi selecionado como proponente")
	ErrCompetitorsMissing    = errors.New("selecione os 2 fornecedores proponentes")
	ErrValueMismatch         = errors.New("o valor líquido não corresponde ao valor da nota")
	ErrUnknownItem           = errors.New("item não pertence ao processo")
	ErrLastItem              = errors.New("o processo precisa de ao menos um item")
	ErrEntryNotExpense       = errors.New("apenas lançamentos de saída admitem prestação de contas")
)
