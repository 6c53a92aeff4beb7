package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/domain"
)

// respondError traduz os erros de domínio para status HTTP e código estável.
// Os códigos são contrato com o front; mensagens podem mudar, códigos não.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciais inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso não encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "o email já está registrado"})
	case errors.Is(err, domain.ErrEntryAlreadyProcessed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LANCAMENTO_JA_PRESTADO", Message: "o lançamento já possui prestação de contas"})
	case errors.Is(err, domain.ErrValueMismatch):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VALOR_NAO_CONFERE", Message: "o valor líquido não corresponde ao valor da nota"})
	case errors.Is(err, domain.ErrSupplierIsWinner):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "FORNECEDOR_VENCEDOR", Message: "o fornecedor já é o vencedor deste processo"})
	case errors.Is(err, domain.ErrSupplierAlreadyChosen):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "FORNECEDOR_REPETIDO", Message: "o fornecedor já foi selecionado como proponente"})
	case errors.Is(err, domain.ErrCompetitorsMissing):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PROPONENTES_INCOMPLETOS", Message: "selecione os 2 fornecedores proponentes"})
	case errors.Is(err, domain.ErrEntryNotExpense):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "LANCAMENTO_NAO_SAIDA", Message: "apenas lançamentos de saída admitem prestação de contas"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflito com o estado atual do recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
