package prestacao_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/prestacao"
)

func TestParseTable_LinhaTabuladaDePlanilha(t *testing.T) {
	rows, err := prestacao.ParseTable("Arroz Parboilizado Tipo 1\t50\tkg\t5,50\t5,90\t6,15")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "Arroz Parboilizado Tipo 1", r.Description)
	assert.True(t, r.Quantity.Equal(d("50")))
	assert.Equal(t, "kg", r.Unit)
	assert.True(t, r.WinnerUnitPrice.Equal(d("5.50")))
	assert.True(t, r.CompetitorPrices[0].Equal(d("5.90")))
	assert.True(t, r.CompetitorPrices[1].Equal(d("6.15")))
}

// O tab tem prioridade na detecção de separador: a vírgula decimal de "5,50"
// não pode ser confundida com separador de colunas.
func TestParseTable_TabVencePrecosComVirgula(t *testing.T) {
	rows, err := prestacao.ParseTable("Feijão Carioca\t20\tkg\t8,00\t8,20\t8,35")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Feijão Carioca", rows[0].Description)
	assert.True(t, rows[0].WinnerUnitPrice.Equal(d("8.00")))
}

func TestParseTable_CSVComPontoEVirgula(t *testing.T) {
	csv := "Óleo de Soja 900ml;10;un;7,90;8,10;8,25\nAçúcar Cristal;5;kg;4,30;4,55;4,60"
	rows, err := prestacao.ParseTable(csv)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Açúcar Cristal", rows[1].Description)
	assert.True(t, rows[1].CompetitorPrices[1].Equal(d("4.60")))
}

func TestParseTable_DescartaCabecalhoELinhasVazias(t *testing.T) {
	text := "Descrição Detalhada\tQuantidade\tUnidade\tPreço Vencedor (R$)\tPreço Concorrente 1 (R$)\tPreço Concorrente 2 (R$)\n" +
		"\n" +
		"Arroz\t50\tkg\t5,50\t5,90\t6,15\n" +
		"linha sem colunas suficientes\n"
	rows, err := prestacao.ParseTable(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Arroz", rows[0].Description)
}

func TestParseTable_ColunasFaltantesGanhamPadroes(t *testing.T) {
	rows, err := prestacao.ParseTable("Arroz\t50")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Unid.", rows[0].Unit)
	assert.True(t, rows[0].WinnerUnitPrice.IsZero())
	assert.True(t, rows[0].CompetitorPrices[0].IsZero())
}

func TestParseTable_EntradaVaziaOuSemLinhasUteis(t *testing.T) {
	_, err := prestacao.ParseTable("   \n  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = prestacao.ParseTable("Descrição\tQuantidade")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseNumberBR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"5,50", "5.50"},
		{"R$ 1.234,56", "1234.56"},
		{"1234.56", "1234.56"},
		{"  50  ", "50"},
		{"", "0"},
		{"abc", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.True(t, prestacao.ParseNumberBR(tc.in).Equal(d(tc.want)),
				"ParseNumberBR(%q)", tc.in)
		})
	}
}

func TestFormatNumberBR_InversoDeParseNumberBR(t *testing.T) {
	for _, v := range []string{"5.50", "1234.56", "0.00", "6.15"} {
		formatted := prestacao.FormatNumberBR(d(v))
		assert.True(t, prestacao.ParseNumberBR(formatted).Equal(d(v)),
			"%s → %q → deveria voltar ao mesmo valor", v, formatted)
	}
	assert.Equal(t, "5,50", prestacao.FormatNumberBR(d("5.5")))
}

// O modelo CSV baixado pelo usuário precisa ser aceito de volta pelo próprio
// importador.
func TestCSVTemplate_RoundTrip(t *testing.T) {
	tpl := prestacao.CSVTemplate()
	assert.True(t, strings.HasPrefix(string(tpl), "\ufeff"), "BOM UTF-8 para o Excel")

	rows, err := prestacao.ParseTable(string(tpl))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "Arroz Parboilizado Tipo 1", r.Description)
	assert.True(t, r.Quantity.Equal(d("50")))
	assert.Equal(t, "kg", r.Unit)
	assert.True(t, r.WinnerUnitPrice.Equal(d("5.50")))
	assert.True(t, r.CompetitorPrices[0].Equal(d("5.90")))
	assert.True(t, r.CompetitorPrices[1].Equal(d("6.15")))
}
