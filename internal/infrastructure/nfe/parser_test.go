package nfe_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/infrastructure/nfe"
)

const sampleNFe = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe">
  <NFe>
    <infNFe>
      <det nItem="1">
        <prod>
          <cProd>001</cProd>
          <xProd>Arroz Parboilizado Tipo 1</xProd>
          <uCom>kg</uCom>
          <qCom>50.0000</qCom>
          <vUnCom>5.5000</vUnCom>
        </prod>
      </det>
      <det nItem="2">
        <prod>
          <cProd>002</cProd>
          <xProd>Feijão Carioca</xProd>
          <uCom>kg</uCom>
          <qCom>20.0000</qCom>
          <vUnCom>8.0000</vUnCom>
        </prod>
      </det>
    </infNFe>
  </NFe>
</nfeProc>`

func TestParseInvoice_NFeDeProdutos(t *testing.T) {
	rows, err := nfe.ParseInvoice([]byte(sampleNFe))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	r := rows[0]
	assert.Equal(t, "Arroz Parboilizado Tipo 1", r.Description)
	assert.True(t, r.Quantity.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "kg", r.Unit)
	assert.True(t, r.WinnerUnitPrice.Equal(decimal.RequireFromString("5.5")))
	// Sugestões: 5,50 × 1,016 = 5,59 e 5,50 × 1,0185 = 5,60 (centavos).
	assert.True(t, r.CompetitorPrices[0].Equal(decimal.RequireFromString("5.59")), "got %s", r.CompetitorPrices[0])
	assert.True(t, r.CompetitorPrices[1].Equal(decimal.RequireFromString("5.60")), "got %s", r.CompetitorPrices[1])

	assert.Equal(t, "Feijão Carioca", rows[1].Description)
}

const sampleNFSeMulti = `<?xml version="1.0" encoding="UTF-8"?>
<CompNfse>
  <Nfse>
    <InfNfse>
      <Servico>
        <Discriminacao>Manutenção elétrica R$ 350,00***Troca de luminárias R$ 120,00</Discriminacao>
        <ValorServicos>470.00</ValorServicos>
      </Servico>
    </InfNfse>
  </Nfse>
</CompNfse>`

func TestParseInvoice_NFSeComVariosServicos(t *testing.T) {
	rows, err := nfe.ParseInvoice([]byte(sampleNFSeMulti))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Manutenção elétrica", rows[0].Description)
	assert.Equal(t, "Serviço", rows[0].Unit)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, rows[0].WinnerUnitPrice.Equal(decimal.RequireFromString("350.00")))

	assert.Equal(t, "Troca de luminárias", rows[1].Description)
	assert.True(t, rows[1].WinnerUnitPrice.Equal(decimal.RequireFromString("120.00")))
}

const sampleNFSeSingle = `<?xml version="1.0" encoding="UTF-8"?>
<Nfse>
  <Servico>
    <xDescServ>Dedetização do prédio escolar</xDescServ>
    <vServ>800.00</vServ>
  </Servico>
</Nfse>`

func TestParseInvoice_NFSeServicoUnicoUsaValorTotal(t *testing.T) {
	rows, err := nfe.ParseInvoice([]byte(sampleNFSeSingle))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "Dedetização do prédio escolar", r.Description)
	assert.True(t, r.WinnerUnitPrice.Equal(decimal.RequireFromString("800.00")))
	assert.True(t, r.CompetitorPrices[0].GreaterThan(r.WinnerUnitPrice))
	assert.True(t, r.CompetitorPrices[1].GreaterThan(r.CompetitorPrices[0]))
}

func TestParseInvoice_XMLInvalido(t *testing.T) {
	_, err := nfe.ParseInvoice([]byte("não é XML"))
	require.Error(t, err)

	_, err = nfe.ParseInvoice([]byte("<vazio/>"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
