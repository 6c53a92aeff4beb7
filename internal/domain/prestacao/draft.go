// Package prestacao contém as regras de domínio do processo de prestação de
// contas: rascunho das três cotações, conferência de valores, checklist de
// conformidade e importação em massa de itens.
package prestacao

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
)

// CompetitorSlots é o número fixo de cotações concorrentes por processo.
const CompetitorSlots = 2

// Competitor é o rascunho de uma cotação concorrente. Os preços são indexados
// pelo ID estável do item do vencedor, e não por posição: a paridade entre as
// três listas vira garantia estrutural em vez de invariante implícita.
type Competitor struct {
	SupplierID   string
	SupplierName string
	SupplierCNPJ string

	prices map[string]decimal.Decimal // item id -> preço unitário
}

// Draft é o estado em edição de um processo: lançamento base, itens do
// vencedor e exatamente duas cotações concorrentes alinhadas item a item.
type Draft struct {
	entry       *entity.FinancialEntry
	items       []entity.AccountabilityItem
	competitors [CompetitorSlots]Competitor
}

// NewDraft cria um rascunho vazio para o lançamento base.
// Retorna erro se o lançamento não for de saída.
func NewDraft(entry *entity.FinancialEntry) (*Draft, error) {
	if entry == nil {
		return nil, domain.ErrInvalidInput
	}
	if !entry.IsExpense() {
		return nil, domain.ErrEntryNotExpense
	}
	d := &Draft{entry: entry}
	for i := range d.competitors {
		d.competitors[i].prices = make(map[string]decimal.Decimal)
	}
	return d, nil
}

// Entry devolve o lançamento base.
func (d *Draft) Entry() *entity.FinancialEntry { return d.entry }

// Items devolve os itens do vencedor na ordem de inserção.
func (d *Draft) Items() []entity.AccountabilityItem { return d.items }

// AddItem insere um item do vencedor e abre a entrada correspondente (preço
// zero) nas duas cotações concorrentes. Devolve o ID estável gerado.
func (d *Draft) AddItem(description string, quantity decimal.Decimal, unit string, winnerUnitPrice decimal.Decimal) string {
	item := entity.AccountabilityItem{
		ID:              uuid.New().String(),
		Description:     description,
		Quantity:        quantity,
		Unit:            unit,
		WinnerUnitPrice: winnerUnitPrice,
	}
	d.items = append(d.items, item)
	for i := range d.competitors {
		d.competitors[i].prices[item.ID] = decimal.Zero
	}
	return item.ID
}

// RemoveItem remove o item e seus preços concorrentes. O último item do
// processo não pode ser removido.
func (d *Draft) RemoveItem(itemID string) error {
	idx := d.indexOf(itemID)
	if idx < 0 {
		return domain.ErrUnknownItem
	}
	if len(d.items) <= 1 {
		return domain.ErrLastItem
	}
	d.items = append(d.items[:idx], d.items[idx+1:]...)
	for i := range d.competitors {
		delete(d.competitors[i].prices, itemID)
	}
	return nil
}

// UpdateItem altera descrição, quantidade, unidade e preço do vencedor.
// Descrição, quantidade e unidade são espelhadas nas cotações concorrentes
// na materialização (CompetitorItems); os preços concorrentes não mudam.
func (d *Draft) UpdateItem(itemID, description string, quantity decimal.Decimal, unit string, winnerUnitPrice decimal.Decimal) error {
	idx := d.indexOf(itemID)
	if idx < 0 {
		return domain.ErrUnknownItem
	}
	d.items[idx].Description = description
	d.items[idx].Quantity = quantity
	d.items[idx].Unit = unit
	d.items[idx].WinnerUnitPrice = winnerUnitPrice
	return nil
}

// SetCompetitorSupplier vincula o fornecedor de um slot concorrente.
// Rejeita o fornecedor vencedor do lançamento e fornecedor repetido no outro slot.
func (d *Draft) SetCompetitorSupplier(slot int, supplier entity.Supplier) error {
	if slot < 0 || slot >= CompetitorSlots {
		return domain.ErrInvalidInput
	}
	if supplier.ID == "" {
		return domain.ErrInvalidInput
	}
	if d.entry.SupplierID != "" && supplier.ID == d.entry.SupplierID {
		return domain.ErrSupplierIsWinner
	}
	for i := range d.competitors {
		if i != slot && d.competitors[i].SupplierID == supplier.ID {
			return domain.ErrSupplierAlreadyChosen
		}
	}
	d.competitors[slot].SupplierID = supplier.ID
	d.competitors[slot].SupplierName = supplier.Name
	d.competitors[slot].SupplierCNPJ = supplier.CNPJ
	return nil
}

// SetCompetitorPrice define o preço unitário de um concorrente para um item.
func (d *Draft) SetCompetitorPrice(slot int, itemID string, price decimal.Decimal) error {
	if slot < 0 || slot >= CompetitorSlots {
		return domain.ErrInvalidInput
	}
	if _, ok := d.competitors[slot].prices[itemID]; !ok {
		return domain.ErrUnknownItem
	}
	d.competitors[slot].prices[itemID] = price
	return nil
}

// Competitor devolve os dados do fornecedor de um slot.
func (d *Draft) Competitor(slot int) Competitor {
	return d.competitors[slot]
}

// CompetitorItems materializa as linhas da cotação de um slot, na mesma ordem
// dos itens do vencedor e espelhando descrição, quantidade e unidade.
func (d *Draft) CompetitorItems(slot int) []entity.AccountabilityQuoteItem {
	out := make([]entity.AccountabilityQuoteItem, 0, len(d.items))
	for _, it := range d.items {
		out = append(out, entity.AccountabilityQuoteItem{
			ItemID:      it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   d.competitors[slot].prices[it.ID],
		})
	}
	return out
}

// Subtotal soma quantidade × preço do vencedor de todos os itens.
func (d *Draft) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// CompetitorTotal soma quantidade × preço do concorrente de todos os itens.
func (d *Draft) CompetitorTotal(slot int) decimal.Decimal {
	total := decimal.Zero
	for _, it := range d.items {
		total = total.Add(it.Quantity.Mul(d.competitors[slot].prices[it.ID]))
	}
	return total
}

// ImportRows anexa linhas importadas (planilha ou XML de nota) ao rascunho,
// atribuindo os preços dos concorrentes aos slots 1 e 2 posicionalmente.
func (d *Draft) ImportRows(rows []ImportedRow) {
	for _, row := range rows {
		id := d.AddItem(row.Description, row.Quantity, row.Unit, row.WinnerUnitPrice)
		for slot := 0; slot < CompetitorSlots; slot++ {
			d.competitors[slot].prices[id] = row.CompetitorPrices[slot]
		}
	}
}

// Validate confere o que bloqueia a gravação: os dois fornecedores
// proponentes escolhidos, distintos entre si e do vencedor, e ao menos um item.
func (d *Draft) Validate() error {
	if len(d.items) == 0 {
		return domain.ErrLastItem
	}
	for i := range d.competitors {
		if d.competitors[i].SupplierID == "" {
			return domain.ErrCompetitorsMissing
		}
		if d.entry.SupplierID != "" && d.competitors[i].SupplierID == d.entry.SupplierID {
			return domain.ErrSupplierIsWinner
		}
	}
	if d.competitors[0].SupplierID == d.competitors[1].SupplierID {
		return domain.ErrSupplierAlreadyChosen
	}
	return nil
}

// Aligned confere a garantia estrutural de paridade: cada concorrente tem
// exatamente um preço por item do vencedor, sem sobras.
func (d *Draft) Aligned() bool {
	for i := range d.competitors {
		if len(d.competitors[i].prices) != len(d.items) {
			return false
		}
		for _, it := range d.items {
			if _, ok := d.competitors[i].prices[it.ID]; !ok {
				return false
			}
		}
	}
	return true
}

func (d *Draft) indexOf(itemID string) int {
	for i := range d.items {
		if d.items[i].ID == itemID {
			return i
		}
	}
	return -1
}
