// Package pdf genera la impresión de cotizaciones con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa             │  N° Cotización + Fechas       │
//	│  CLIENTE: Tipo + Nombre                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | UdM | Tarifa | Importe             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  GASTOS: Tipo | Cuenta | Monto                               │
//	│  TOTALES: Gastos / Neto / TOTAL                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/powerkey/power-app/internal/application/printing"
	"github.com/powerkey/power-app/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoQuotationPDF implementa printing.QuotationPDFGenerator usando Maroto v2.
type MarotoQuotationPDF struct {
	printer *message.Printer
}

var _ printing.QuotationPDFGenerator = (*MarotoQuotationPDF)(nil)

// NewMarotoQuotationPDF construye el generador; lang define el formato de los montos.
func NewMarotoQuotationPDF(lang language.Tag) *MarotoQuotationPDF {
	return &MarotoQuotationPDF{printer: message.NewPrinter(lang)}
}

// GenerateQuotationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoQuotationPDF) GenerateQuotationPDF(_ context.Context, q *entity.Quotation, company *entity.Company) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+q.Name, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow(q))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(q.Items)...)

	if len(q.Expenses) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(g.expenseRows(q.Expenses)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(q))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(q *entity.Quotation, company *entity.Company) core.Row {
	validTill := "-"
	if q.ValidTill != nil {
		validTill = q.ValidTill.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(company.Abbr, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(q.Name, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Fecha: "+q.TransactionDate.Format("02/01/2006")+"   Válida hasta: "+validTill,
				props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func partyRow(q *entity.Quotation) core.Row {
	name := q.CustomerName
	if name == "" {
		name = q.PartyName
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(q.QuotationTo, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Artículo", 5, align.Left),
		h("UdM", 1, align.Center),
		h("Tarifa", 2, align.Right),
		h("Importe", 3, align.Right),
	)
}

func (g *MarotoQuotationPDF) itemRows(items []*entity.QuotationItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		label := it.ItemCode
		if it.ItemName != "" {
			label += " · " + it.ItemName
		}
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(it.Qty.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.UOM, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.Money(it.Rate), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.Money(it.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func (g *MarotoQuotationPDF) expenseRows(expenses []entity.ServiceExpense) []core.Row {
	out := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("GASTOS DE SERVICIO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, e := range expenses {
		out = append(out, row.New(6).Add(
			col.New(5).Add(text.New(e.ServiceExpenseType, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(e.DefaultAccount, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(3).Add(text.New(g.Money(e.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func (g *MarotoQuotationPDF) totalsRow(q *entity.Quotation) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Gastos incluidos:", 0),
			label("Neto:", 6),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
		),
		col.New(3).Add(
			value(g.Money(q.TotalExpenses), 0),
			value(g.Money(q.NetTotal), 6),
			text.New(g.Money(q.GrandTotal), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12}),
		),
	)
}

// Money formatea un monto con dos decimales y separadores del idioma del generador.
func (g *MarotoQuotationPDF) Money(v decimal.Decimal) string {
	return g.printer.Sprint(number.Decimal(v.InexactFloat64(), number.Scale(2)))
}
