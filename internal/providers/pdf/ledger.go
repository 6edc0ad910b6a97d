package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

func (p *marotoProvider) GenerateLedger(ctx context.Context, data LedgerData) ([]byte, error) {
	_ = ctx
	m := maroto.New(newPageConfig())

	m.AddRow(12,
		text.NewCol(12, "CUSTOMER LEDGER", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(14,
		col.New(6).Add(
			text.New(data.CustomerName, props.Text{Style: fontstyle.Bold}),
		),
		col.New(6).Add(
			text.New(data.Period, props.Text{Align: align.Right, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Reference", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Debit", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Credit", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Balance", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	m.AddRow(7,
		text.NewCol(2, "", props.Text{Size: 9}),
		text.NewCol(4, "Opening Balance", props.Text{Size: 9, Style: fontstyle.Italic}),
		text.NewCol(2, "", props.Text{Size: 9}),
		text.NewCol(2, "", props.Text{Size: 9}),
		text.NewCol(2, data.OpeningBalance, props.Text{Size: 9, Align: align.Right}),
	)

	for _, row := range data.Rows {
		m.AddRow(7,
			text.NewCol(2, row.Date, props.Text{Size: 9}),
			text.NewCol(4, row.Reference, props.Text{Size: 9}),
			text.NewCol(2, row.Debited, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, row.Credited, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, row.Balance, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(9,
		col.New(6),
		text.NewCol(4, "Closing Balance", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(2, data.ClosingBalance, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
