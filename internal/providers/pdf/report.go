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

func (p *marotoProvider) GenerateBillReport(ctx context.Context, data ReportData) ([]byte, error) {
	_ = ctx
	m := maroto.New(newPageConfig())

	m.AddRow(12,
		text.NewCol(12, "INVOICE REPORT", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New(data.CompanyName, props.Text{Style: fontstyle.Bold}),
			text.New("GSTIN: "+data.CompanyGSTIN, props.Text{Top: 5, Size: 9}),
		),
		col.New(6).Add(
			text.New(data.Period, props.Text{Align: align.Right, Size: 9}),
			text.New("Generated: "+data.GeneratedOn, props.Text{Top: 5, Align: align.Right, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(2, "Bill No", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Date", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Customer", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Assessable", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "SGST", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "CGST", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "IGST", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, row := range data.Rows {
		m.AddRow(7,
			text.NewCol(2, row.BillNumber, props.Text{Size: 8}),
			text.NewCol(1, row.BillDate, props.Text{Size: 8}),
			text.NewCol(3, row.CustomerName, props.Text{Size: 8}),
			text.NewCol(2, row.Assessable, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, row.SGST, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(1, row.CGST, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, row.IGST, props.Text{Size: 8, Align: align.Right}),
		)
	}

	summary := []struct {
		label string
		value string
		bold  bool
	}{
		{"Invoices", data.TotalInvoices, false},
		{"Total Assessable", data.TotalAssessable, false},
		{"Total SGST", data.TotalSGST, false},
		{"Total CGST", data.TotalCGST, false},
		{"Total IGST", data.TotalIGST, false},
		{"Grand Total", data.GrandTotal, true},
	}
	for _, row := range summary {
		style := fontstyle.Normal
		if row.bold {
			style = fontstyle.Bold
		}
		m.AddRow(7,
			col.New(7),
			text.NewCol(3, row.label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, row.value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
