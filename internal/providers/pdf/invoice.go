package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type marotoProvider struct{}

func New() Provider {
	return &marotoProvider{}
}

func (p *marotoProvider) GenerateInvoice(ctx context.Context, data InvoiceData) ([]byte, error) {
	_ = ctx
	m := maroto.New(newPageConfig())

	m.AddRow(12,
		text.NewCol(12, "TAX INVOICE", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New(data.CompanyName, props.Text{Style: fontstyle.Bold}),
			text.New(data.CompanyAddress, props.Text{Top: 5, Size: 9}),
			text.New("GSTIN: "+data.CompanyGSTIN, props.Text{Top: 14, Size: 9}),
		),
		col.New(6).Add(
			text.New("Bill No: "+data.BillNumber, props.Text{Align: align.Right}),
			text.New("Date: "+data.BillDate, props.Text{Top: 5, Align: align.Right}),
		),
	)

	m.AddRow(22,
		col.New(12).Add(
			text.New("Bill To", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(data.CustomerName, props.Text{Top: 5}),
			text.New(data.CustomerAddress, props.Text{Top: 10, Size: 9}),
			text.New(gstLine(data.CustomerGSTIN), props.Text{Top: 16, Size: 9}),
		),
	)

	m.AddRow(8,
		text.NewCol(5, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "HSN", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(8,
			text.NewCol(5, item.Name, props.Text{Size: 9}),
			text.NewCol(2, item.HSNCode, props.Text{Size: 9}),
			text.NewCol(1, item.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitRate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Total, props.Text{Size: 9, Align: align.Right}),
		)
	}

	totals := []struct {
		label string
		value string
		bold  bool
	}{
		{"Assessable Value", data.AssessableValue, false},
		{"SGST", data.SGST, false},
		{"CGST", data.CGST, false},
		{"IGST", data.IGST, false},
		{"Grand Total", data.GrandTotal, true},
	}
	for _, row := range totals {
		if row.value == "" {
			continue
		}
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

	if data.BankDetails != "" {
		m.AddRow(16,
			text.NewCol(12, data.BankDetails, props.Text{Size: 8, Top: 4}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func newPageConfig() *entity.Config {
	return config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
}

func gstLine(gstin string) string {
	if gstin == "" {
		return "Unregistered"
	}
	return "GSTIN: " + gstin
}
