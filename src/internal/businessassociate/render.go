// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package businessassociate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nullCell is shown for fields the remote system reports as null.
const nullCell = "-"

var cellEscaper = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"|", `\|`,
)

// RenderTable renders associates as a markdown table headed by the entity type.
//
// Example output for entityType "vendor":
//
//	### Vendor business associates (1)
//
//	| BAID |   NAME    | SAP VENDOR | SAP CUSTOMER | SAP COMPANY CODE |
//	|:----:|:---------:|:----------:|:------------:|:----------------:|
//	|  1   | Acme Corp |    V100    |      -       |       200        |
//
// Pipes in cell text are escaped and line breaks collapse to a space, so each
// associate stays on one row.
func RenderTable(entityType string, associates []BusinessAssociate) string {
	title := cases.Title(language.English).String(entityType)
	if len(associates) == 0 {
		return fmt.Sprintf("No %s business associates found\n", strings.ToLower(title))
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "### %s business associates (%d)\n\n", title, len(associates))

	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
	)
	table.Header([]string{"BAID", "Name", "SAP Vendor", "SAP Customer", "SAP Company Code"})

	rows := make([][]string, 0, len(associates))
	for _, ba := range associates {
		rows = append(rows, []string{
			strconv.Itoa(ba.BAID),
			escapeCell(ba.BAName),
			stringCell(ba.SAPVendor),
			stringCell(ba.SAPCustomer),
			intCell(ba.SAPCompanyCode),
		})
	}

	_ = table.Bulk(rows)
	_ = table.Render()
	return buf.String()
}

func stringCell(v *string) string {
	if v == nil {
		return nullCell
	}
	return escapeCell(*v)
}

func intCell(v *int) string {
	if v == nil {
		return nullCell
	}
	return strconv.Itoa(*v)
}

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}
