// Package exporter generates spreadsheet reports over the billing data.
package exporter

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"subpix/internal/billing"
)

// paymentsSheet is the sheet name of the payments report.
const paymentsSheet = "Pagamentos"

// PaymentsReport writes an xlsx workbook with one row per payment, joined
// with client and plan names, to w. Payments from deleted clients appear
// with a blank client column.
func PaymentsReport(w io.Writer, payments []billing.Payment, clients []billing.Client, plans []billing.Plan) error {
	clientByID := make(map[uuid.UUID]billing.Client, len(clients))
	for _, c := range clients {
		clientByID[c.ID] = c
	}
	planByID := make(map[uuid.UUID]billing.Plan, len(plans))
	for _, p := range plans {
		planByID[p.ID] = p
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(paymentsSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Data", "Cliente", "Telefone", "Plano", "Valor (R$)", "Método"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(paymentsSheet, cell, h); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(paymentsSheet, "A1", lastHeader, headerStyle)
	}

	for row, p := range payments {
		client := clientByID[p.ClientID]
		var planName string
		if plan, ok := planByID[client.PlanID]; ok {
			planName = plan.Name
		}

		values := []interface{}{
			p.PaidOn.String(),
			client.Name,
			client.Phone,
			planName,
			p.Amount.StringFixed(2),
			p.Method,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(paymentsSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
