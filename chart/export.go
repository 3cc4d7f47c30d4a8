package chart

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/bitmark-inc/covid-19/schema"
)

const defaultSheet = "Sheet1"

// ExportXLSX - save the chart data as a workbook, one sheet per chart
func ExportXLSX(path string, overlay schema.Overlay) error {
	if len(overlay.Series) == 0 {
		return ErrNoSeries
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range overlay.Series {
		sheet := s.Label
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		if err := writeSeries(f, sheet, s); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx file %s: %w", path, err)
	}

	log.WithFields(log.Fields{"prefix": logPrefix, "path": path}).Info("chart data exported")
	return nil
}

func writeSeries(f *excelize.File, sheet string, s schema.ChartSeries) error {
	if err := f.SetCellValue(sheet, "A1", s.XTitle); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", s.YTitle); err != nil {
		return err
	}

	for i, d := range s.Dates {
		dateCell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(sheet, dateCell, d.Format(schema.DateLayout)); err != nil {
			return err
		}
		if math.IsNaN(s.Values[i]) {
			continue
		}
		valueCell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := f.SetCellValue(sheet, valueCell, s.Values[i]); err != nil {
			return err
		}
	}
	return nil
}
