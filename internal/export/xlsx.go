package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"portfolio/internal"
)

var projectHeaders = []string{
	"id", "title", "short_description", "description", "preview_image", "images",
	"technologies", "demo_url", "review_name", "review_text", "review_rating",
}

// ProjectsToXLSX writes one row per project under a header row.
func ProjectsToXLSX(projects []internal.Project, outputPath string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	for i, h := range projectHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, p := range projects {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, p.ID)
		set(2, p.Title)
		set(3, p.ShortDescription)
		set(4, p.Description)
		set(5, p.PreviewImage)
		set(6, strings.Join(p.Images, "\n"))
		set(7, strings.Join(p.Technologies, ", "))
		set(8, p.DemoURL)
		if p.ClientReview != nil {
			set(9, p.ClientReview.Name)
			set(10, p.ClientReview.Text)
			set(11, p.ClientReview.Rating)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
