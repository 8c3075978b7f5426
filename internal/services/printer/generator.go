package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Label is one device sticker: the QR encodes the serial so field staff can
// scan it during installation.
type Label struct {
	SerialNumber string
	DeviceName   string
	MemberID     string
}

// SheetConfig holds the label grid layout for an A4 sheet
type SheetConfig struct {
	Cols       int
	Rows       int
	MarginTop  float64
	MarginLeft float64
	GapX       float64
	GapY       float64
}

// DefaultSheet is a 2x5 grid matching the sticker stock shipped with devices
var DefaultSheet = SheetConfig{
	Cols:       2,
	Rows:       5,
	MarginTop:  10,
	MarginLeft: 10,
	GapX:       4,
	GapY:       4,
}

// GenerateLabelsPDF renders QR labels for a batch of provisioned devices
func GenerateLabelsPDF(labels []Label, cfg SheetConfig) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels to generate")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "B", 10)

	// A4 dimensions
	pageWidth, pageHeight := 210.0, 297.0

	totalGapX := float64(cfg.Cols-1) * cfg.GapX
	totalGapY := float64(cfg.Rows-1) * cfg.GapY

	availW := pageWidth - (cfg.MarginLeft * 2)
	availH := pageHeight - (cfg.MarginTop * 2)

	labelW := (availW - totalGapX) / float64(cfg.Cols)
	labelH := (availH - totalGapY) / float64(cfg.Rows)

	labelsPerPage := cfg.Cols * cfg.Rows

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		indexOnPage := i % labelsPerPage
		col := indexOnPage % cfg.Cols
		row := indexOnPage / cfg.Cols

		x := cfg.MarginLeft + float64(col)*(labelW+cfg.GapX)
		y := cfg.MarginTop + float64(row)*(labelH+cfg.GapY)

		qrPng, err := qrcode.Encode(label.SerialNumber, qrcode.Medium, 256)
		if err != nil {
			return nil, err
		}

		imgName := fmt.Sprintf("qr_%d", i)
		imgOptions := gofpdf.ImageOptions{
			ImageType: "PNG",
			ReadDpi:   true,
		}
		reader := bytes.NewReader(qrPng)
		_ = pdf.RegisterImageOptionsReader(imgName, imgOptions, reader)

		// QR centered, 60% of label height, leaving room for two text lines
		qrSize := labelH * 0.6
		if qrSize > labelW {
			qrSize = labelW * 0.9
		}

		qrX := x + (labelW-qrSize)/2
		qrY := y + (labelH-qrSize)/2 - 4

		pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, imgOptions, 0, "")

		// Serial number below the QR
		pdf.SetXY(x, y+labelH-11)
		pdf.SetFontSize(9)
		pdf.CellFormat(labelW, 5, label.SerialNumber, "", 0, "C", false, 0, "")

		// Device name and owning member on the bottom line
		pdf.SetXY(x, y+labelH-6)
		pdf.SetFontSize(7)
		pdf.CellFormat(labelW, 4, fmt.Sprintf("%s / %s", label.DeviceName, label.MemberID), "", 0, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
