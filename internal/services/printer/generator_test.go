package printer

import (
	"bytes"
	"testing"
)

func TestGenerateLabelsPDF(t *testing.T) {
	labels := []Label{
		{SerialNumber: "RBT-SN-01-88401", DeviceName: "RangBot Basic 1", MemberID: "MBR-2025-00001"},
		{SerialNumber: "RBT-SN-01-88402", DeviceName: "RangBot Basic 2", MemberID: "MBR-2025-00001"},
		{SerialNumber: "RBT-SN-01-88403", DeviceName: "RangBot Pro 1", MemberID: "MBR-2025-00001"},
	}

	pdfBytes, err := GenerateLabelsPDF(labels, DefaultSheet)
	if err != nil {
		t.Fatalf("GenerateLabelsPDF failed: %v", err)
	}

	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, got prefix %q", pdfBytes[:4])
	}
	if len(pdfBytes) < 1000 {
		t.Errorf("PDF suspiciously small: %d bytes", len(pdfBytes))
	}
}

func TestGenerateLabelsPDFMultiPage(t *testing.T) {
	// 12 labels on a 2x5 sheet should spill to a second page
	labels := make([]Label, 12)
	for i := range labels {
		labels[i] = Label{
			SerialNumber: "RBT-SN-01-88401",
			DeviceName:   "RangBot Basic 1",
			MemberID:     "MBR-2025-00001",
		}
	}

	pdfBytes, err := GenerateLabelsPDF(labels, DefaultSheet)
	if err != nil {
		t.Fatalf("GenerateLabelsPDF failed: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
}

func TestGenerateLabelsPDFEmpty(t *testing.T) {
	if _, err := GenerateLabelsPDF(nil, DefaultSheet); err == nil {
		t.Error("expected error for empty label batch")
	}
}
