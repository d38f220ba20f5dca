// Package pdfgen renders the completion certificate handed to students after
// passing an exam or finishing a course.
package pdfgen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// CertificateData carries the fields stamped onto the certificate.
type CertificateData struct {
	Name   string
	Course string
	Date   string
}

// Certificate renders a single-page landscape A4 certificate and returns the
// PDF bytes.
func Certificate(data CertificateData) ([]byte, error) {
	if strings.TrimSpace(data.Name) == "" {
		return nil, fmt.Errorf("certificate name must not be empty")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", false)
	pdf.AddPage()

	width, height := pdf.GetPageSize()

	// Border frame.
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(30, 30, 30)
	pdf.Rect(10, 10, width-20, height-20, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(13, 13, width-26, height-26, "D")

	pdf.SetFont("Helvetica", "B", 34)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetXY(0, 45)
	pdf.CellFormat(width, 16, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(width, 10, "This certifies that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(width, 16, data.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(width, 10, "has successfully completed", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(25, 25, 25)
	pdf.CellFormat(width, 14, data.Course, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(width, 12, data.Date, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
