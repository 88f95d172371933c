// Package pdf renders invoices into single-page PDF documents. The layout is
// a fixed cursor-based design: a right-aligned title block, a Bill To block,
// a line-item table with a fixed row height, a bold total row, and a centered
// footer. There is deliberately no pagination — content past the bottom of
// the page is clipped.
package pdf

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/nyashahama/invoice-relay-backend/internal/invoice"
)

// Page geometry in points. The table columns match the layout contract the
// emailed invoices have always used: description is the one variable-width
// column, the three numeric columns are right-aligned.
const (
	pageLeft  = 50.0
	pageRight = 550.0
	topMargin = 50.0

	colDescX  = 50.0
	colDescW  = 240.0
	colQtyX   = 300.0
	colQtyW   = 60.0
	colRateX  = 370.0
	colRateW  = 70.0
	colAmtX   = 450.0
	colAmtW   = 80.0
	rowHeight = 20.0
)

// Engine implements invoice.Renderer on top of gofpdf.
type Engine struct {
	// Now supplies the document date and the embedded creation timestamp.
	// Overridden in tests to make output reproducible.
	Now func() time.Time
}

// NewEngine returns a ready-to-use Engine.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

// Render produces the invoice PDF. The gofpdf document streams its output
// through a pipe; Render suspends until the end of the stream or a backend
// error, which it propagates — a partial document is never returned. ctx
// cancellation aborts the wait.
func (e *Engine) Render(ctx context.Context, inv invoice.Invoice) (invoice.Document, error) {
	doc := e.build(inv)

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(doc.Output(pw))
	}()

	type rendered struct {
		data []byte
		err  error
	}
	done := make(chan rendered, 1)
	go func() {
		data, err := io.ReadAll(pr)
		done <- rendered{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		pr.CloseWithError(ctx.Err())
		return invoice.Document{}, fmt.Errorf("pdf: render %s: %w", inv.ID, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return invoice.Document{}, fmt.Errorf("pdf: render %s: %w", inv.ID, r.err)
		}
		return invoice.Document{
			Bytes:    r.data,
			Filename: invoice.Filename(inv.ID),
		}, nil
	}
}

// build enqueues all drawing operations for the invoice.
func (e *Engine) build(inv invoice.Invoice) *gofpdf.Fpdf {
	now := e.Now()

	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetCreationDate(now)
	// Uncompressed content streams keep the document byte-inspectable.
	doc.SetCompression(false)
	doc.SetMargins(pageLeft, topMargin, pageLeft)
	doc.SetAutoPageBreak(false, 0) // overflow clips; pagination is a non-goal
	doc.AddPage()

	// ── Title block ───────────────────────────────────────────────────────────
	y := topMargin
	doc.SetFont("Helvetica", "B", 24)
	doc.SetTextColor(0, 0, 0)
	cell(doc, pageLeft, y, pageRight-pageLeft, 24, "INVOICE", "R")
	y += 36

	doc.SetFont("Helvetica", "", 10)
	cell(doc, pageLeft, y, pageRight-pageLeft, 12, "Invoice ID: "+inv.ID, "R")
	y += 12
	cell(doc, pageLeft, y, pageRight-pageLeft, 12, "Date: "+now.Format("January 2, 2006"), "R")
	y += 30

	// ── Bill To block ─────────────────────────────────────────────────────────
	doc.SetFont("Helvetica", "B", 11)
	cell(doc, pageLeft, y, colDescW, 14, "Bill To:", "L")
	y += 14
	doc.SetFont("Helvetica", "", 11)
	cell(doc, pageLeft, y, colDescW, 14, inv.ClientName, "L")
	y += 14
	cell(doc, pageLeft, y, colDescW, 14, inv.ClientEmail, "L")
	y += 32

	// ── Table header ──────────────────────────────────────────────────────────
	headerTop := y
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(51, 51, 51)
	cell(doc, colDescX, headerTop, colDescW, 12, "Description", "L")
	cell(doc, colQtyX, headerTop, colQtyW, 12, "Qty", "R")
	cell(doc, colRateX, headerTop, colRateW, 12, "Rate", "R")
	cell(doc, colAmtX, headerTop, colAmtW, 12, "Amount", "R")

	doc.SetDrawColor(204, 204, 204)
	doc.Line(pageLeft, headerTop+16, pageRight, headerTop+16)

	// ── Line items ────────────────────────────────────────────────────────────
	// Fixed vertical advance per row; long descriptions do not grow the row.
	rowY := headerTop + 24
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	for _, li := range inv.LineItems {
		cell(doc, colDescX, rowY, colDescW, 12, li.Description, "L")
		cell(doc, colQtyX, rowY, colQtyW, 12, formatQuantity(li.Quantity), "R")
		cell(doc, colRateX, rowY, colRateW, 12, FormatAmount(li.Rate), "R")
		cell(doc, colAmtX, rowY, colAmtW, 12, FormatAmount(li.Amount()), "R")
		rowY += rowHeight
	}

	doc.Line(pageLeft, rowY+4, pageRight, rowY+4)

	// ── Total row ─────────────────────────────────────────────────────────────
	totalY := rowY + 16
	doc.SetFont("Helvetica", "B", 12)
	cell(doc, colRateX-80, totalY, 150, 14, "Total Due:", "R")
	cell(doc, colAmtX, totalY, colAmtW, 14, FormatAmount(inv.Total), "R")

	// ── Footer ────────────────────────────────────────────────────────────────
	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(136, 136, 136)
	cell(doc, pageLeft, totalY+50, pageRight-pageLeft, 11, "Thank you for your business.", "C")

	return doc
}

// cell draws a single aligned text cell at an absolute position.
func cell(doc *gofpdf.Fpdf, x, y, w, h float64, txt, align string) {
	doc.SetXY(x, y)
	doc.CellFormat(w, h, txt, "", 0, align, false, 0, "")
}
