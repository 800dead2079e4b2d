package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"github.com/andrei/cv-tailor/internal/types"
)

// PDFRenderer turns printable HTML into PDF bytes using headless Chrome.
type PDFRenderer struct {
	chromePath string
	timeout    time.Duration
}

// NewPDFRenderer creates a renderer. An empty chromePath lets chromedp find
// the browser on its own.
func NewPDFRenderer(chromePath string) *PDFRenderer {
	return &PDFRenderer{
		chromePath: chromePath,
		timeout:    60 * time.Second,
	}
}

// RenderHTMLToPDF renders a standalone HTML page to an A4 PDF.
func (r *PDFRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.timeout)
	defer cancelTimeout()

	// Chrome needs a file URL to apply @page rules reliably.
	tmpDir, err := os.MkdirTemp("", "cvtailor-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "document.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	var pdfBuf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return pdfBuf, nil
}

// RenderDocument builds the printable page for one document and renders it.
func (r *PDFRenderer) RenderDocument(ctx context.Context, kind DocKind, output types.GenerationOutput) ([]byte, error) {
	html, err := PrintableHTML(kind, kind.Pick(output))
	if err != nil {
		return nil, err
	}
	return r.RenderHTMLToPDF(ctx, html)
}

// RenderBoth renders the resume and the cover letter concurrently.
func (r *PDFRenderer) RenderBoth(ctx context.Context, output types.GenerationOutput) (resume, coverLetter []byte, err error) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		resume, err = r.RenderDocument(gctx, DocResume, output)
		return err
	})
	g.Go(func() error {
		var err error
		coverLetter, err = r.RenderDocument(gctx, DocCoverLetter, output)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return resume, coverLetter, nil
}
