// Package api exposes the reconciliation pipeline over HTTP: file uploads
// in, a downloadable workbook plus summary statistics out.
package api

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"

	"github.com/sonamtobgay/bankrecon/internal/extractor"
	"github.com/sonamtobgay/bankrecon/internal/history"
	"github.com/sonamtobgay/bankrecon/internal/ledger"
	"github.com/sonamtobgay/bankrecon/internal/models"
	"github.com/sonamtobgay/bankrecon/internal/recon"
	"github.com/sonamtobgay/bankrecon/internal/report"
	"github.com/sonamtobgay/bankrecon/internal/statement"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// Server wires the reconciliation pipeline behind the HTTP surface.
type Server struct {
	ReportsDir string
	Store      history.Store
	Layout     statement.Layout
}

func New(reportsDir string, store history.Store) *Server {
	return &Server{
		ReportsDir: reportsDir,
		Store:      store,
		Layout:     statement.BankOfBhutan,
	}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "bankrecon",
		BodyLimit: 32 << 20,
	})
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/api/health", s.handleHealth)
	app.Post("/api/reconcile", s.handleReconcile)
	app.Post("/api/analyze", s.handleAnalyze)
	app.Get("/api/reports", s.handleReports)
	app.Get("/api/download/:filename", s.handleDownload)
	app.Get("/api/view/:filename", s.handleView)

	return app
}

// reconcileResponse is the JSON reply of /api/reconcile. The binary
// contract: either a complete report (success + filename + stats) or an
// explicit error, never a partial result.
type reconcileResponse struct {
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Filename string        `json:"filename,omitempty"`
	Stats    *models.Stats `json:"stats,omitempty"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "version": Version})
}

func (s *Server) handleReconcile(c *fiber.Ctx) error {
	ledgerFile, err := c.FormFile("data_entry")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "data_entry file is required")
	}
	statementFile, err := c.FormFile("bank_statement")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bank_statement file is required")
	}

	src, err := ledgerFile.Open()
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("failed to read data_entry upload: %v", err))
	}
	defer src.Close()

	l, err := ledger.Load(src)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	// The PDF library wants a file on disk.
	pdfPath := filepath.Join(os.TempDir(), "statement-"+uuid.NewString()+".pdf")
	if err := c.SaveFile(statementFile, pdfPath); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, fmt.Sprintf("failed to save bank_statement upload: %v", err))
	}
	defer os.Remove(pdfPath)

	pages, err := extractor.ExtractTables(pdfPath)
	if err != nil {
		return errorJSON(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	txns := statement.Parse(pages, s.Layout)

	entries := l.Filtered()
	cats := recon.Reconcile(entries, txns, s.Layout.BankName)
	stats := recon.ComputeStats(entries, txns, cats)

	filename := "Reconciliation_" + time.Now().Format("20060102_150405") + ".xlsx"
	outPath := filepath.Join(s.ReportsDir, filename)
	data := &report.Data{
		Categories:    cats,
		Stats:         stats,
		LedgerColumns: l.Columns,
		Transactions:  txns,
	}
	if err := report.NewWriter().WriteToFile(outPath, data); err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := s.Store.Append(history.Record{
		Filename:          filename,
		Timestamp:         time.Now().Format(time.RFC3339),
		DataEntryFile:     ledgerFile.Filename,
		BankStatementFile: statementFile.Filename,
		Stats:             stats,
	}); err != nil {
		// The report exists; a metadata write failure must not fail the run.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	return c.JSON(reconcileResponse{Success: true, Filename: filename, Stats: &stats})
}

func (s *Server) handleReports(c *fiber.Ctx) error {
	records, err := s.Store.All()
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err.Error())
	}
	// Most recent first for display.
	return c.JSON(history.Reversed(records))
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	path, ok := s.reportPath(c.Params("filename"))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "report not found")
	}
	return c.Download(path)
}

func (s *Server) handleView(c *fiber.Ctx) error {
	path, ok := s.reportPath(c.Params("filename"))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "report not found")
	}
	return c.SendFile(path)
}

// reportPath resolves a report filename inside the reports directory,
// refusing anything that climbs out of it.
func (s *Server) reportPath(name string) (string, bool) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", false
	}
	path := filepath.Join(s.ReportsDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(reconcileResponse{Success: false, Error: msg})
}
