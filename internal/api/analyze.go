package api

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sonamtobgay/bankrecon/internal/extractor"
	"github.com/sonamtobgay/bankrecon/internal/ledger"
	"github.com/sonamtobgay/bankrecon/internal/statement"
)

// excelDetails describes an uploaded data entry workbook before a run.
type excelDetails struct {
	FileType        string   `json:"file_type"`
	Status          string   `json:"status"`
	TotalRows       int      `json:"total_rows"`
	Columns         []string `json:"columns"`
	HasChequeColumn bool     `json:"has_cheque_column"`
	HasAmountColumn bool     `json:"has_amount_column"`
	ValidEntries    int      `json:"valid_entries"`
	FileSize        string   `json:"file_size"`
}

// pdfDetails describes an uploaded bank statement before a run.
type pdfDetails struct {
	FileType         string `json:"file_type"`
	Status           string `json:"status"`
	TotalPages       int    `json:"total_pages"`
	TablesFound      int    `json:"tables_found"`
	TransactionCount int    `json:"transaction_count"`
	FileSize         string `json:"file_size"`
}

// handleAnalyze inspects an uploaded file and reports what a reconciliation
// run would see, so the operator can catch a wrong file before running.
func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "file is required")
	}

	fileType := c.FormValue("file_type", "excel")
	size := humanSize(fh.Size)

	switch fileType {
	case "excel":
		src, err := fh.Open()
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("failed to read upload: %v", err))
		}
		defer src.Close()

		l, err := ledger.Load(src)
		if err != nil {
			return c.JSON(excelDetails{
				FileType: "excel",
				Status:   fmt.Sprintf("Error: %v", err),
				Columns:  []string{},
				FileSize: size,
			})
		}
		return c.JSON(excelDetails{
			FileType:        "excel",
			Status:          "File read successfully",
			TotalRows:       len(l.Entries),
			Columns:         l.Columns,
			HasChequeColumn: true,
			HasAmountColumn: true,
			ValidEntries:    len(l.Filtered()),
			FileSize:        size,
		})

	case "pdf":
		tmpPath := filepath.Join(os.TempDir(), "analyze-"+uuid.NewString()+".pdf")
		if err := c.SaveFile(fh, tmpPath); err != nil {
			return errorJSON(c, fiber.StatusInternalServerError, fmt.Sprintf("failed to save upload: %v", err))
		}
		defer os.Remove(tmpPath)

		pages, err := extractor.ExtractTables(tmpPath)
		if err != nil {
			return c.JSON(pdfDetails{
				FileType: "pdf",
				Status:   fmt.Sprintf("Error reading file: %v", err),
				FileSize: size,
			})
		}

		txns := statement.Parse(pages, s.Layout)
		tables := 0
		if len(txns) > 0 {
			tables = 1
		}
		return c.JSON(pdfDetails{
			FileType:         "pdf",
			Status:           "File read successfully",
			TotalPages:       len(pages),
			TablesFound:      tables,
			TransactionCount: len(txns),
			FileSize:         size,
		})
	}

	return errorJSON(c, fiber.StatusBadRequest, fmt.Sprintf("unknown file type %q", fileType))
}

func humanSize(n int64) string {
	mb := float64(n) / (1 << 20)
	if mb > 1 {
		return fmt.Sprintf("%.2f MB", mb)
	}
	return fmt.Sprintf("%.2f KB", float64(n)/(1<<10))
}
