package http

import (
	"net/http"
	"time"

	"expensevis/internal/core"
	"expensevis/internal/importer"
)

// 10 MB cap on uploaded statements.
const maxImportSize = 10 << 20

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	page, err := s.expenses.ListExpenses(r.Context(), requestAccount(r), queryInt(r, "page", 1))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var rec core.ExpenseRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	rec.ID = ""

	id, err := s.expenses.SubmitExpense(r.Context(), requestAccount(r), rec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.DeleteExpense(r.Context(), requestAccount(r), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	schema, err := importSchema(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.expenses.ImportCSV(r.Context(), requestAccount(r), header.Filename, file, schema)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	schema, err := importSchema(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	format := importer.FormatCSV
	if r.URL.Query().Get("format") == "tsv" {
		format = importer.FormatTSV
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+importer.ExportFilename(time.Now(), format)+`"`)
	if err := s.expenses.ExportCSV(r.Context(), requestAccount(r), w, schema, format); err != nil {
		writeDomainError(w, r, err)
	}
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.expenses.GetBudget(r.Context(), requestAccount(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var cfg core.BudgetConfig
	if err := decodeJSON(r, &cfg); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.expenses.SaveBudget(r.Context(), requestAccount(r), cfg); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// importSchema resolves the schema query parameter, defaulting to the
// classic columns.
func importSchema(r *http.Request) (importer.Schema, error) {
	name := r.URL.Query().Get("schema")
	if name == "" {
		return importer.SchemaClassic, nil
	}
	return importer.SchemaByName(name)
}
