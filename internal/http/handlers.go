package http

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"finboard/internal/core"
	"finboard/internal/dictionary"
	"finboard/internal/log"
	"finboard/internal/statement"
)

// maxUploadBytes caps statement uploads. Bank exports are small; anything
// bigger is a mistake or abuse.
const maxUploadBytes = 10 << 20

type transactionRow struct {
	Index    int
	Date     string
	Details  string
	Amount   string
	Category string
}

type summaryRow struct {
	Category string
	Total    string
}

type indexView struct {
	Categories   []string
	HasStatement bool
	Debits       []transactionRow
	Credits      []transactionRow
	Summary      []summaryRow
	CreditTotal  string
	SaveError    error
	Flash        string
}

func (s *Server) buildIndexView(flash string) indexView {
	v := indexView{
		Categories:   s.session.CategoryNames(),
		HasStatement: s.session.HasStatement(),
		SaveError:    s.session.LastSaveError(),
		Flash:        flash,
	}
	if !v.HasStatement {
		return v
	}

	for i, tx := range s.session.Transactions() {
		row := transactionRow{
			Index:    i,
			Date:     tx.Date.String(),
			Details:  tx.Details,
			Amount:   tx.Amount.String(),
			Category: tx.Category,
		}
		switch tx.Flow {
		case core.Debit:
			v.Debits = append(v.Debits, row)
		case core.Credit:
			v.Credits = append(v.Credits, row)
		}
	}
	for _, sum := range s.session.ExpenseSummary() {
		v.Summary = append(v.Summary, summaryRow{Category: sum.Category, Total: sum.Total.String()})
	}
	v.CreditTotal = s.session.CreditTotal().String()
	return v
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := s.buildIndexView(r.URL.Query().Get("flash"))
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("statement")
	if err != nil {
		s.logger.WarnContext(r.Context(), "Missing statement file", log.FieldError, err)
		s.renderError(w, http.StatusBadRequest, "No statement file in request")
		return
	}
	defer file.Close()

	n, err := s.session.Upload(r.Context(), file)
	if err != nil {
		var perr *statement.ParseError
		if errors.As(err, &perr) {
			s.logger.WarnContext(r.Context(), "Statement rejected",
				log.FieldOperation, log.OpUpload, log.FieldError, err)
			s.renderError(w, http.StatusUnprocessableEntity, "Statement rejected: "+perr.Error())
			return
		}
		s.logger.ErrorContext(r.Context(), "Statement upload failed", log.FieldError, err)
		s.renderError(w, http.StatusInternalServerError, "Error reading statement")
		return
	}

	s.redirectWithFlash(w, r, fmt.Sprintf("Loaded %d transactions", n))
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	name := strings.TrimSpace(r.Form.Get("name"))
	if err := s.session.AddCategory(r.Context(), name); err != nil {
		s.logger.WarnContext(r.Context(), "Category rejected",
			log.FieldCategory, name, log.FieldError, err)
		s.renderError(w, http.StatusUnprocessableEntity, "Invalid category name")
		return
	}

	s.redirectWithFlash(w, r, "Category added")
}

// handleEdits applies category overrides from the statement table. Form
// fields are named category_<row index>.
func (s *Server) handleEdits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	edits := make(map[int]string)
	for field, values := range r.PostForm {
		idxStr, ok := strings.CutPrefix(field, "category_")
		if !ok || len(values) == 0 {
			continue
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			continue
		}
		edits[idx] = strings.TrimSpace(values[0])
	}

	learned, err := s.session.ApplyEdits(r.Context(), edits)
	if err != nil {
		if errors.Is(err, dictionary.ErrUnknownCategory) {
			s.renderError(w, http.StatusUnprocessableEntity, "Unknown category")
			return
		}
		s.logger.ErrorContext(r.Context(), "Applying edits failed", log.FieldError, err)
		s.renderError(w, http.StatusInternalServerError, "Error applying edits")
		return
	}

	flash := "Categories updated"
	if learned > 0 {
		flash = fmt.Sprintf("Categories updated, %d keywords learned", learned)
	}
	s.redirectWithFlash(w, r, flash)
}

func (s *Server) redirectWithFlash(w http.ResponseWriter, r *http.Request, flash string) {
	http.Redirect(w, r, "/?flash="+url.QueryEscape(flash), http.StatusSeeOther)
}

func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
}
