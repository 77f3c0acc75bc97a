// internal/api/handlers/report_handler.go
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"reconciliation-service/internal/api/responses"
	"reconciliation-service/internal/core/export"
	"reconciliation-service/internal/core/reconciliation"
	"reconciliation-service/internal/core/reports"
	"reconciliation-service/internal/domain"

	"github.com/gin-gonic/gin"
)

const exportPrefix = "notas_fiscais"

// ReportHandler handles reconciliation report requests.
type ReportHandler struct {
	service      reconciliation.Service
	store        reports.Store
	maxDocuments int
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service reconciliation.Service, store reports.Store, maxDocuments int) *ReportHandler {
	return &ReportHandler{
		service:      service,
		store:        store,
		maxDocuments: maxDocuments,
	}
}

// DuplicatesRequest is the body of a duplicate check.
type DuplicatesRequest struct {
	Existing []domain.FiscalDocument `json:"existing"`
	Incoming []domain.FiscalDocument `json:"incoming"`
}

// HandleBuildReport reconciles and summarizes a batch of documents.
func (h *ReportHandler) HandleBuildReport(c *gin.Context) {
	var docs []domain.FiscalDocument
	if err := c.ShouldBindJSON(&docs); err != nil {
		responses.Error(c, http.StatusBadRequest, "Lista de documentos inválida", err.Error())
		return
	}
	if h.maxDocuments > 0 && len(docs) > h.maxDocuments {
		responses.Error(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("Limite de %d documentos excedido", h.maxDocuments))
		return
	}

	report, err := h.service.BuildReport(c.Request.Context(), docs)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro na conciliação dos documentos", err.Error())
		return
	}
	h.store.Save(report)

	responses.Success(c, report, "Conciliação concluída com sucesso")
}

// HandleGetReport returns a previously generated report.
func (h *ReportHandler) HandleGetReport(c *gin.Context) {
	report, ok := h.lookup(c)
	if !ok {
		return
	}
	responses.Success(c, report, "Relatório encontrado")
}

// HandleExportReport renders a previously generated report as xlsx or csv.
func (h *ReportHandler) HandleExportReport(c *gin.Context) {
	renderer, err := export.RendererFor(c.DefaultQuery("format", "xlsx"))
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Formato de exportação não suportado", err.Error())
		return
	}

	report, ok := h.lookup(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, export.ReportTables(report)...); err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar o arquivo de exportação", err.Error())
		return
	}

	fileName := export.FileName(exportPrefix, report.GeneratedAt, renderer)
	responses.Attachment(c, fileName, renderer.ContentType(), buf.Bytes())
}

// HandleDuplicates lists incoming documents that were already imported.
func (h *ReportHandler) HandleDuplicates(c *gin.Context) {
	var req DuplicatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida", err.Error())
		return
	}

	duplicates := h.service.FindDuplicates(req.Existing, req.Incoming)
	if duplicates == nil {
		duplicates = []domain.FiscalDocument{}
	}
	responses.Success(c, duplicates, fmt.Sprintf("%d documento(s) duplicado(s)", len(duplicates)))
}

func (h *ReportHandler) lookup(c *gin.Context) (domain.Report, bool) {
	report, err := h.store.Get(c.Param("id"))
	if errors.Is(err, reports.ErrReportNotFound) {
		responses.Error(c, http.StatusNotFound, "Relatório não encontrado", err.Error())
		return domain.Report{}, false
	}
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao recuperar o relatório", err.Error())
		return domain.Report{}, false
	}
	return report, true
}
