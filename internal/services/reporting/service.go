package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"dq-report-service/internal/models"
	"dq-report-service/internal/services/dq"
	"dq-report-service/internal/services/email"
	"dq-report-service/internal/services/inapp"
)

type PDFRenderer interface {
	Render(report dq.Report) ([]byte, error)
}

type RenderStore interface {
	Create(render *models.ReportRender) error
	ListByUpload(uploadID string, limit int) ([]models.ReportRender, error)
}

// DQReportResult is a rendered DQ email. PDF is nil when no attachment could
// be produced; PDFErr then says why, if anything failed.
type DQReportResult struct {
	email.Rendered
	PDF    []byte
	PDFErr error
}

// Service ties the report pipeline to its three composers and records every
// rendered email in the render history.
type Service struct {
	emails  *email.Composer
	pdf     PDFRenderer
	inapp   *inapp.Composer
	renders RenderStore
	pred    dq.FailurePredicate
}

func NewService(emails *email.Composer, pdf PDFRenderer, renders RenderStore, pred dq.FailurePredicate) *Service {
	if pred == nil {
		pred = dq.FailingRows
	}
	return &Service{
		emails:  emails,
		pdf:     pdf,
		inapp:   inapp.NewComposer(),
		renders: renders,
		pred:    pred,
	}
}

func (s *Service) Report(meta models.UploadMeta, result *models.DataQualityCheck) dq.Report {
	return dq.BuildReport(meta, result, s.pred)
}

func (s *Service) InviteUser(in email.InviteUser) (email.Rendered, error) {
	out, err := s.emails.InviteUser(in)
	if err != nil {
		return out, err
	}
	s.record(&models.ReportRender{Kind: models.RenderInviteUser}, out)
	return out, nil
}

func (s *Service) UploadSuccess(meta models.UploadMeta) (email.Rendered, error) {
	out, err := s.emails.UploadSuccess(meta)
	if err != nil {
		return out, err
	}
	s.record(&models.ReportRender{Kind: models.RenderUploadSuccess, UploadID: meta.UploadID, Dataset: meta.Dataset}, out)
	return out, nil
}

func (s *Service) CheckSuccess(meta models.UploadMeta) (email.Rendered, error) {
	out, err := s.emails.CheckSuccess(meta)
	if err != nil {
		return out, err
	}
	s.record(&models.ReportRender{Kind: models.RenderCheckSuccess, UploadID: meta.UploadID, Dataset: meta.Dataset}, out)
	return out, nil
}

func (s *Service) MasterDataRelease(in email.MasterDataRelease) (email.Rendered, error) {
	out, err := s.emails.MasterDataRelease(in)
	if err != nil {
		return out, err
	}
	s.record(&models.ReportRender{Kind: models.RenderMasterDataRelease, Dataset: in.Country}, out)
	return out, nil
}

// DQReport renders the full report email. A PDF is attached only when a
// result is present; PDF failures are logged and never fail the email.
func (s *Service) DQReport(meta models.UploadMeta, result *models.DataQualityCheck) (DQReportResult, error) {
	report := s.Report(meta, result)

	out, err := s.emails.DQReport(report)
	if err != nil {
		return DQReportResult{}, err
	}
	res := DQReportResult{Rendered: out}

	if result != nil && s.pdf != nil {
		data, err := s.renderPDF(report)
		if err != nil {
			log.Printf("dq report %s: pdf generation failed, sending without attachment: %v", meta.UploadID, err)
			res.PDFErr = err
		} else {
			res.PDF = data
		}
	}

	render := &models.ReportRender{
		Kind:        models.RenderDQReport,
		UploadID:    meta.UploadID,
		Dataset:     meta.Dataset,
		RowsFailed:  report.Summary.RowsFailed,
		PDFAttached: res.PDF != nil,
	}
	if res.PDFErr != nil {
		render.PDFError = res.PDFErr.Error()
	}
	if summary, err := json.Marshal(report.Summary); err == nil {
		render.Summary = summary
	}
	s.record(render, out)
	return res, nil
}

// renderPDF turns a panicking renderer into an error so the email still goes out.
func (s *Service) renderPDF(report dq.Report) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("pdf renderer panicked: %v", r)
		}
	}()
	return s.pdf.Render(report)
}

// PDF renders only the printable report.
func (s *Service) PDF(meta models.UploadMeta, result *models.DataQualityCheck) ([]byte, error) {
	if s.pdf == nil {
		return nil, fmt.Errorf("pdf rendering is not configured")
	}
	return s.pdf.Render(s.Report(meta, result))
}

func (s *Service) Accordion(meta models.UploadMeta, result *models.DataQualityCheck, page, pageSize int) inapp.Accordion {
	return s.inapp.Accordion(s.Report(meta, result), page, pageSize)
}

func (s *Service) DrillDown(meta models.UploadMeta, result *models.DataQualityCheck, assertion string, failedRows map[string][]string) inapp.DrillDown {
	return s.inapp.DrillDown(s.Report(meta, result), assertion, failedRows)
}

func (s *Service) Renders(uploadID string, limit int) ([]models.ReportRender, error) {
	return s.renders.ListByUpload(uploadID, limit)
}

// OnUploadChecked is the completion hook for upload watches.
func (s *Service) OnUploadChecked(_ context.Context, meta models.UploadMeta, result *models.DataQualityCheck) {
	res, err := s.DQReport(meta, result)
	if err != nil {
		log.Printf("dq report %s: render after checks completed: %v", meta.UploadID, err)
		return
	}
	log.Printf("dq report %s: rendered after checks completed (pdf=%t)", meta.UploadID, res.PDF != nil)
}

func (s *Service) record(render *models.ReportRender, out email.Rendered) {
	if s.renders == nil {
		return
	}
	render.HTML = out.HTML
	render.Text = out.Text
	if err := s.renders.Create(render); err != nil {
		log.Printf("render history: store %s for %q: %v", render.Kind, render.UploadID, err)
	}
}
