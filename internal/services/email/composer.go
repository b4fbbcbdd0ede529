package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"

	"dq-report-service/internal/models"
	"dq-report-service/internal/services/dq"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Options carries everything the templates need from configuration.
type Options struct {
	PublicAppURL string
	ProductName  string
}

type Rendered struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

type InviteUser struct {
	DisplayName string
	Email       string
	Groups      []string
}

type MasterDataRelease struct {
	Added      int
	Modified   int
	Deleted    int
	Rows       int
	Country    string
	UpdateDate string
	Version    int
}

// Composer renders the transactional emails. It is safe for concurrent use.
type Composer struct {
	opts Options
	html *htmltemplate.Template
	text *texttemplate.Template
}

type page struct {
	Title   string
	Product string
	AppURL  string
	Link    string
	Data    any
}

func NewComposer(opts Options) (*Composer, error) {
	opts.PublicAppURL = strings.TrimRight(opts.PublicAppURL, "/")
	if opts.ProductName == "" {
		opts.ProductName = "Data Ingestion Portal"
	}

	funcs := map[string]any{
		"percent": dq.FormatPercent,
	}

	html, err := htmltemplate.New("email").Funcs(funcs).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.New("email").Funcs(funcs).ParseFS(templateFS, "templates/*.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}

	return &Composer{opts: opts, html: html, text: text}, nil
}

func (c *Composer) InviteUser(in InviteUser) (Rendered, error) {
	return c.render("invite_user", page{
		Title: "Welcome to " + c.opts.ProductName,
		Link:  c.link(),
		Data:  in,
	})
}

func (c *Composer) UploadSuccess(meta models.UploadMeta) (Rendered, error) {
	return c.render("upload_success", page{
		Title: "Upload received: " + meta.Dataset,
		Link:  c.link("upload", meta.UploadID),
		Data:  meta,
	})
}

func (c *Composer) CheckSuccess(meta models.UploadMeta) (Rendered, error) {
	return c.render("check_success", page{
		Title: "Data quality checks completed: " + meta.Dataset,
		Link:  c.link("upload", meta.UploadID),
		Data:  meta,
	})
}

func (c *Composer) DQReport(report dq.Report) (Rendered, error) {
	return c.render("dq_report", page{
		Title: "Data quality report: " + report.Meta.Dataset,
		Link:  c.link("upload", report.Meta.UploadID),
		Data:  report,
	})
}

func (c *Composer) MasterDataRelease(in MasterDataRelease) (Rendered, error) {
	return c.render("master_data_release", page{
		Title: "Master data release for " + in.Country,
		Link:  c.link("master-data", in.Country),
		Data:  in,
	})
}

func (c *Composer) render(name string, p page) (Rendered, error) {
	p.Product = c.opts.ProductName
	p.AppURL = c.opts.PublicAppURL

	var html, text bytes.Buffer
	if err := c.html.ExecuteTemplate(&html, name+".html.tmpl", p); err != nil {
		return Rendered{}, fmt.Errorf("render %s html: %w", name, err)
	}
	if err := c.text.ExecuteTemplate(&text, name+".txt.tmpl", p); err != nil {
		return Rendered{}, fmt.Errorf("render %s text: %w", name, err)
	}
	return Rendered{HTML: html.String(), Text: strings.TrimSpace(text.String()) + "\n"}, nil
}

// link builds an absolute portal URL, or "" when no public URL is configured.
func (c *Composer) link(segments ...string) string {
	if c.opts.PublicAppURL == "" {
		return ""
	}
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		if s == "" {
			continue
		}
		escaped = append(escaped, url.PathEscape(s))
	}
	if len(escaped) == 0 {
		return c.opts.PublicAppURL
	}
	return c.opts.PublicAppURL + "/" + strings.Join(escaped, "/")
}
