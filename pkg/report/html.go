package report

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/mediasweep/purgarr/pkg/analyzer"
	"github.com/mediasweep/purgarr/pkg/logger"
)

//go:embed templates/report.html.tmpl
var htmlTemplate string

var reportTemplate = template.Must(template.New("report").Parse(htmlTemplate))

// HTML renders the report as a standalone HTML document.
func (r *Reporter) HTML(ctx context.Context, result *analyzer.Result, generatedAt time.Time) ([]byte, error) {
	doc := r.build(ctx, result, generatedAt)

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("rendering html report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHTML renders the report into a timestamped file under the
// configured output directory and returns its path.
func (r *Reporter) WriteHTML(ctx context.Context, result *analyzer.Result) (string, error) {
	now := time.Now()
	out, err := r.HTML(ctx, result, now)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("purge_report_%s.html", now.Format("20060102_150405")))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("writing html report: %w", err)
	}

	logger.FromCtx(ctx).Infow("html report written", "path", path)
	return path, nil
}
