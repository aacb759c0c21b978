package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gestium/gestium-api/internal/application/audit"
	"github.com/gestium/gestium-api/internal/domain/entity"
)

var _ audit.Exporter = (*CSVExporter)(nil)

// CSVExporter exporta eventos de auditoría a CSV (UTF-8, separador coma).
type CSVExporter struct{}

// NewCSVExporter construye el exportador.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// ContentType devuelve el MIME type del archivo generado.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// FileName devuelve el nombre de descarga sugerido.
func (e *CSVExporter) FileName() string {
	return fmt.Sprintf("auditoria_%s.csv", time.Now().Format("20060102"))
}

// Render genera el CSV con encabezado y una fila por evento.
func (e *CSVExporter) Render(eventos []*entity.EventoAuditoria) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columnasAuditoria); err != nil {
		return nil, fmt.Errorf("csv: encabezado: %w", err)
	}
	for _, ev := range eventos {
		if err := w.Write(filaAuditoria(ev)); err != nil {
			return nil, fmt.Errorf("csv: fila: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
