// Package export implementa los exportadores del historial de auditoría
// (XLSX, CSV y PDF) detrás del puerto audit.Exporter.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gestium/gestium-api/internal/application/audit"
	"github.com/gestium/gestium-api/internal/domain/entity"
)

var _ audit.Exporter = (*XLSXExporter)(nil)

// XLSXExporter exporta eventos de auditoría a una hoja Excel.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// ContentType devuelve el MIME type del archivo generado.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName devuelve el nombre de descarga sugerido.
func (e *XLSXExporter) FileName() string {
	return fmt.Sprintf("auditoria_%s.xlsx", time.Now().Format("20060102"))
}

// Render genera el XLSX con una fila de encabezado y una fila por evento.
func (e *XLSXExporter) Render(eventos []*entity.EventoAuditoria) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Auditoria"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: nueva hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range columnasAuditoria {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: encabezado: %w", err)
		}
	}
	for row, ev := range eventos {
		for colI, val := range filaAuditoria(ev) {
			cell, _ := excelize.CoordinatesToCellName(colI+1, row+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d: %w", row+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// columnasAuditoria es el orden de columnas común a XLSX y CSV.
var columnasAuditoria = []string{
	"Fecha", "Acción", "Recurso", "Recurso ID", "Severidad", "Actor", "IP",
}

func filaAuditoria(ev *entity.EventoAuditoria) []string {
	return []string{
		ev.CreatedAt.Format("2006-01-02 15:04:05"),
		ev.Accion,
		ev.RecursoTipo,
		ev.RecursoID,
		ev.Severidad,
		ev.ActorNombre,
		ev.IP,
	}
}
