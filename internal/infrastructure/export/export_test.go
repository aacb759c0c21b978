package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/infrastructure/export"
)

func eventosDePrueba() []*entity.EventoAuditoria {
	fecha := time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)
	return []*entity.EventoAuditoria{
		{
			ID: "ev-1", EmpresaID: "e-1", Accion: "crear", RecursoTipo: "factura",
			RecursoID: "f-1", Severidad: entity.SeveridadInfo, ActorNombre: "Ana",
			IP: "10.0.0.1", CreatedAt: fecha,
		},
		{
			ID: "ev-2", EmpresaID: "e-1", Accion: "eliminar", RecursoTipo: "rol",
			Severidad: entity.SeveridadCritical, ActorNombre: "Luis", CreatedAt: fecha,
		},
	}
}

func TestCSVExporter(t *testing.T) {
	e := export.NewCSVExporter()

	data, err := e.Render(eventosDePrueba())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "encabezado + una fila por evento")
	assert.Equal(t, "Fecha", rows[0][0])
	assert.Equal(t, []string{"2026-03-10 15:04:05", "crear", "factura", "f-1", "INFO", "Ana", "10.0.0.1"}, rows[1])
	assert.Equal(t, "CRITICAL", rows[2][4])

	assert.Equal(t, "text/csv; charset=utf-8", e.ContentType())
	assert.True(t, strings.HasPrefix(e.FileName(), "auditoria_"))
	assert.True(t, strings.HasSuffix(e.FileName(), ".csv"))
}

func TestXLSXExporter(t *testing.T) {
	e := export.NewXLSXExporter()

	data, err := e.Render(eventosDePrueba())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// el buffer debe ser un workbook legible con la hoja y las filas esperadas
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Auditoria")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "crear", rows[1][1])
	assert.Equal(t, "eliminar", rows[2][1])

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", e.ContentType())
	assert.True(t, strings.HasSuffix(e.FileName(), ".xlsx"))
}

func TestPDFExporter(t *testing.T) {
	e := export.NewPDFExporter()

	data, err := e.Render(eventosDePrueba())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "el buffer debe ser un PDF")

	assert.Equal(t, "application/pdf", e.ContentType())
	assert.True(t, strings.HasSuffix(e.FileName(), ".pdf"))
}

func TestExporters_SinEventos(t *testing.T) {
	// sin filas los tres formatos igual producen un archivo válido no vacío
	csvData, err := export.NewCSVExporter().Render(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, csvData)

	xlsxData, err := export.NewXLSXExporter().Render(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, xlsxData)

	pdfData, err := export.NewPDFExporter().Render(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfData)
}
