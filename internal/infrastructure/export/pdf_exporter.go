package export

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/gestium/gestium-api/internal/application/audit"
	"github.com/gestium/gestium-api/internal/domain/entity"
)

var _ audit.Exporter = (*PDFExporter)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFExporter exporta eventos de auditoría a un PDF tabular (Maroto v2).
type PDFExporter struct{}

// NewPDFExporter construye el exportador.
func NewPDFExporter() *PDFExporter { return &PDFExporter{} }

// ContentType devuelve el MIME type del archivo generado.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// FileName devuelve el nombre de descarga sugerido.
func (e *PDFExporter) FileName() string {
	return fmt.Sprintf("auditoria_%s.pdf", time.Now().Format("20060102"))
}

// Render genera el PDF: título, fecha de generación y una tabla de eventos.
func (e *PDFExporter) Render(eventos []*entity.EventoAuditoria) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Historial de Auditoría", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(tituloRow(len(eventos)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(encabezadoTablaRow())
	for _, ev := range eventos {
		m.AddRows(eventoRow(ev))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func tituloRow(total int) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("HISTORIAL DE AUDITORÍA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d eventos", total), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
		),
	)
}

func encabezadoTablaRow() core.Row {
	return row.New(7).Add(
		headerCol(2, "Fecha"),
		headerCol(2, "Acción"),
		headerCol(2, "Recurso"),
		headerCol(2, "Severidad"),
		headerCol(2, "Actor"),
		headerCol(2, "IP"),
	)
}

func headerCol(size int, label string) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
	}))
}

func eventoRow(ev *entity.EventoAuditoria) core.Row {
	return row.New(6).Add(
		cellCol(2, ev.CreatedAt.Format("02/01/06 15:04")),
		cellCol(2, ev.Accion),
		cellCol(2, ev.RecursoTipo),
		cellCol(2, ev.Severidad),
		cellCol(2, ev.ActorNombre),
		cellCol(2, ev.IP),
	)
}

func cellCol(size int, value string) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 7}))
}
