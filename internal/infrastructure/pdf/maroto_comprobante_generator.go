// Package pdf implementa la generación de comprobantes en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Despacho  │  COMPROBANTE + N° Expediente + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS DEL REGISTRO: solicitante / DNI / área / descripción │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECIBIDO POR: nombre del usuario que cargó el registro     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación + leyenda                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

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

	"github.com/despacho/expedientes-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const nombreDespacho = "Despacho Jurídico"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoComprobanteGenerator genera los comprobantes de carga y recibos de
// pago. Operación hoja: no reintenta y el llamador decide si su fallo bloquea.
type MarotoComprobanteGenerator struct{}

// NewMarotoComprobanteGenerator construye el generador.
func NewMarotoComprobanteGenerator() *MarotoComprobanteGenerator {
	return &MarotoComprobanteGenerator{}
}

func nuevoDocumento(titulo string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		WithAuthor(nombreDespacho, true).
		Build()
	return maroto.New(cfg)
}

// GenerarComprobanteExpediente genera el comprobante de carga de un expediente
// simple o actuación y devuelve sus bytes.
func (g *MarotoComprobanteGenerator) GenerarComprobanteExpediente(e *entity.ExpedienteSimple) ([]byte, error) {
	tipo := "COMPROBANTE DE EXPEDIENTE"
	if !e.TipoExpediente {
		tipo = "COMPROBANTE DE ACTUACIÓN"
	}

	m := nuevoDocumento(tipo)

	m.AddRows(headerRow(tipo, e.NumeroExpediente, e.FechaCarga))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(
		seccionRow("DATOS DEL REGISTRO"),
		campoRow("Solicitante", e.NombreSolicitante),
		campoRow("DNI", nonEmpty(e.DNI, "—")),
		campoRow("Área", nonEmpty(e.Area, "—")),
		campoRow("Descripción", nonEmpty(e.Descripcion, "—")),
		campoRow("Archivo adjunto", nonEmpty(e.NombreArchivoEscaneado, "sin archivo")),
	)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(recibidoPorRow(e.Creador))
	m.AddRows(footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerarReciboPago genera el recibo de un pago de honorarios.
func (g *MarotoComprobanteGenerator) GenerarReciboPago(p *entity.Pago, e *entity.Expediente) ([]byte, error) {
	m := nuevoDocumento("RECIBO DE PAGO")

	m.AddRows(headerRow("RECIBO DE PAGO", p.NumeroRecibo, p.FechaPago))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	cliente := "—"
	if p.Cliente != nil {
		cliente = p.Cliente.Nombre + " " + p.Cliente.Apellido
	}
	m.AddRows(
		seccionRow("DATOS DEL PAGO"),
		campoRow("Expediente", e.NumeroExpediente+"  "+e.Titulo),
		campoRow("Cliente", cliente),
		campoRow("Concepto", p.Concepto),
		campoRow("Método de pago", p.MetodoPago),
		campoRow("Referencia", nonEmpty(p.ReferenciaPago, "—")),
	)
	m.AddRows(montoRow(p.Monto.StringFixed(2)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(recibidoPorRow(p.UsuarioRecibio))
	m.AddRows(footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del despacho (izq) y tipo + número + fecha (der).
func headerRow(tipo, numero string, fecha time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nombreDespacho, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Mesa de entradas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(tipo, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func seccionRow(titulo string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func campoRow(etiqueta, valor string) core.Row {
	return row.New(7).Add(
		col.New(3).Add(text.New(etiqueta+":", props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 1,
		})),
		col.New(9).Add(text.New(valor, props.Text{
			Size: 9, Top: 1, Color: colorGray,
		})),
	)
}

// montoRow: monto destacado alineado a la derecha.
func montoRow(monto string) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("MONTO RECIBIDO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 3, Right: 2,
		})),
		col.New(3).Add(text.New("$"+monto, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// recibidoPorRow: línea principal con el usuario que recibió el trámite.
func recibidoPorRow(u *entity.Usuario) core.Row {
	nombre := "—"
	if u != nil {
		nombre = u.NombreCompleto()
	}
	return row.New(14).Add(col.New(12).Add(
		text.New("RECIBIDO POR", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
		text.New(nombre, props.Text{
			Style: fontstyle.Bold, Size: 11, Top: 8,
		}),
	))
}

func footerRows() []core.Row {
	return []core.Row{
		row.New(6),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Comprobante generado el "+time.Now().Format("02/01/2006 15:04")+
					". Conserve este documento como constancia de la presentación.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
