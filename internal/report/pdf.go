package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"wellness-planner/internal/domain"
)

const (
	pageMargin  = 15.0
	lineHeight  = 6.0
	fontFamily  = "Helvetica"
	titleSize   = 20
	sectionSize = 13
	bodySize    = 10
)

// Colores de la marca (verde Fuxion) usados en encabezados.
var (
	brandRGB = [3]int{0, 128, 96}
	mutedRGB = [3]int{90, 90, 90}
)

// renderPDF dibuja las secciones del plan en una página A4 que crece según
// haga falta. Las fuentes base de PDF usan cp1252, así que el texto pasa por
// el traductor de fpdf antes de escribirse.
func renderPDF(rec domain.Recommendation, contact domain.AdminContact) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Plan de Bienestar Fuxion", false)
	pdf.SetAuthor(tr(contact.Name), false)
	pdf.SetCreator("wellness-planner", false)
	pdf.SetCreationDate(rec.CreatedAt)
	pdf.SetModificationDate(rec.CreatedAt)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	width, _ := pdf.GetPageSize()
	contentWidth := width - 2*pageMargin
	p := rec.Profile

	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.SetTextColor(brandRGB[0], brandRGB[1], brandRGB[2])
	pdf.CellFormat(contentWidth, 10, tr("Plan de Bienestar Fuxion"), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", bodySize+2)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(contentWidth, lineHeight+1, tr("Preparado para: "+rec.ClientName), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section := func(title string) {
		pdf.Ln(2)
		pdf.SetFont(fontFamily, "B", sectionSize)
		pdf.SetTextColor(brandRGB[0], brandRGB[1], brandRGB[2])
		pdf.CellFormat(contentWidth, lineHeight+2, tr(title), "B", 1, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", bodySize)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(1)
	}
	text := func(s string) {
		pdf.MultiCell(contentWidth, lineHeight, tr(s), "", "L", false)
	}

	section("Resumen del Cliente")
	text(fmt.Sprintf("Edad: %s | Género: %s | Nivel Actividad: %s", age(p.Age), p.Gender, p.ActivityLevel))
	text(fmt.Sprintf("Contacto: %s | %s", p.Email, p.Phone))
	text("Objetivo Principal: " + rec.MainGoal)
	if len(p.CommonSymptoms) > 0 {
		text("Síntomas Reportados: " + strings.Join(p.CommonSymptoms, ", "))
	}

	section("Recomendación de Productos")
	product := func(label string, prod domain.Product) {
		pdf.SetFont(fontFamily, "B", bodySize+1)
		text(label + " " + productLine(prod))
		pdf.SetFont(fontFamily, "", bodySize)
		if len(prod.Benefits) > 0 {
			text("Beneficios: " + strings.Join(prod.Benefits, ", "))
		}
		if prod.SuggestedUsage != "" {
			text("Uso Sugerido: " + prod.SuggestedUsage)
		}
		pdf.Ln(2)
	}
	product("Producto Principal:", rec.MainProduct)
	for _, cp := range rec.ComplementaryProducts {
		product("Producto Complementario:", cp)
	}

	section("Consejos de Estilo de Vida")
	for _, line := range FormatTips(rec.LifestyleTips) {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(2)
			continue
		}
		text(line)
	}

	section("Contacta a tu Asesora de Bienestar")
	text(fmt.Sprintf("%s - Tel: %s", contact.Name, contact.Phone))

	pdf.Ln(6)
	pdf.SetFont(fontFamily, "I", bodySize-1)
	pdf.SetTextColor(mutedRGB[0], mutedRGB[1], mutedRGB[2])
	pdf.MultiCell(contentWidth, lineHeight-1, tr(disclaimer), "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
