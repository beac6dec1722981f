package report

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"wellness-planner/internal/domain"
)

const (
	ContentType = "application/pdf"

	disclaimer = "Este plan es una sugerencia y no sustituye el consejo médico profesional. La constancia es clave para ver resultados. ¡Fuxion mejora tu vida!"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Document es el plan listo para descargar o adjuntar. Body es el PDF y Text
// la versión en texto plano que va en el cuerpo del correo.
type Document struct {
	FileName    string
	ContentType string
	Body        []byte
	Text        string
}

// Render arma el plan en PDF junto con su versión en texto.
func Render(rec domain.Recommendation, contact domain.AdminContact) (Document, error) {
	body, err := renderPDF(rec, contact)
	if err != nil {
		return Document{}, err
	}
	return Document{
		FileName:    FileName(rec),
		ContentType: ContentType,
		Body:        body,
		Text:        RenderText(rec, contact),
	}, nil
}

// RenderText arma el plan en texto plano con las mismas secciones del PDF.
func RenderText(rec domain.Recommendation, contact domain.AdminContact) string {
	var b strings.Builder
	p := rec.Profile

	b.WriteString("Plan de Bienestar Fuxion\n")
	fmt.Fprintf(&b, "Preparado para: %s\n\n", rec.ClientName)

	b.WriteString("Resumen del Cliente:\n")
	fmt.Fprintf(&b, "Edad: %s | Género: %s | Nivel Actividad: %s\n", age(p.Age), p.Gender, p.ActivityLevel)
	fmt.Fprintf(&b, "Contacto: %s | %s\n", p.Email, p.Phone)
	fmt.Fprintf(&b, "Objetivo Principal: %s\n", rec.MainGoal)
	if len(p.CommonSymptoms) > 0 {
		fmt.Fprintf(&b, "Síntomas Reportados: %s\n", strings.Join(p.CommonSymptoms, ", "))
	}
	b.WriteString("\n")

	b.WriteString("Recomendación de Productos:\n")
	writeProduct(&b, rec.MainProduct, true)
	for _, cp := range rec.ComplementaryProducts {
		writeProduct(&b, cp, false)
	}
	b.WriteString("\n")

	b.WriteString("Consejos de Estilo de Vida:\n")
	for _, line := range FormatTips(rec.LifestyleTips) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Contacta a tu Asesora de Bienestar:\n")
	fmt.Fprintf(&b, "%s - Tel: %s\n\n", contact.Name, contact.Phone)

	b.WriteString(disclaimer)
	b.WriteString("\n")

	return b.String()
}

func writeProduct(b *strings.Builder, p domain.Product, main bool) {
	label := "Producto Complementario:"
	if main {
		label = "Producto Principal:"
	}
	fmt.Fprintf(b, "%s %s\n", label, productLine(p))
	fmt.Fprintf(b, "    Beneficios: %s\n", strings.Join(p.Benefits, ", "))
	fmt.Fprintf(b, "    Uso Sugerido: %s\n", p.SuggestedUsage)
}

// productLine devuelve "Nombre - $0.00" con los puntos cuando el producto los tiene.
func productLine(p domain.Product) string {
	line := fmt.Sprintf("%s - $%.2f", p.Name, p.Price)
	if p.Points != nil && *p.Points > 0 {
		line += fmt.Sprintf(" (%d Puntos)", *p.Points)
	}
	return line
}

// FormatTips convierte el markdown de los consejos en líneas de texto plano:
// viñetas "- " pasan a "• " y se quitan las negritas.
func FormatTips(tips string) []string {
	lines := strings.Split(strings.ReplaceAll(tips, "\r\n", "\n"), "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "- ") {
			l = "• " + strings.TrimPrefix(l, "- ")
		}
		lines[i] = strings.ReplaceAll(l, "**", "")
	}
	return lines
}

// FileName sigue el formato Recomendacion_Fuxion_<Nombre>_<YYYY-MM-DD>.pdf usando la fecha de creación.
// Comillas, barras y caracteres de control se descartan del nombre.
func FileName(rec domain.Recommendation) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/':
			return -1
		case unicode.IsControl(r):
			return ' '
		}
		return r
	}, rec.ClientName)
	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	if name == "" {
		name = "Cliente"
	}
	return fmt.Sprintf("Recomendacion_Fuxion_%s_%s.pdf", name, rec.CreatedAt.UTC().Format("2006-01-02"))
}

func age(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
