// Package prompt renders the text sent to every completion provider.
//
// All providers receive the exact same summary prompt so their answers can
// be compared; structured inputs (session reports, maintenance requests) are
// first flattened into session data and then go through the same template.
package prompt

import (
	"fmt"
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/nulzo/summary-gateway/pkg/api"
)

// Triple mustaches everywhere: the payload is plain text, never HTML.
const summaryTemplate = `
Eres un asistente de IA para "Tourify Remote", una herramienta de supervisión remota de faenas para el Metro de Santiago.
Tu tarea es generar un resumen conciso y profesional de una sesión de mantenimiento remoto para un reporte oficial.

Estructura el resumen de la siguiente manera:
- Contexto y objetivo (1-2 líneas)
- Pasos ejecutados (viñetas)
- Hallazgos/defectos encontrados (viñetas)
- Acciones siguientes + responsables + plazos

Mantén el resumen bajo {{maxWords}} palabras. Usa lenguaje claro y accionable.

Datos de la sesión:
{{{sessionData}}}
`

const reportTemplate = `
Sitio: {{{siteName}}} ({{{siteType}}})
ID del Sitio: {{{siteId}}}
Duración: {{duration}} minutos
Experto: {{{expertName}}}
Técnico en Campo: {{{technicianName}}}
Anotaciones realizadas: {{annotationCount}} marcaciones
Detalles de anotaciones: {{{annotations}}}
`

const recommendationTemplate = `
Equipos involucrados:
{{#equipment}}
- {{{.}}}
{{/equipment}}

Descripción del problema:
{{{issue}}}

Solicitud: Proporciona recomendaciones de mantenimiento específicas para el Metro de Santiago.
`

// MaxWords is the length ceiling requested from every provider.
const MaxWords = 150

var (
	summary         = mustParse(summaryTemplate)
	report          = mustParse(reportTemplate)
	recommendations = mustParse(recommendationTemplate)
)

func mustParse(tmpl string) *mustache.Template {
	t, err := mustache.ParseString(tmpl)
	if err != nil {
		panic(fmt.Sprintf("prompt: invalid template: %v", err))
	}
	return t
}

// Summary builds the provider prompt. The session data is appended verbatim.
func Summary(sessionData string) (string, error) {
	return summary.Render(map[string]interface{}{
		"maxWords":    MaxWords,
		"sessionData": sessionData,
	})
}

// Report flattens a structured session report into session data.
func Report(r api.SessionReport) (string, error) {
	return report.Render(map[string]interface{}{
		"siteName":        r.SiteName,
		"siteType":        r.SiteType,
		"siteId":          r.SiteID,
		"duration":        r.Duration,
		"expertName":      r.ExpertName,
		"technicianName":  r.TechnicianName,
		"annotationCount": len(r.Annotations),
		"annotations":     strings.Join(r.Annotations, ", "),
	})
}

// Recommendations flattens a maintenance request into session data.
func Recommendations(r api.RecommendationRequest) (string, error) {
	return recommendations.Render(map[string]interface{}{
		"equipment": r.Equipment,
		"issue":     r.Issue,
	})
}
