package report

// ReportTemplate is the HTML template for the analysis report.
// It is embedded as a Go constant.
const ReportTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #2563eb;
    --red: #dc2626;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 960px;
    margin: 0 auto;
    padding: 20px;
  }
  h1 { font-size: 1.5rem; color: var(--accent); }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; padding-bottom: 6px; border-bottom: 2px solid var(--accent); }
  .muted { color: var(--muted); font-size: 0.85rem; }
  table { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
  th, td { padding: 6px 10px; border-bottom: 1px solid var(--border); }
  th { background: var(--section-bg); text-align: left; }
  td.num { text-align: right; font-variant-numeric: tabular-nums; }
  tr.strong td { font-weight: 600; }
  .conclusion { background: var(--section-bg); padding: 12px 16px; border-left: 4px solid var(--accent); }
  .warnings li { color: var(--red); margin-left: 20px; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  {{if .Source}}<p class="muted">Fuente: {{.Source}}</p>{{end}}
  <p class="muted">Huella: {{.InputHash}}</p>
</header>

<h2>Estados financieros</h2>
<table>
  <tr><th></th>{{range .Years}}<th>{{.}}</th>{{end}}</tr>
  {{range .Statements}}<tr{{if .Strong}} class="strong"{{end}}><td>{{.Label}}</td>{{range .Values}}<td class="num">{{.}}</td>{{end}}</tr>
  {{end}}
</table>

<h2>Razones financieras</h2>
<table>
  <tr><th>Grupo</th><th>Razón</th>{{range .Years}}<th>{{.}}</th>{{end}}</tr>
  {{range .Ratios}}<tr><td class="muted">{{.Group}}</td><td>{{.Label}}</td>{{range .Values}}<td class="num">{{.}}</td>{{end}}</tr>
  {{end}}
</table>

{{if .CashFlow}}
<h2>Flujo de efectivo</h2>
<table>
  <tr><th>Periodo</th><th>Operación</th><th>Inversión</th><th>Financiamiento</th><th>Neto</th><th>Conciliado</th></tr>
  {{range .CashFlow}}<tr><td>{{.Period}}</td><td class="num">{{.Operating}}</td><td class="num">{{.Investing}}</td><td class="num">{{.Financing}}</td><td class="num">{{.Net}}</td><td>{{.Reconciled}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .Proforma}}
<h2>{{.ProjTitle}}</h2>
<table>
  {{range .Proforma}}<tr><td>{{.Label}}</td><td class="num">{{.Value}}</td></tr>
  {{end}}
</table>
{{end}}

<h2>Conclusión</h2>
<div class="conclusion">
  {{range .Conclusion}}<p>{{.}}</p>
  {{end}}
</div>

{{if .Warnings}}
<h2>Advertencias</h2>
<ul class="warnings">
  {{range .Warnings}}<li>{{.}}</li>
  {{end}}
</ul>
{{end}}
</body>
</html>
`
