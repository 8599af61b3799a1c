package widgets

import "html/template"

// Fragment templates for the widget endpoints. Every template has a
// placeholder path so a fetch failure renders the quiet "data
// unavailable" state instead of breaking the page.

const dashboardTmpl = `{{define "dashboard"}}<div class="ge-card ge-dashboard" data-widget="dashboard">
	<div class="ge-card-head">
		<span class="ge-card-title">Space Weather</span>
		<span class="ge-card-day">{{.Day}}</span>
	</div>
	<div class="ge-kpis">
		<div class="ge-kpi ge-tone-{{.KpTone}}">
			<span class="ge-kpi-label">Kp</span>
			<span class="ge-kpi-value" data-field="kp">{{.KpText}}</span>
			<span class="ge-kpi-scale">{{.GLabel}}</span>
		</div>
		<div class="ge-kpi">
			<span class="ge-kpi-label">Bz</span>
			<span class="ge-kpi-value" data-field="bz">{{.BzText}}</span>
		</div>
		<div class="ge-kpi">
			<span class="ge-kpi-label">Wind</span>
			<span class="ge-kpi-value" data-field="wind">{{.WindText}}</span>
		</div>
		<div class="ge-kpi">
			<span class="ge-kpi-label">Protons</span>
			<span class="ge-kpi-value" data-field="protons">{{.ProtonText}}</span>
			<span class="ge-kpi-scale">{{.SLabel}}</span>
		</div>
	</div>
	{{if .Alerts}}<ul class="ge-alerts">
	{{range .Alerts}}<li class="ge-alert">{{.Scale}}{{.Level}} {{.Headline}}</li>
	{{end}}</ul>{{end}}
	{{if .Drivers}}<ul class="ge-drivers">
	{{range .Drivers}}<li class="ge-driver"><strong>{{.Name}}</strong> {{.Detail}}</li>
	{{end}}</ul>{{end}}
	{{template "configBlock" .Config}}
</div>{{end}}`

const magnetosphereTmpl = `{{define "magnetosphere"}}<div class="ge-card ge-magnetosphere" data-widget="magnetosphere">
	<div class="ge-badge ge-tone-{{.Tone}}">
		<span class="ge-badge-label">Magnetosphere</span>
		<span class="ge-badge-value" data-field="r0">{{.StandoffText}}</span>
		<span class="ge-badge-trend" data-field="trend">{{.TrendArrow}}</span>
	</div>
	<span class="ge-chip" data-field="kp">{{.KpText}}</span>
	{{template "configBlock" .Config}}
</div>{{end}}`

const magnetosphereDetailTmpl = `{{define "magnetosphere_detail"}}<div class="ge-panel ge-magnetosphere-detail" data-widget="magnetosphere-detail">
	<h3 class="ge-panel-title">Magnetosphere</h3>
	<dl class="ge-rows">
		<dt>Standoff distance</dt><dd data-field="r0">{{.StandoffText}}</dd>
		<dt>Kp</dt><dd data-field="kp">{{.KpText}}</dd>
		<dt>Plasmapause L</dt><dd data-field="plasmapause">{{.PlasmapauseText}}</dd>
		<dt>Trend</dt><dd data-field="trend">{{.TrendText}}</dd>
	</dl>
	{{template "configBlock" .Config}}
</div>{{end}}`

const spaceDetailTmpl = `{{define "space_detail"}}<div class="ge-panel ge-space-detail" data-widget="space-detail">
	<h3 class="ge-panel-title">Solar Activity</h3>
	<div class="ge-imagery">
		{{if .SunImageURL}}<img src="{{.SunImageURL}}" alt="SDO/AIA 304" class="ge-image" loading="lazy">{{end}}
		{{if .CoronagraphURL}}<img src="{{.CoronagraphURL}}" alt="LASCO C3" class="ge-image" loading="lazy">{{end}}
	</div>
	<div class="ge-proton-badge ge-tone-{{.ProtonTone}}">
		<span data-field="protons">{{.ProtonText}}</span>
		<span class="ge-kpi-scale">{{.SLabel}}</span>
	</div>
	{{if .FluxChart}}<div class="ge-chart">{{.FluxChart}}</div>{{end}}
	{{template "configBlock" .Config}}
</div>{{end}}`

const gaugeTmpl = `{{define "gauge"}}<div class="ge-gauge" data-widget="gauge" data-metric="{{.Metric}}">
	{{.Body}}
	{{template "configBlock" .Config}}
</div>{{end}}`

const panelTmpl = `{{define "panel"}}<div class="ge-panel" data-widget="panel">
	{{if .Title}}<h3 class="ge-panel-title">{{.Title}}</h3>{{end}}
	<div class="ge-panel-body">{{.Body}}</div>
</div>{{end}}`

// configBlock injects the per-widget browser configuration as a typed JSON
// script block scoped to its fragment.
const configBlockTmpl = `{{define "configBlock"}}{{if .}}<script type="application/json" class="ge-config">{{.}}</script>{{end}}{{end}}`

func parseTemplates() *template.Template {
	t := template.New("widgets")
	for _, src := range []string{
		dashboardTmpl,
		magnetosphereTmpl,
		magnetosphereDetailTmpl,
		spaceDetailTmpl,
		gaugeTmpl,
		panelTmpl,
		configBlockTmpl,
	} {
		t = template.Must(t.Parse(src))
	}
	return t
}
