package server

import (
	"html/template"
	"sync"
)

// Lazy template initialization
var (
	tmplDashboard *template.Template
	tmplOnce      sync.Once
)

func getDashboardTemplate() *template.Template {
	tmplOnce.Do(func() {
		tmplDashboard = template.Must(template.New("dashboard").Parse(dashboardTemplateStr))
	})
	return tmplDashboard
}

const dashboardTemplateStr = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.L.PageTitle}}{{if .Org}} — {{.Org}}{{end}}</title>
<style>
:root{--accent:#2da44e}
body{margin:0;font:14px/1.5 -apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif}
body.dark{background:#0d1117;color:#c9d1d9}
body.light{background:#f6f8fa;color:#1f2328}
a{color:inherit;text-decoration:none}
header{display:flex;align-items:center;gap:16px;padding:14px 24px;border-bottom:1px solid}
.dark header{border-color:#30363d;background:#010409}
.light header{border-color:#d0d7de;background:#fff}
header h1{font-size:17px;margin:0;flex:1}
.toolbar{display:flex;gap:8px;align-items:center}
.btn{padding:5px 12px;border-radius:6px;border:1px solid;font-size:12px;cursor:pointer}
.dark .btn{border-color:#30363d;background:#21262d;color:#c9d1d9}
.light .btn{border-color:#d0d7de;background:#f6f8fa;color:#1f2328}
main{max-width:1100px;margin:0 auto;padding:24px}
section{margin-bottom:32px}
h2{font-size:15px;margin:0 0 12px;text-transform:uppercase;letter-spacing:.05em;opacity:.7}
.cards{display:grid;grid-template-columns:repeat(auto-fit,minmax(150px,1fr));gap:12px}
.card{padding:14px;border-radius:8px;border:1px solid}
.dark .card{border-color:#30363d;background:#161b22}
.light .card{border-color:#d0d7de;background:#fff}
.card .lbl{font-size:11px;text-transform:uppercase;letter-spacing:.05em;opacity:.6}
.card .val{font-size:22px;font-weight:600;margin-top:4px}
table{width:100%;border-collapse:collapse;font-size:13px}
th,td{padding:7px 10px;text-align:left;border-bottom:1px solid}
.dark th,.dark td{border-color:#21262d}
.light th,.light td{border-color:#d8dee4}
th a{font-weight:600;white-space:nowrap}
th.active a{color:var(--accent)}
.num{text-align:right}
input[type=search]{padding:5px 10px;border-radius:6px;border:1px solid;font-size:13px}
.dark input[type=search]{border-color:#30363d;background:#0d1117;color:#c9d1d9}
.light input[type=search]{border-color:#d0d7de;background:#fff;color:#1f2328}
.delta-up{color:#2da44e}.delta-down{color:#cf222e}
.charts{display:grid;grid-template-columns:1fr 1fr;gap:16px}
.chart{padding:12px;border-radius:8px;border:1px solid}
.dark .chart{border-color:#30363d;background:#161b22}
.light .chart{border-color:#d0d7de;background:#fff}
canvas{width:100%;height:200px}
pre.insights{white-space:pre-wrap;padding:14px;border-radius:8px;border:1px solid;font:13px/1.5 inherit}
.dark pre.insights{border-color:#30363d;background:#161b22}
.light pre.insights{border-color:#d0d7de;background:#fff}
.empty{text-align:center;padding:60px 20px;opacity:.7}
.empty p{margin:6px 0}
.meta{font-size:12px;opacity:.5}
</style>
</head>
<body class="{{.Theme}}">
<header>
<h1>{{.L.PageTitle}}{{if .Org}} · {{.Org}}{{end}}</h1>
<div class="toolbar">
<form method="get" action="/">
<input type="search" name="q" value="{{.Query}}" placeholder="{{.L.Search}}" aria-label="{{.L.Search}}">
<input type="hidden" name="theme" value="{{.Theme}}">
<input type="hidden" name="lang" value="{{.Lang}}">
</form>
<a class="btn" href="/refresh">{{.L.Refresh}}</a>
<a class="btn" href="{{.ThemeToggleURL}}">{{.L.Theme}}: {{.OtherTheme}}</a>
<a class="btn" href="/export/json">{{.L.ExportJSON}}</a>
<a class="btn" href="/export/csv">{{.L.ExportCSV}}</a>
<a class="btn" href="/export/ics">{{.L.ExportICS}}</a>
</div>
</header>
<main>
{{if not .HasData}}
<div class="empty">
<p><strong>{{.L.NoData}}</strong></p>
<p>{{.L.NoDataHint}}</p>
</div>
{{else}}
<section>
<h2>{{.L.SectionSummary}}</h2>
{{if .GeneratedAt}}<p class="meta">{{.GeneratedAt}}</p>{{end}}
<div class="cards">
{{range .Cards}}
<div class="card">
<div class="lbl">{{.Label}}</div>
{{if .Animated}}<div class="val counter" data-target="{{.Target}}" data-prefix="{{.Prefix}}" data-suffix="{{.Suffix}}">{{.Value}}</div>
{{else}}<div class="val">{{.Value}}</div>{{end}}
</div>
{{end}}
</div>
</section>

{{if .HasCharts}}
<section>
<h2>{{.L.SectionCharts}}</h2>
<div class="charts">
<div class="chart"><canvas id="c-types"></canvas></div>
<div class="chart"><canvas id="c-timeline"></canvas></div>
<div class="chart"><canvas id="c-compare"></canvas></div>
<div class="chart"><canvas id="c-rates"></canvas></div>
</div>
</section>
{{end}}

<section>
<h2>{{.L.SectionEvents}}</h2>
<table>
<thead><tr>
{{range .Columns}}<th{{if .Active}} class="active"{{end}}><a href="{{.URL}}">{{.Title}}{{.Icon}}</a></th>{{end}}
</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range $i, $c := .Cells}}<td{{if ge $i 3}} class="num"{{end}}>{{$c}}</td>{{end}}</tr>
{{end}}
</tbody>
</table>
</section>

{{if .Comparisons}}
<section>
<h2>{{.L.SectionCompare}}</h2>
<table>
<tbody>
{{range .Comparisons}}
<tr>
<td>{{.Name}}</td>
<td class="num">{{.PrevLabel}}</td>
<td class="num">{{.LatestLabel}}</td>
<td class="num {{if .Positive}}delta-up{{else}}delta-down{{end}}">{{.Attendance}}</td>
<td class="num">{{.Percent}}</td>
<td class="num">{{.Rate}}</td>
</tr>
{{end}}
</tbody>
</table>
</section>
{{end}}

{{if .Insights}}
<section>
<h2>{{.L.SectionInsights}}</h2>
<pre class="insights">{{.Insights}}</pre>
</section>
{{end}}

{{if .Predictions}}
<section>
<h2>{{.L.SectionPredict}}</h2>
<table>
<tbody>
{{range .Predictions}}
<tr>
<td>{{.Type}}</td>
<td class="num">{{.Attendance}}</td>
<td class="num">{{.Rate}}</td>
<td class="num">{{.Range}}</td>
<td class="num">{{.Budget}}</td>
<td class="num">{{.CostPer}}</td>
<td class="num">n={{.Samples}}</td>
</tr>
{{end}}
</tbody>
</table>
</section>
{{end}}

{{if .Engagement}}
<section>
<h2>{{.L.SectionAudience}}</h2>
<div class="cards">
<div class="card"><div class="lbl">Score</div><div class="val">{{.Engagement.Score}} ({{.Engagement.Grade}})</div></div>
{{range .Engagement.Breakdown}}
<div class="card"><div class="lbl">{{.Name}}</div><div class="val">{{.Value}}</div></div>
{{end}}
</div>
<div class="chart" style="margin-top:12px"><canvas id="c-audience"></canvas></div>
</section>
{{end}}
{{end}}
</main>

{{if .HasData}}
<script>
var CHARTS = {{.ChartJSON}};

// Animated counters: cubic ease-out sampled over 60 frames, terminal frame
// pinned to the exact target.
(function(){
  var els = document.querySelectorAll('.counter');
  els.forEach(function(el){
    var target = parseInt(el.dataset.target, 10) || 0;
    var prefix = el.dataset.prefix || '', suffix = el.dataset.suffix || '';
    var frames = 60, i = 0;
    var iv = setInterval(function(){
      i++;
      var p = 1 - Math.pow(1 - i / frames, 3);
      var v = i >= frames ? target : Math.floor(p * target);
      el.textContent = prefix + v.toLocaleString('en-US') + suffix;
      if (i >= frames) clearInterval(iv);
    }, 2000 / frames);
  });
})();

function ctx2d(id){
  var c = document.getElementById(id);
  if (!c) return null;
  c.width = c.clientWidth; c.height = c.clientHeight;
  return c.getContext('2d');
}
function axisColor(){ return document.body.classList.contains('dark') ? '#8b949e' : '#57606a'; }

function drawBars(id, items, value, color){
  var g = ctx2d(id);
  if (!g || !items.length) return;
  var w = g.canvas.width, h = g.canvas.height, pad = 18;
  var maxV = Math.max.apply(null, items.map(value)) || 1;
  var bw = (w - pad * 2) / items.length;
  g.font = '10px sans-serif'; g.fillStyle = axisColor();
  items.forEach(function(it, i){
    var v = value(it);
    var bh = (h - pad * 2) * v / maxV;
    g.fillStyle = color(it);
    g.fillRect(pad + i * bw + 2, h - pad - bh, bw - 4, bh);
    g.fillStyle = axisColor();
    g.save();
    g.translate(pad + i * bw + bw / 2, h - 5);
    g.fillText((it.type || it.name || it.segment || '').slice(0, 10), -14, 0);
    g.restore();
  });
}

function drawLine(id, pts){
  var g = ctx2d(id);
  if (!g || pts.length < 2) return;
  var w = g.canvas.width, h = g.canvas.height, pad = 18;
  var maxV = Math.max.apply(null, pts.map(function(p){ return p.actual; })) || 1;
  g.strokeStyle = '#3b82f6'; g.lineWidth = 2; g.beginPath();
  pts.forEach(function(p, i){
    var x = pad + (w - pad * 2) * i / (pts.length - 1);
    var y = h - pad - (h - pad * 2) * p.actual / maxV;
    i ? g.lineTo(x, y) : g.moveTo(x, y);
  });
  g.stroke();
}

function drawPairs(id, items){
  var g = ctx2d(id);
  if (!g || !items.length) return;
  var w = g.canvas.width, h = g.canvas.height, pad = 18;
  var maxV = 1;
  items.forEach(function(it){ maxV = Math.max(maxV, it.expected, it.actual); });
  var gw = (w - pad * 2) / items.length;
  items.forEach(function(it, i){
    var x = pad + i * gw;
    var he = (h - pad * 2) * it.expected / maxV;
    var ha = (h - pad * 2) * it.actual / maxV;
    g.fillStyle = '#8b949e'; g.fillRect(x + 2, h - pad - he, gw / 2 - 3, he);
    g.fillStyle = '#3b82f6'; g.fillRect(x + gw / 2, h - pad - ha, gw / 2 - 3, ha);
  });
}

if (CHARTS) {
  drawBars('c-types', CHARTS.types || [], function(s){ return s.count; }, function(){ return '#8b5cf6'; });
  drawLine('c-timeline', CHARTS.timeline || []);
  drawPairs('c-compare', CHARTS.comparison || []);
  drawBars('c-rates', CHARTS.rates || [], function(b){ return b.rate; }, function(b){ return b.color; });
  drawBars('c-audience', CHARTS.demographics || [], function(d){ return d.count; }, function(){ return '#06b6d4'; });
}
</script>
{{end}}
</body>
</html>`
