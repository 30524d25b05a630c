// Copyright 2026 The Sheetboard Authors
// SPDX-License-Identifier: MIT

package output

const htmlTemplate = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · Sheetboard</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --hover: #e9ecef; --muted: #6c757d;
  --up: #28a745; --down: #dc3545; --gold: #f5b700; --accent: #0d6efd;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --table-alt: #0f3460; --hover: #1a1a4e; --muted: #adb5bd;
    --up: #4caf50; --down: #f55; --accent: #5b9aff;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Apple SD Gothic Neo", sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
a { color: var(--accent); text-decoration: none; }
nav { display: flex; flex-wrap: wrap; gap: .25rem 1rem; align-items: center; margin-bottom: 1rem; border-bottom: 1px solid var(--border); padding-bottom: .5rem; }
nav a.active { font-weight: 700; color: var(--fg); }
nav .spacer { flex: 1; }
header { margin-bottom: 1.25rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
.notice, .error { border-radius: 6px; padding: .5rem .75rem; margin-bottom: 1rem; font-size: .875rem; }
.notice { background: var(--card-bg); border: 1px solid var(--border); }
.error { color: var(--down); border: 1px solid var(--down); }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: .75rem; margin-bottom: 1.25rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.4rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.filters { display: flex; flex-wrap: wrap; gap: .5rem; margin-bottom: 1rem; align-items: center; font-size: .875rem; }
.filters select, .filters input, .grid input { padding: .3rem .5rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); font-size: .8125rem; }
#treemap { position: relative; width: 100%; height: 420px; margin-bottom: 1.5rem; border-radius: 8px; overflow: hidden; background: var(--card-bg); }
#treemap .tile { position: absolute; overflow: hidden; border: 1px solid var(--bg); padding: 4px; font-size: 11px; color: #fff; text-shadow: 0 1px 2px rgba(0,0,0,.6); }
#treemap .tile b { display: block; font-size: 12px; }
#treemap .group { position: absolute; border: 2px solid var(--bg); }
#treemap .group span { position: absolute; top: 2px; left: 4px; font-size: 11px; font-weight: 700; color: #fff; z-index: 2; text-shadow: 0 1px 2px rgba(0,0,0,.8); }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
thead { position: sticky; top: 0; background: var(--card-bg); }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); vertical-align: top; }
th[data-col] { cursor: pointer; user-select: none; white-space: nowrap; }
th[data-col]:hover { color: var(--accent); }
td.num, th.num { text-align: right; white-space: nowrap; }
tr:nth-child(even) { background: var(--table-alt); }
tr.entry { cursor: pointer; }
tr.entry:hover { background: var(--hover); }
tr.detail-row td { padding: .75rem 1rem; color: var(--muted); white-space: pre-wrap; }
.detail-row dt { font-weight: 700; color: var(--fg); }
.detail-row dd { margin-bottom: .5rem; }
.avatar { width: 24px; height: 24px; border-radius: 50%; vertical-align: middle; margin-right: .375rem; }
.stats { color: var(--muted); font-size: .75rem; }
.medal { font-size: 1.1rem; }
.up { color: var(--up); } .down { color: var(--down); }
.hidden { display: none; }
.sort-arrow { font-size: .625rem; margin-left: .25rem; }
.visitor-box { display: inline-flex; gap: .5rem; align-items: baseline; font-size: .75rem; color: var(--muted); }
.visitor-box b { color: var(--fg); }
.events { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 1rem; }
.event-card { display: block; background: var(--card-bg); border: 1px solid var(--border); border-radius: 10px; padding: 1rem; color: var(--fg); }
.event-card:hover { border-color: var(--accent); }
.event-title { font-weight: 700; margin: .25rem 0 .5rem; }
.event-badge { font-size: .6875rem; background: var(--accent); color: #fff; border-radius: 3px; padding: 0 .375rem; }
.event-date { font-size: .75rem; color: var(--muted); }
.grid td { padding: .125rem; }
.grid input { width: 100%; min-width: 80px; }
button { padding: .375rem .875rem; border-radius: 4px; border: 1px solid var(--accent); background: var(--accent); color: #fff; cursor: pointer; }
</style>
</head>
<body>
{{if not .Standalone}}<nav>
  {{range .Nav}}<a href="{{.Href}}"{{if eq .Name $.Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
  <span class="spacer"></span>
  {{with .Visitors}}<span class="visitor-box">Today <b>+{{.Today}}</b> · Total <b>{{.Total}}</b></span>{{end}}
  <form method="post" action="/sync" style="display:inline"><button type="submit" title="Reload every sheet">Sync</button></form>
</nav>{{end}}
{{with .Notice}}<div class="notice">{{.}}</div>{{end}}
{{with .Error}}<div class="error">{{.}}</div>{{end}}
{{end}}

{{define "foot"}}
<footer style="margin-top:2rem;font-size:.75rem;color:var(--muted)">Generated {{.GeneratedAt}}</footer>
</body>
</html>{{end}}

{{define "view"}}{{template "head" .}}
{{with .Page}}
<header>
  <h1>{{.Title}}{{with .Category}} · {{.}}{{end}}</h1>
  <p>{{.Summary.Count}} entries ranked by {{.MetricLabel}}</p>
</header>
<section class="cards" id="summary">
  <div class="card"><div class="value">{{.Summary.Count}}</div><div class="label">Entries</div></div>
  <div class="card"><div class="value">{{.Summary.Total}}</div><div class="label">Total {{.Summary.TotalLabel}}</div></div>
  <div class="card"><div class="value">{{.Summary.Top}}</div><div class="label">Top</div></div>
</section>
{{if not $.Standalone}}
<form class="filters" method="get" action="/view/{{.Name}}">
  <select name="category" onchange="this.form.submit()">
    <option value="">All categories</option>
    {{$cur := .Category}}{{range .Categories}}<option value="{{.}}"{{if eq . $cur}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{if not .Category}}<label><input type="checkbox" name="merge" value="1"{{if .Merged}} checked{{end}} onchange="this.form.submit()"> Merge categories</label>{{end}}
  <label><input type="checkbox" name="expand" value="1"{{if $.Expand}} checked{{end}} onchange="this.form.submit()"> Expand details</label>
</form>
{{end}}
{{if .Rows}}
<div id="treemap"></div>
<section id="leaderboard">
<table>
<thead><tr>
  <th data-col="rank" data-type="num" class="num">#</th>
  <th data-col="name">Name</th>
  <th data-col="category">Category</th>
  <th data-col="metric" data-type="num" class="num">{{.MetricLabel}}</th>
  <th data-col="share" data-type="num" class="num">Share</th>
</tr></thead>
<tbody>
{{range .Rows}}
<tr class="entry" onclick="toggleDetail(this)">
  <td class="num" data-v="{{.Rank}}"><span class="medal">{{.Marker}}</span></td>
  <td>{{with .AvatarURL}}<img class="avatar" src="{{.}}" alt="" loading="lazy">{{end}}<b>{{.DisplayName}}</b>
    {{if .ProfileURL}}<a href="{{.ProfileURL}}" target="_blank" rel="noopener" onclick="event.stopPropagation()">{{.Handle}}</a>{{else}}{{.Handle}}{{end}}
    {{with .Stats}}<div class="stats">{{range .}}{{.Label}} {{.Value}} {{end}}</div>{{end}}</td>
  <td>{{.Category}}</td>
  <td class="num" data-v="{{.MetricValue}}">{{.Metric}}</td>
  <td class="num" data-v="{{.MetricValue}}">{{.Share}}</td>
</tr>
<tr class="detail-row{{if not $.Expand}} hidden{{end}}"><td colspan="5">{{if .Details}}<dl>{{range .Details}}<dt>{{.Label}}</dt><dd>{{.Text}}</dd>{{end}}</dl>{{else}}No details.{{end}}</td></tr>
{{end}}
</tbody>
</table>
</section>
<script>var treemapData = {{json .Treemap}};</script>
{{template "scripts"}}
{{else}}
<div class="notice">No entries to show{{with .Category}} for {{.}}{{end}}.</div>
{{end}}
{{else}}
<div class="notice">This view is unavailable right now.</div>
{{end}}
{{template "foot" .}}{{end}}

{{define "market"}}{{template "head" .}}
<header><h1>Market</h1><p>Latest close and day-over-day change</p></header>
{{with .Market}}{{if .Rows}}
<div id="treemap"></div>
<table>
<thead><tr><th>Name</th><th>Symbol</th><th class="num">Price</th><th class="num">Change</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Name}}</td><td>{{.Symbol}}</td><td class="num">{{.Price}}</td><td class="num {{if .Up}}up{{else}}down{{end}}">{{.Change}}</td></tr>
{{end}}
</tbody>
</table>
<script>var treemapData = {{json .Treemap}}; var treemapDiverging = true;</script>
{{template "scripts"}}
{{else}}<div class="notice">Market data unavailable.</div>{{end}}
{{else}}<div class="notice">Market data unavailable.</div>{{end}}
{{template "foot" .}}{{end}}

{{define "events"}}{{template "head" .}}
<header><h1>Events</h1><p>Ongoing events</p></header>
{{if .Events}}
<section class="events">
{{range .Events}}
<a class="event-card" href="{{.Link}}" target="_blank" rel="noopener">
  <span class="event-badge">Ongoing</span>
  <div class="event-title">{{.Name}}</div>
  <div>🎁 {{.Prizes}}</div>
  <div class="event-date">📅 Deadline: {{.Deadline}}</div>
  <div class="event-date">📢 Announcement: {{.AnnounceDate}}</div>
</a>
{{end}}
</section>
{{else if not .Error}}<div class="notice">No events right now.</div>{{end}}
{{template "foot" .}}{{end}}

{{define "admin"}}{{template "head" .}}
<header><h1>Admin</h1><p>Edit a sheet and save to overwrite it</p></header>
{{with .Admin}}
{{if not .Enabled}}
<div class="notice">Admin is disabled. Set an admin password to enable it.</div>
{{else if not .Authed}}
<form method="post" action="/admin/login" class="filters">
  <input type="password" name="password" placeholder="Password" autocomplete="current-password">
  <button type="submit">Log in</button>
</form>
{{else}}
<form method="get" action="/admin" class="filters">
  <select name="sheet" onchange="this.form.submit()">
    {{$cur := .Sheet}}{{range .Sheets}}<option value="{{.}}"{{if eq . $cur}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <a href="/admin/logout">Log out</a>
</form>
<form method="post" action="/admin/save">
<input type="hidden" name="sheet" value="{{.Sheet}}">
<table class="grid">
<thead><tr><th>Delete</th>
{{range $i, $c := .Columns}}<th><input name="{{colField $i}}" value="{{$c}}"></th>{{end}}
</tr></thead>
<tbody>
{{range $r, $row := .Rows}}<tr><td><input type="checkbox" name="{{delField $r}}"></td>
{{range $i, $v := $row}}<td><input name="{{cellField $r $i}}" value="{{$v}}"></td>{{end}}
</tr>
{{end}}
</tbody>
</table>
<p style="margin-top:1rem"><button type="submit">Save sheet</button></p>
</form>
{{end}}
{{end}}
{{template "foot" .}}{{end}}

{{define "scripts"}}
<script>
function toggleDetail(row) { row.nextElementSibling.classList.toggle("hidden"); }

(function(){
  var box = document.getElementById("treemap");
  if (!box || !treemapData || !treemapData.length) return;
  var W = box.clientWidth, H = box.clientHeight;
  var groups = [], leaves = {};
  treemapData.forEach(function(n){
    if (!n.parent) { groups.push(n); leaves[n.id] = []; }
  });
  treemapData.forEach(function(n){ if (n.parent && leaves[n.parent]) leaves[n.parent].push(n); });
  var colors = treemapData.filter(function(n){return n.parent;}).map(function(n){return n.color;});
  var lo = Math.min.apply(null, colors), hi = Math.max.apply(null, colors);
  function paint(v) {
    if (typeof treemapDiverging !== "undefined") {
      var m = Math.max(Math.abs(lo), Math.abs(hi)) || 1;
      var t = v / m;
      return t >= 0 ? "hsl(140,55%," + (45 - 20*t) + "%)" : "hsl(0,65%," + (45 + 20*t) + "%)";
    }
    var f = hi > lo ? (v - lo) / (hi - lo) : 1;
    return "hsl(" + (220 - 190*f) + ",65%,45%)";
  }
  function slice(items, x, y, w, h, horizontal, place) {
    var total = items.reduce(function(a, n){ return a + n.value; }, 0) || 1;
    var off = 0;
    items.forEach(function(n){
      var f = n.value / total;
      if (horizontal) place(n, x + off, y, w*f, h); else place(n, x, y + off, w, h*f);
      off += (horizontal ? w : h) * f;
    });
  }
  slice(groups, 0, 0, W, H, W >= H, function(g, gx, gy, gw, gh){
    var gd = document.createElement("div");
    gd.className = "group";
    gd.style.cssText = "left:"+gx+"px;top:"+gy+"px;width:"+gw+"px;height:"+gh+"px";
    var label = document.createElement("span"); label.textContent = g.label; gd.appendChild(label);
    box.appendChild(gd);
    slice(leaves[g.id], gx, gy, gw, gh, gw < gh, function(n, x, y, w, h){
      var d = document.createElement("div");
      d.className = "tile";
      d.style.cssText = "left:"+x+"px;top:"+(y+14)+"px;width:"+w+"px;height:"+Math.max(h-14,0)+"px;background:"+paint(n.color);
      d.title = n.label + " " + (n.text || "");
      var b = document.createElement("b"); b.textContent = n.label; d.appendChild(b);
      var s = document.createElement("span"); s.textContent = (n.text || ""); d.appendChild(s);
      box.appendChild(d);
    });
  });
})();

(function(){
  var headers = document.querySelectorAll("th[data-col]");
  var sortCol = "", sortAsc = true;
  for (var i = 0; i < headers.length; i++) {
    headers[i].addEventListener("click", (function(th){
      return function(){
        var col = th.dataset.col;
        if (sortCol === col) sortAsc = !sortAsc; else { sortCol = col; sortAsc = th.dataset.type !== "num"; }
        var tbody = document.querySelector("#leaderboard tbody");
        var pairs = [];
        var rows = tbody.querySelectorAll("tr.entry");
        for (var j = 0; j < rows.length; j++) pairs.push([rows[j], rows[j].nextElementSibling]);
        var ci = Array.prototype.indexOf.call(th.parentNode.children, th);
        pairs.sort(function(a, b){
          var ac = a[0].children[ci], bc = b[0].children[ci];
          if (th.dataset.type === "num") {
            var an = parseFloat(ac.dataset.v), bn = parseFloat(bc.dataset.v);
            return sortAsc ? an - bn : bn - an;
          }
          var av = ac.textContent.trim(), bv = bc.textContent.trim();
          return sortAsc ? av.localeCompare(bv) : bv.localeCompare(av);
        });
        for (var k = 0; k < pairs.length; k++) {
          tbody.appendChild(pairs[k][0]);
          tbody.appendChild(pairs[k][1]);
        }
        document.querySelectorAll(".sort-arrow").forEach(function(e){ e.remove(); });
        var arrow = document.createElement("span");
        arrow.className = "sort-arrow";
        arrow.textContent = sortAsc ? " ▲" : " ▼";
        th.appendChild(arrow);
      };
    })(headers[i]));
  }
})();
</script>
{{end}}
`
