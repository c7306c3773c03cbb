package site

// layoutTemplate wraps every page: sidebar, top bar and the fullscreen
// overlay container.
const layoutTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.Links.Asset "style.css"}}">
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/chart.js@4/dist/chart.umd.min.js"></script>
</head>
<body data-socket="{{.Links.Socket}}" data-viz-page="{{.Links.Viz "__key__"}}" data-search-index="{{.Links.SearchIndex}}">
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <a href="{{.Links.Home}}" class="project-title">{{.SiteTitle}}</a>
      {{if .Links.SearchIndex}}<input type="text" id="search-input" placeholder="Search the book..." autocomplete="off">{{end}}
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      <a href="{{.Links.Book}}" class="tree-link">Contents</a>
      {{range .Book.Sections}}
      <div class="tree-section{{if eq .ID $.Active}} active{{end}}">
        <span class="tree-section-title">{{.Icon}} {{.Title}}</span>
        <ul>{{$sid := .ID}}{{range $i, $c := .Chapters}}
          <li><a href="{{$.Links.Chapter $sid $i}}">{{$c.Title}}</a></li>{{end}}
        </ul>
      </div>
      {{end}}
      {{if .Book.Articles}}
      <div class="tree-section">
        <span class="tree-section-title">Articles</span>
        <ul>{{range .Book.Articles}}
          <li><a href="{{$.Links.Article .ID}}">{{.Title}}</a></li>{{end}}
        </ul>
      </div>
      {{end}}
    </div>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
        <svg width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <circle cx="12" cy="12" r="5"/><path d="M12 1v2M12 21v2M4.2 4.2l1.4 1.4M18.4 18.4l1.4 1.4M1 12h2M21 12h2M4.2 19.8l1.4-1.4M18.4 5.6l1.4-1.4"/>
        </svg>
      </button>
    </div>
    <div class="search-results" id="search-results" hidden></div>
    <article class="page-content">
{{.Content}}
    </article>
  </main>
  <div class="viz-overlay" id="viz-overlay" hidden>
    <div class="viz-overlay-panel" role="dialog" aria-modal="true" aria-labelledby="viz-overlay-title">
      <div class="viz-overlay-header">
        <div>
          <h3 id="viz-overlay-title"></h3>
          <p id="viz-overlay-description"></p>
        </div>
        <button type="button" class="viz-overlay-close" id="viz-overlay-close" aria-label="Close fullscreen view">&times;</button>
      </div>
      <div class="viz-overlay-body" id="viz-overlay-body"></div>
      <div class="viz-overlay-hint">Press Esc or click outside to close</div>
    </div>
  </div>
  <div class="image-overlay" id="image-overlay" hidden>
    <figure class="image-overlay-panel">
      <button type="button" class="image-overlay-close" id="image-overlay-close" aria-label="Close image">&times;</button>
      <img id="image-overlay-img" src="" alt="">
      <figcaption id="image-overlay-caption" hidden></figcaption>
    </figure>
  </div>
  <script src="{{.Links.Asset "script.js"}}"></script>
</body>
</html>
`

// bodyTemplates holds the page bodies executed into the layout's content
// slot. Each receives a bodyData.
const bodyTemplates = `
{{define "errorPanel"}}<div class="error-panel" role="alert"><h2>Error</h2><p>{{.}}</p></div>{{end}}

{{define "home"}}
<section class="hero">
  <h1>{{.SiteTitle}}</h1>
  <p class="hero-lead">An interactive book on scaling, neuroscience and the road to general intelligence.</p>
  <div class="hero-actions">
    <a class="button" href="{{.Links.Book}}">Read the book</a>
    {{with .Book.Articles}}<a class="button secondary" href="{{$.Links.Article (index . 0).ID}}">Start with the articles</a>{{end}}
  </div>
</section>
<div class="section-cards">
  {{range .Book.Sections}}
  <a class="section-card" href="{{$.Links.Chapter .ID 0}}">
    <span class="section-icon">{{.Icon}}</span>
    <h2>{{.Title}}</h2>
    <p>{{.Description}}</p>
    <span class="section-meta">{{len .Chapters}} chapters</span>
  </a>
  {{end}}
</div>
{{if .Book.Articles}}
<h2>Articles</h2>
<ul class="article-list">
  {{range .Book.Articles}}<li><a href="{{$.Links.Article .ID}}">{{.Title}}</a></li>
  {{end}}
</ul>
{{end}}
{{end}}

{{define "book"}}
<h1>Contents</h1>
{{range .Book.Sections}}
<section class="toc-section">
  <h2>{{.Icon}} {{.Title}}</h2>
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <ol>{{$sid := .ID}}{{range $i, $c := .Chapters}}
    <li><a href="{{$.Links.Chapter $sid $i}}">{{$c.Title}}</a></li>{{end}}
  </ol>
</section>
{{end}}
{{end}}

{{define "article"}}{{with .View}}
<header class="article-header">
  <a class="back-link" href="{{$.Links.Home}}">&larr; Home</a>
  <h1>{{.Title}}</h1>
</header>
{{if .Error}}{{template "errorPanel" .Error}}{{else}}<div class="enhanced-markdown" data-article="{{.ID}}">
{{.HTML}}
</div>{{end}}
{{end}}{{end}}

{{define "chapter"}}{{with .View}}
<header class="chapter-header">
  <div class="breadcrumb"><a href="{{$.Links.Book}}">Book</a> / {{.Section.Title}}</div>
  <h1>{{.Chapter.Title}}</h1>
  <div class="progress">
    <div class="progress-label">{{.Progress.Label}}</div>
    <div class="progress-track"><div class="progress-fill" style="width: {{.Progress.Percent}}%"></div></div>
  </div>
  <nav class="chapter-tabs">{{$sid := .Section.ID}}{{$cur := .Index}}{{range $i, $c := .Section.Chapters}}
    <a href="{{$.Links.Chapter $sid $i}}"{{if eq $i $cur}} class="active"{{end}}>{{$c.Title}}</a>{{end}}
  </nav>
</header>
{{if .Error}}{{template "errorPanel" .Error}}{{else}}<div class="enhanced-markdown" data-article="{{.Chapter.ContentID}}">
{{.HTML}}
</div>{{end}}
<nav class="chapter-nav">
  {{with .Prev}}<a class="prev" href="{{$.Links.Chapter .SectionID .Index}}">&larr; {{.Chapter.Title}}</a>{{end}}
  {{with .Next}}<a class="next" href="{{$.Links.Chapter .SectionID .Index}}">{{.Chapter.Title}} &rarr;</a>{{end}}
</nav>
{{end}}{{end}}

{{define "viz"}}{{with .View}}
<div class="viz-page">
  <header class="viz-page-header {{.Descriptor.Accent.Gradient}}">
    <h1>{{.Descriptor.Title}}</h1>
    <p>{{.Descriptor.Description}}</p>
  </header>
  <div class="viz-fullscreen-body">{{.HTML}}</div>
</div>
{{end}}{{end}}

{{define "error"}}
{{template "errorPanel" .View}}
<p><a href="{{.Links.Home}}">Back to home</a></p>
{{end}}
`

// cssContent is the stylesheet shared by every page.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --bg-sidebar: #f1f3f5;
  --text: #212529;
  --text-secondary: #495057;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #7c3aed;
  --accent-hover: #6d28d9;
  --accent-light: #f5f3ff;
  --code-bg: #f1f3f5;
  --link: #6d28d9;
  --sidebar-width: 280px;
  --content-max-width: 900px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 10px 30px rgba(0,0,0,0.25);
}

[data-theme="dark"] {
  --bg: #1a1b26;
  --bg-secondary: #1f2030;
  --bg-sidebar: #16171f;
  --text: #c0caf5;
  --text-secondary: #a9b1d6;
  --text-muted: #565f89;
  --border: #292e42;
  --accent: #bb9af7;
  --accent-hover: #c9aefa;
  --accent-light: #24203a;
  --code-bg: #1f2030;
  --link: #bb9af7;
  --shadow: 0 1px 3px rgba(0,0,0,0.3);
  --shadow-lg: 0 10px 30px rgba(0,0,0,0.6);
}

/* ============ Reset & Base ============ */
*, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }

html { font-size: 16px; scroll-behavior: smooth; }

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  display: flex;
  min-height: 100vh;
}

body.overlay-open { overflow: hidden; }

a { color: var(--link); text-decoration: none; }
a:hover { text-decoration: underline; }

/* ============ Sidebar ============ */
.sidebar {
  width: var(--sidebar-width);
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  position: fixed;
  top: 0; left: 0; bottom: 0;
  overflow-y: auto;
  z-index: 100;
}

.sidebar-header {
  padding: 20px 16px 12px;
  border-bottom: 1px solid var(--border);
  position: sticky;
  top: 0;
  background: var(--bg-sidebar);
}

.project-title {
  display: block;
  font-size: 1.1rem;
  font-weight: 700;
  color: var(--accent);
  margin-bottom: 12px;
}

#search-input {
  width: 100%;
  padding: 8px 12px;
  border: 1px solid var(--border);
  border-radius: 6px;
  font-size: 0.85rem;
  background: var(--bg);
  color: var(--text);
  outline: none;
}
#search-input:focus { border-color: var(--accent); }

.sidebar-tree { padding: 12px 8px; }
.tree-link { display: block; padding: 4px 8px; font-weight: 600; }
.tree-section { margin-top: 12px; }
.tree-section-title {
  display: block;
  padding: 4px 8px;
  font-size: 0.75rem;
  font-weight: 700;
  text-transform: uppercase;
  letter-spacing: 0.05em;
  color: var(--text-muted);
}
.tree-section.active .tree-section-title { color: var(--accent); }
.tree-section ul { list-style: none; }
.tree-section li a {
  display: block;
  padding: 3px 8px 3px 16px;
  border-radius: 4px;
  font-size: 0.875rem;
  color: var(--text-secondary);
}
.tree-section li a:hover { background: var(--accent-light); text-decoration: none; }

.sidebar-overlay { display: none; }

/* ============ Content ============ */
.content {
  margin-left: var(--sidebar-width);
  flex: 1;
  min-width: 0;
  padding: 24px 48px 64px;
}

.top-bar { display: flex; justify-content: flex-end; gap: 8px; margin-bottom: 16px; }
.menu-toggle { display: none; }
.menu-toggle, .theme-toggle {
  background: none;
  border: 1px solid var(--border);
  border-radius: 6px;
  padding: 6px;
  color: var(--text-secondary);
  cursor: pointer;
}

.page-content { max-width: var(--content-max-width); margin: 0 auto; }

.page-content h1 { font-size: 2.2rem; line-height: 1.25; margin: 8px 0 16px; }
.page-content h2 { font-size: 1.6rem; margin: 40px 0 12px; }
.page-content h3 { font-size: 1.25rem; margin: 28px 0 8px; }
.page-content p, .page-content ul, .page-content ol { margin: 0 0 16px; }
.page-content ul, .page-content ol { padding-left: 24px; }
.page-content blockquote {
  border-left: 4px solid var(--accent);
  padding: 4px 16px;
  color: var(--text-secondary);
  margin: 0 0 16px;
}
.page-content table { border-collapse: collapse; margin: 0 0 16px; width: 100%; }
.page-content th, .page-content td { border: 1px solid var(--border); padding: 6px 12px; }
.page-content img { max-width: 100%; }

/* ============ Code ============ */
.code-block-wrapper { position: relative; margin: 0 0 16px; }
.code-block-wrapper::before {
  content: attr(data-language);
  position: absolute;
  top: 4px; right: 8px;
  font-size: 0.7rem;
  color: var(--text-muted);
  text-transform: uppercase;
}
.page-content pre {
  background: var(--code-bg);
  border-radius: 8px;
  padding: 16px;
  overflow-x: auto;
  font-size: 0.85rem;
}
.page-content :not(pre) > code {
  background: var(--code-bg);
  padding: 1px 5px;
  border-radius: 4px;
  font-size: 0.9em;
}
pre.mermaid { background: transparent; text-align: center; }

/* ============ Home & Book ============ */
.hero { padding: 32px 0; }
.hero-lead { font-size: 1.2rem; color: var(--text-secondary); }
.hero-actions { display: flex; gap: 12px; margin-top: 16px; }
.button {
  display: inline-block;
  padding: 8px 18px;
  border-radius: 6px;
  background: var(--accent);
  color: #fff;
  font-weight: 600;
}
.button:hover { background: var(--accent-hover); text-decoration: none; }
.button.secondary { background: var(--bg-secondary); color: var(--accent); border: 1px solid var(--border); }

.section-cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(240px, 1fr)); gap: 16px; margin: 24px 0; }
.section-card {
  display: block;
  padding: 20px;
  border: 1px solid var(--border);
  border-radius: 10px;
  box-shadow: var(--shadow);
  color: var(--text);
}
.section-card:hover { border-color: var(--accent); text-decoration: none; }
.section-icon { font-size: 2rem; }
.section-meta { font-size: 0.8rem; color: var(--text-muted); }

.toc-section { margin-bottom: 24px; }

/* ============ Chapters ============ */
.breadcrumb { font-size: 0.85rem; color: var(--text-muted); }
.progress { margin: 8px 0 16px; }
.progress-label { font-size: 0.8rem; color: var(--text-muted); }
.progress-track { height: 6px; background: var(--bg-secondary); border-radius: 3px; overflow: hidden; }
.progress-fill { height: 100%; background: var(--accent); transition: width 0.3s; }
.chapter-tabs { display: flex; flex-wrap: wrap; gap: 4px; border-bottom: 1px solid var(--border); margin-bottom: 24px; }
.chapter-tabs a { padding: 6px 12px; font-size: 0.875rem; color: var(--text-secondary); border-bottom: 2px solid transparent; }
.chapter-tabs a.active { color: var(--accent); border-bottom-color: var(--accent); }
.chapter-nav { display: flex; justify-content: space-between; margin-top: 48px; padding-top: 16px; border-top: 1px solid var(--border); }
.chapter-nav .next { margin-left: auto; }

.error-panel {
  padding: 16px;
  border: 1px solid #fecaca;
  background: #fef2f2;
  color: #b91c1c;
  border-radius: 8px;
  margin: 24px 0;
}

/* ============ Callouts & figures ============ */
.callout { display: flex; }
.callout-body > :last-child { margin-bottom: 0; }
.callout-note { background: #eff6ff; color: #1e40af; border-color: #bfdbfe; }
.callout-warning { background: #fefce8; color: #854d0e; border-color: #fef08a; }
.callout-danger { background: #fef2f2; color: #991b1b; border-color: #fecaca; }
.callout-tip { background: #f0fdf4; color: #166534; border-color: #bbf7d0; }
.callout-default { background: #f9fafb; color: #1f2937; border-color: #e5e7eb; }
.callout, .viz-card, .viz-error { border-width: 1px; border-style: solid; border-radius: 8px; padding: 16px; margin: 24px 0; }
.figure { margin: 32px 0; }
.figure figcaption { text-align: center; font-size: 0.875rem; color: var(--text-muted); margin-top: 8px; }

/* ============ Visualization chrome ============ */
.viz-card { padding: 0; overflow: hidden; box-shadow: var(--shadow-lg); border-color: var(--border); }
.viz-header { display: flex; justify-content: space-between; align-items: center; padding: 16px; color: #fff; }
.viz-title { font-size: 1.1rem; font-weight: 600; margin: 0 !important; color: #fff; }
.viz-description { font-size: 0.875rem; margin: 0 !important; opacity: 0.9; }
.viz-expand {
  background: rgba(255,255,255,0.15);
  border: none;
  border-radius: 6px;
  padding: 6px;
  color: #fff;
  cursor: pointer;
}
.viz-expand:hover { background: rgba(255,255,255,0.3); }
.viz-expand svg { width: 20px; height: 20px; display: block; }
.viz-body { padding: 24px; background: #fff; display: flex; justify-content: center; align-items: center; }
.viz-mount { width: 100%; position: relative; }
.viz-canvas { width: 100%; height: 100%; }
.viz-regions { position: absolute; bottom: 8px; left: 8px; display: flex; flex-wrap: wrap; gap: 4px; }
.viz-region { font-size: 0.75rem; padding: 2px 8px; border-radius: 4px; border: 1px solid var(--border); background: #fff; cursor: pointer; }
.viz-error { background: #fef2f2; color: #dc2626; border-color: #fee2e2; }
.viz-error p { margin: 0 !important; }

.bg-gradient-to-r { background-image: linear-gradient(to right, var(--grad-from), var(--grad-to)); }
.from-purple-600 { --grad-from: #9333ea; } .to-purple-600 { --grad-to: #9333ea; }
.from-blue-600 { --grad-from: #2563eb; } .to-blue-600 { --grad-to: #2563eb; }
.from-cyan-600 { --grad-from: #0891b2; } .to-cyan-600 { --grad-to: #0891b2; }
.from-indigo-600 { --grad-from: #4f46e5; } .to-indigo-600 { --grad-to: #4f46e5; }
.from-green-600 { --grad-from: #16a34a; } .to-green-600 { --grad-to: #16a34a; }
.from-teal-600 { --grad-from: #0d9488; } .to-teal-600 { --grad-to: #0d9488; }
.from-pink-600 { --grad-from: #db2777; } .to-pink-600 { --grad-to: #db2777; }
.from-rose-600 { --grad-from: #e11d48; } .to-rose-600 { --grad-to: #e11d48; }
.from-amber-600 { --grad-from: #d97706; } .to-orange-600 { --grad-to: #ea580c; }
.from-red-600 { --grad-from: #dc2626; }
.from-sky-600 { --grad-from: #0284c7; }
.from-emerald-600 { --grad-from: #059669; }
.from-gray-600 { --grad-from: #4b5563; } .to-gray-700 { --grad-to: #374151; }

/* ============ Fullscreen overlay ============ */
.viz-overlay {
  position: fixed;
  inset: 0;
  z-index: 1000;
  background: rgba(0,0,0,0.7);
  display: flex;
  align-items: center;
  justify-content: center;
  padding: 24px;
}
.viz-overlay[hidden] { display: none; }
.viz-overlay-panel {
  background: var(--bg);
  border-radius: 12px;
  width: 100%;
  height: 100%;
  max-width: 1400px;
  display: flex;
  flex-direction: column;
  overflow: hidden;
  box-shadow: var(--shadow-lg);
}
.viz-overlay-header { display: flex; justify-content: space-between; align-items: flex-start; padding: 16px 20px; border-bottom: 1px solid var(--border); }
.viz-overlay-header h3 { font-size: 1.25rem; }
.viz-overlay-header p { color: var(--text-muted); font-size: 0.9rem; }
.viz-overlay-close { background: none; border: none; font-size: 1.8rem; line-height: 1; color: var(--text-secondary); cursor: pointer; }
.viz-overlay-body { flex: 1; padding: 24px; min-height: 0; }
.viz-overlay-hint { text-align: center; font-size: 0.75rem; color: var(--text-muted); padding: 8px; }

/* ============ Image overlay ============ */
.enhanced-markdown img { cursor: zoom-in; }
.image-overlay {
  position: fixed; inset: 0; z-index: 60;
  background: rgba(0, 0, 0, 0.9);
  display: flex; align-items: center; justify-content: center;
  padding: 16px;
}
.image-overlay[hidden] { display: none; }
.image-overlay-panel { position: relative; max-width: 64rem; max-height: 100%; overflow: auto; margin: 0; }
.image-overlay-panel img { max-width: 100%; max-height: 90vh; object-fit: contain; display: block; margin: 0 auto; }
.image-overlay-panel figcaption {
  background: rgba(255, 255, 255, 0.8); color: #1f2937;
  text-align: center; padding: 12px; margin-top: 8px; border-radius: 6px;
}
.image-overlay-close {
  position: absolute; top: 8px; right: 8px;
  background: rgba(0, 0, 0, 0.5); color: #fff; border: none; border-radius: 50%;
  width: 36px; height: 36px; font-size: 1.5rem; line-height: 1; cursor: pointer;
}

.viz-page-header { color: #fff; padding: 20px; border-radius: 10px 10px 0 0; }
.viz-page-header h1 { margin: 0 !important; font-size: 1.6rem !important; }
.viz-fullscreen-body { height: 70vh; border: 1px solid var(--border); border-top: none; border-radius: 0 0 10px 10px; padding: 24px; }

/* ============ Search ============ */
.search-results { max-width: var(--content-max-width); margin: 0 auto 24px; border: 1px solid var(--border); border-radius: 8px; }
.search-results a { display: block; padding: 10px 16px; border-bottom: 1px solid var(--border); color: var(--text); }
.search-results a:last-child { border-bottom: none; }
.search-results small { display: block; color: var(--text-muted); }

/* ============ Responsive ============ */
@media (max-width: 900px) {
  .sidebar { transform: translateX(-100%); transition: transform 0.2s; }
  .sidebar.open { transform: none; }
  .sidebar-overlay.open { display: block; position: fixed; inset: 0; background: rgba(0,0,0,0.3); z-index: 99; }
  .content { margin-left: 0; padding: 16px; }
  .menu-toggle { display: block; margin-right: auto; }
}
`

// jsContent wires the fullscreen overlay, charts, mermaid, search, sidebar
// and theme.
const jsContent = `(function() {
  "use strict";

  var html = document.documentElement;
  var body = document.body;

  // ===== Theme toggle =====
  function getStoredTheme() {
    try { return localStorage.getItem("beyond-theme"); } catch(e) { return null; }
  }

  function setTheme(theme) {
    html.setAttribute("data-theme", theme);
    try { localStorage.setItem("beyond-theme", theme); } catch(e) {}
  }

  setTheme(getStoredTheme() || "light");
  document.getElementById("theme-toggle").addEventListener("click", function() {
    setTheme(html.getAttribute("data-theme") === "dark" ? "light" : "dark");
  });

  // ===== Sidebar =====
  var sidebar = document.getElementById("sidebar");
  var sidebarOverlay = document.getElementById("sidebar-overlay");
  document.getElementById("menu-toggle").addEventListener("click", function() {
    sidebar.classList.toggle("open");
    sidebarOverlay.classList.toggle("open");
  });
  sidebarOverlay.addEventListener("click", function() {
    sidebar.classList.remove("open");
    sidebarOverlay.classList.remove("open");
  });

  // ===== Widgets =====
  var palette = ["#7c3aed", "#2563eb", "#db2777", "#059669", "#d97706", "#dc2626"];

  function mountChart(el, data) {
    if (typeof Chart === "undefined") { return; }
    var tabs = data.tabs || [];
    var canvas = document.createElement("canvas");
    var chart = null;

    function show(tab) {
      var def = data.charts[tab];
      if (chart) { chart.destroy(); }
      chart = new Chart(canvas, {
        type: def.type,
        data: {
          labels: def.labels,
          datasets: def.datasets.map(function(ds, i) {
            var c = ds.color || palette[i % palette.length];
            return { label: ds.label, data: ds.data, borderColor: c, backgroundColor: c + "55" };
          })
        },
        options: {
          responsive: true,
          maintainAspectRatio: false,
          scales: def.type === "radar" ? {} : {
            x: { title: { display: !!def.x_label, text: def.x_label } },
            y: { type: def.log_scale ? "logarithmic" : "linear", title: { display: !!def.y_label, text: def.y_label } }
          }
        }
      });
    }

    if (tabs.length > 1) {
      var bar = document.createElement("div");
      bar.className = "chapter-tabs";
      tabs.forEach(function(tab, i) {
        var a = document.createElement("a");
        a.href = "#";
        a.textContent = tab;
        if (i === 0) { a.className = "active"; }
        a.addEventListener("click", function(e) {
          e.preventDefault();
          bar.querySelectorAll("a").forEach(function(x) { x.className = ""; });
          a.className = "active";
          show(tab);
        });
        bar.appendChild(a);
      });
      el.appendChild(bar);
    }
    var holder = document.createElement("div");
    holder.style.position = "relative";
    holder.style.height = tabs.length > 1 ? "calc(100% - 40px)" : "100%";
    holder.appendChild(canvas);
    el.appendChild(holder);
    if (tabs.length) { show(tabs[0]); }
  }

  function mountCanvas(el, data) {
    var canvas = el.querySelector("canvas");
    if (!canvas || !canvas.getContext) { return; }
    var ctx = canvas.getContext("2d");
    var scale = data.scale || 1;
    var t = 0;
    function frame() {
      if (!document.body.contains(canvas)) { return; }
      canvas.width = canvas.clientWidth * scale;
      canvas.height = canvas.clientHeight * scale;
      ctx.clearRect(0, 0, canvas.width, canvas.height);
      var layers = (data.params && data.params.layers) || [5, 5];
      var w = canvas.width / (layers.length + 1);
      layers.forEach(function(n, li) {
        for (var k = 0; k < n; k++) {
          var y = canvas.height * (k + 1) / (n + 1);
          var pulse = 0.5 + 0.5 * Math.sin(t / 20 + li + k);
          ctx.beginPath();
          ctx.fillStyle = "rgba(124, 58, 237," + (0.3 + 0.7 * pulse) + ")";
          ctx.arc(w * (li + 1), y, 6 * scale, 0, Math.PI * 2);
          ctx.fill();
        }
      });
      t++;
      requestAnimationFrame(frame);
    }
    frame();
  }

  function mountWidgets(root) {
    root.querySelectorAll(".viz-mount").forEach(function(el) {
      if (el.getAttribute("data-mounted")) { return; }
      el.setAttribute("data-mounted", "1");
      var raw = el.querySelector(".viz-data");
      var data = {};
      try { data = raw ? JSON.parse(raw.textContent) : {}; } catch(e) { return; }
      var kind = el.getAttribute("data-widget");
      if (kind === "chart") { mountChart(el, data); }
      if (kind === "canvas") { mountCanvas(el, data); }
    });
    if (typeof mermaid !== "undefined") {
      var pending = root.querySelectorAll("pre.mermaid:not([data-processed])");
      if (pending.length) { mermaid.run({ nodes: pending }); }
    }
  }

  if (typeof mermaid !== "undefined") {
    mermaid.initialize({ startOnLoad: false, theme: "default", securityLevel: "loose" });
  }
  mountWidgets(document);

  // ===== Fullscreen overlay =====
  var overlay = document.getElementById("viz-overlay");
  var overlayTitle = document.getElementById("viz-overlay-title");
  var overlayDescription = document.getElementById("viz-overlay-description");
  var overlayBody = document.getElementById("viz-overlay-body");
  var socketPath = body.getAttribute("data-socket");
  var socket = null;
  var queue = [];

  function showOverlay(state) {
    if (!state.showing) {
      overlay.hidden = true;
      overlayBody.innerHTML = "";
      body.classList.remove("overlay-open");
      return;
    }
    overlayTitle.textContent = state.title || "";
    overlayDescription.textContent = state.description || "";
    overlayBody.innerHTML = state.html || "";
    overlay.hidden = false;
    body.classList.add("overlay-open");
    mountWidgets(overlayBody);
  }

  function connect() {
    if (!socketPath || !window.WebSocket) { return null; }
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + socketPath);
    ws.onopen = function() {
      while (queue.length) { ws.send(queue.shift()); }
    };
    ws.onmessage = function(ev) {
      var msg;
      try { msg = JSON.parse(ev.data); } catch(e) { return; }
      if (msg.type === "state") { showOverlay(msg); }
      if (msg.type === "error") { console.warn("overlay:", msg.content); }
    };
    ws.onclose = function() { socket = null; };
    return ws;
  }

  function send(msg) {
    var data = JSON.stringify(msg);
    if (!socket) { socket = connect(); }
    if (!socket) { return false; }
    if (socket.readyState === WebSocket.OPEN) { socket.send(data); } else { queue.push(data); }
    return true;
  }

  function expandViaPage(btn) {
    var pattern = body.getAttribute("data-viz-page");
    if (!pattern) { return; }
    var href = pattern.replace("__key__", encodeURIComponent(btn.getAttribute("data-viz-type")));
    fetch(href).then(function(res) { return res.text(); }).then(function(text) {
      var doc = new DOMParser().parseFromString(text, "text/html");
      var node = doc.querySelector(".viz-fullscreen-body");
      showOverlay({
        showing: true,
        title: btn.getAttribute("data-viz-title"),
        description: btn.getAttribute("data-viz-description"),
        html: node ? node.innerHTML : text
      });
    });
  }

  function dismiss() {
    if (overlay.hidden) { return; }
    if (!send({ type: "dismiss" })) { showOverlay({ showing: false }); }
  }

  document.addEventListener("click", function(e) {
    var btn = e.target.closest ? e.target.closest(".viz-expand") : null;
    if (!btn) { return; }
    e.preventDefault();
    var sent = send({
      type: "expand",
      type_key: btn.getAttribute("data-viz-type"),
      title: btn.getAttribute("data-viz-title"),
      description: btn.getAttribute("data-viz-description")
    });
    if (!sent) { expandViaPage(btn); }
  });

  overlay.addEventListener("click", function(e) {
    if (e.target === overlay) { dismiss(); }
  });
  document.getElementById("viz-overlay-close").addEventListener("click", dismiss);
  // ===== Image overlay =====
  var imageOverlay = document.getElementById("image-overlay");
  var imageOverlayImg = document.getElementById("image-overlay-img");
  var imageOverlayCaption = document.getElementById("image-overlay-caption");

  function showImage(img) {
    imageOverlayImg.src = img.currentSrc || img.src;
    imageOverlayImg.alt = img.alt || "";
    imageOverlayCaption.textContent = img.alt || "";
    imageOverlayCaption.hidden = !img.alt;
    imageOverlay.hidden = false;
    body.classList.add("overlay-open");
  }

  function hideImage() {
    if (imageOverlay.hidden) { return false; }
    imageOverlay.hidden = true;
    imageOverlayImg.src = "";
    if (overlay.hidden) { body.classList.remove("overlay-open"); }
    return true;
  }

  document.addEventListener("click", function(e) {
    if (!e.target.closest || e.target.tagName !== "IMG") { return; }
    if (!e.target.closest(".enhanced-markdown") || e.target.closest(".viz-card")) { return; }
    e.preventDefault();
    showImage(e.target);
  });
  imageOverlay.addEventListener("click", function(e) {
    if (e.target !== imageOverlayImg) { hideImage(); }
  });

  document.addEventListener("keydown", function(e) {
    if (e.key !== "Escape") { return; }
    if (!hideImage()) { dismiss(); }
  });
  window.addEventListener("pagehide", function() {
    if (socket) { socket.close(); }
  });

  // ===== Search =====
  var searchInput = document.getElementById("search-input");
  var searchResults = document.getElementById("search-results");
  var indexPath = body.getAttribute("data-search-index");
  var searchIndex = null;

  function loadIndex(cb) {
    if (searchIndex) { cb(searchIndex); return; }
    fetch(indexPath).then(function(res) { return res.json(); }).then(function(data) {
      searchIndex = data;
      cb(data);
    });
  }

  function prefix() {
    var depth = indexPath.split("../").length - 1;
    var p = "";
    for (var i = 0; i < depth; i++) { p += "../"; }
    return p;
  }

  if (searchInput && indexPath) {
    searchInput.addEventListener("input", function() {
      var q = searchInput.value.trim().toLowerCase();
      if (q.length < 2) { searchResults.hidden = true; return; }
      loadIndex(function(entries) {
        var hits = entries.filter(function(en) {
          return en.title.toLowerCase().indexOf(q) >= 0 || en.content.toLowerCase().indexOf(q) >= 0;
        }).slice(0, 10);
        searchResults.innerHTML = "";
        hits.forEach(function(en) {
          var a = document.createElement("a");
          a.href = prefix() + en.path;
          a.textContent = en.title;
          var small = document.createElement("small");
          small.textContent = en.summary;
          a.appendChild(small);
          searchResults.appendChild(a);
        });
        searchResults.hidden = hits.length === 0;
      });
    });
  }
})();
`
