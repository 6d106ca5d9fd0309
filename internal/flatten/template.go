package flatten

import "html/template"

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"bytesHuman":  BytesHuman,
	"sourceLabel": sourceLabel,
}).Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{.Title}} - Flattened Repository</title>
<link rel="icon" href="data:image/svg+xml,<svg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'><text y='.9em' font-size='90'>📁</text></svg>">
<style>
  :root {
    --bg-primary: #1e1e1e;
    --bg-secondary: #252526;
    --bg-tertiary: #2d2d30;
    --bg-hover: #37373d;
    --border-color: #3e3e42;
    --text-primary: #cccccc;
    --text-secondary: #9d9d9d;
    --text-muted: #6a6a6a;
    --accent-blue: #007acc;
    --accent-green: #4ec9b0;
    --accent-orange: #ce9178;
    --scrollbar-bg: #2b2b2b;
    --scrollbar-thumb: #424242;
  }

  * {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
  }

  body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    background: var(--bg-primary);
    color: var(--text-primary);
    line-height: 1.6;
    font-size: 14px;
  }

  ::-webkit-scrollbar {
    width: 14px;
    height: 14px;
  }

  ::-webkit-scrollbar-track {
    background: var(--scrollbar-bg);
  }

  ::-webkit-scrollbar-thumb {
    background: var(--scrollbar-thumb);
    border-radius: 10px;
    border: 3px solid var(--scrollbar-bg);
  }

  .navbar {
    background: var(--bg-secondary);
    border-bottom: 1px solid var(--border-color);
    padding: 0 20px;
    height: 50px;
    display: flex;
    align-items: center;
    justify-content: space-between;
    position: sticky;
    top: 0;
    z-index: 100;
  }

  .navbar-brand {
    display: flex;
    align-items: center;
    gap: 12px;
    font-weight: 600;
    font-size: 16px;
  }

  .repo-info {
    display: flex;
    align-items: center;
    gap: 15px;
    font-size: 13px;
    color: var(--text-secondary);
  }

  .repo-info a {
    color: var(--accent-blue);
    text-decoration: none;
  }

  .main-container {
    display: grid;
    grid-template-columns: 300px minmax(0, 1fr);
    height: calc(100vh - 50px);
  }

  .sidebar {
    background: var(--bg-secondary);
    border-right: 1px solid var(--border-color);
    overflow-y: auto;
    position: sticky;
    top: 50px;
    height: calc(100vh - 50px);
  }

  .sidebar-header {
    padding: 20px 16px 16px 16px;
    border-bottom: 1px solid var(--border-color);
    background: var(--bg-tertiary);
  }

  .sidebar-title {
    font-size: 13px;
    font-weight: 600;
    margin-bottom: 12px;
    text-transform: uppercase;
    letter-spacing: 0.5px;
  }

  .view-toggle {
    display: flex;
    gap: 8px;
  }

  .toggle-btn {
    padding: 8px 16px;
    border: 1px solid var(--border-color);
    background: var(--bg-primary);
    color: var(--text-secondary);
    cursor: pointer;
    border-radius: 6px;
    font-size: 12px;
    font-weight: 500;
    display: flex;
    align-items: center;
    gap: 6px;
  }

  .toggle-btn:hover {
    background: var(--bg-hover);
    border-color: var(--accent-blue);
  }

  .toggle-btn.active {
    background: var(--accent-blue);
    color: white;
    border-color: var(--accent-blue);
  }

  .sidebar-content {
    padding: 16px;
  }

  .toc {
    list-style: none;
  }

  .toc li {
    margin: 2px 0;
  }

  .toc a {
    display: flex;
    align-items: center;
    padding: 6px 12px;
    color: var(--text-secondary);
    text-decoration: none;
    border-radius: 4px;
    font-size: 13px;
    gap: 8px;
  }

  .toc a:hover {
    background: var(--bg-hover);
    color: var(--text-primary);
  }

  .file-icon {
    font-size: 14px;
    width: 16px;
    flex-shrink: 0;
  }

  .file-size {
    margin-left: auto;
    font-size: 11px;
    color: var(--text-muted);
  }

  .content {
    overflow-y: auto;
    background: var(--bg-primary);
  }

  .content-inner {
    padding: 20px;
  }

  .file-section {
    margin-bottom: 24px;
  }

  .code-container {
    background: var(--bg-secondary);
    border-radius: 8px;
    overflow: hidden;
    border: 1px solid var(--border-color);
  }

  .code-header {
    background: var(--bg-tertiary);
    padding: 12px 16px;
    border-bottom: 1px solid var(--border-color);
    display: flex;
    align-items: center;
    gap: 10px;
    font-size: 13px;
  }

  .file-path {
    color: var(--text-primary);
    font-family: 'Cascadia Code', 'Fira Code', Monaco, 'Courier New', monospace;
    flex: 1;
  }

  .copy-btn {
    background: var(--bg-primary);
    border: 1px solid var(--border-color);
    color: var(--text-secondary);
    padding: 6px 12px;
    border-radius: 4px;
    cursor: pointer;
    font-size: 12px;
    display: flex;
    align-items: center;
    gap: 6px;
  }

  .copy-btn:hover {
    background: var(--bg-hover);
    border-color: var(--accent-blue);
    color: var(--accent-blue);
  }

  .copy-btn.copied {
    background: var(--accent-green);
    border-color: var(--accent-green);
    color: white;
  }

  .highlight {
    background: var(--bg-secondary) !important;
    margin: 0;
    padding: 16px;
  }

  .highlight pre {
    background: transparent !important;
    margin: 0;
    padding: 0;
    font-family: 'Cascadia Code', 'Fira Code', Monaco, 'Courier New', monospace;
    font-size: 13px;
    line-height: 1.5;
  }

  .markdown-content {
    padding: 20px;
    background: var(--bg-secondary);
    border-radius: 8px;
    border: 1px solid var(--border-color);
  }

  .markdown-content h1, .markdown-content h2, .markdown-content h3 {
    margin-top: 24px;
    margin-bottom: 12px;
  }

  .markdown-content h1:first-child,
  .markdown-content h2:first-child,
  .markdown-content h3:first-child {
    margin-top: 0;
  }

  .markdown-content p {
    margin-bottom: 16px;
    color: var(--text-secondary);
  }

  .markdown-content code {
    background: var(--bg-primary);
    padding: 2px 6px;
    border-radius: 3px;
    font-family: 'Cascadia Code', 'Fira Code', Monaco, monospace;
    font-size: 12px;
    color: var(--accent-orange);
  }

  .markdown-content pre {
    background: var(--bg-primary);
    padding: 16px;
    border-radius: 6px;
    overflow-x: auto;
    margin: 16px 0;
  }

  .tree-section {
    background: var(--bg-secondary);
    border-radius: 8px;
    padding: 20px;
    margin-bottom: 24px;
    border: 1px solid var(--border-color);
  }

  .tree-section h2 {
    font-size: 16px;
    margin-bottom: 16px;
  }

  .tree-section pre {
    background: var(--bg-primary);
    color: var(--text-secondary);
    padding: 16px;
    border-radius: 6px;
    overflow-x: auto;
    font-family: 'Cascadia Code', 'Fira Code', Monaco, 'Courier New', monospace;
    font-size: 12px;
    line-height: 1.4;
    border: 1px solid var(--border-color);
  }

  .skip-section {
    background: var(--bg-secondary);
    border-radius: 8px;
    margin-bottom: 16px;
    border: 1px solid var(--border-color);
  }

  .skip-section summary {
    padding: 16px;
    cursor: pointer;
    font-weight: 500;
    border-bottom: 1px solid var(--border-color);
  }

  .skip-list {
    padding: 16px;
    list-style: none;
  }

  .skip-list li {
    padding: 8px 0;
    color: var(--text-secondary);
    font-size: 13px;
    display: flex;
    justify-content: space-between;
    align-items: center;
  }

  .skip-list code {
    background: var(--bg-primary);
    padding: 4px 8px;
    border-radius: 4px;
    font-family: 'Cascadia Code', 'Fira Code', Monaco, 'Courier New', monospace;
    color: var(--accent-orange);
  }

  .stats-section {
    background: var(--bg-secondary);
    border-radius: 8px;
    padding: 20px;
    margin-bottom: 24px;
    border: 1px solid var(--border-color);
  }

  .stats-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    gap: 16px;
  }

  .stat-item {
    text-align: center;
    padding: 16px;
    background: var(--bg-primary);
    border-radius: 6px;
  }

  .stat-value {
    font-size: 24px;
    font-weight: 600;
    color: var(--accent-blue);
    margin-bottom: 4px;
  }

  .stat-label {
    font-size: 12px;
    color: var(--text-muted);
    text-transform: uppercase;
    letter-spacing: 0.5px;
  }

  #llm-view {
    display: none;
    padding: 20px;
  }

  #llm-text {
    width: 100%;
    height: 70vh;
    background: var(--bg-secondary);
    color: var(--text-primary);
    border: 1px solid var(--border-color);
    border-radius: 8px;
    padding: 16px;
    font-family: 'Cascadia Code', 'Fira Code', Monaco, 'Courier New', monospace;
    font-size: 12px;
    line-height: 1.4;
    resize: vertical;
  }

  .error {
    color: #f48771;
    background: var(--bg-tertiary);
    padding: 16px;
    border-radius: 6px;
    border-left: 4px solid #f48771;
  }

  @media (max-width: 768px) {
    .main-container {
      grid-template-columns: 1fr;
    }

    .sidebar {
      display: none;
    }

    .repo-info {
      display: none;
    }

    .stats-grid {
      grid-template-columns: repeat(2, 1fr);
    }
  }

  {{.StyleCSS}}
</style>
</head>
<body>

<nav class="navbar">
  <div class="navbar-brand">
    <span class="logo">📁</span>
    <span>git/{{.Title}}</span>
  </div>
  <div class="repo-info">
    <span>📦 <a href="{{.Source}}" target="_blank">{{sourceLabel .Source}}</a></span>
    <span>🔗 {{.HeadShort}}</span>
  </div>
</nav>

<div class="main-container">
  <div class="sidebar">
    <div class="sidebar-header">
      <div class="sidebar-title">Explorer</div>
      <div class="view-toggle">
        <button class="toggle-btn active" onclick="showHumanView()">👤 Human</button>
        <button class="toggle-btn" onclick="showLLMView()">🤖 LLM</button>
      </div>
    </div>
    <div class="sidebar-content">
      <ul class="toc">
        {{range .Sections}}<li><a href="#file-{{.Anchor}}"><span class="file-icon">{{.Icon}}</span>{{.Rel}}</a> <span class="file-size">({{bytesHuman .Size}})</span></li>
        {{end}}
      </ul>
    </div>
  </div>

  <div class="content">
    <div class="content-inner">

      <div id="human-view">
        <div class="stats-section">
          <div class="stats-grid">
            <div class="stat-item">
              <div class="stat-value">{{.Stats.TotalFiles}}</div>
              <div class="stat-label">Total Files</div>
            </div>
            <div class="stat-item">
              <div class="stat-value">{{.Stats.Rendered}}</div>
              <div class="stat-label">Rendered</div>
            </div>
            <div class="stat-item">
              <div class="stat-value">{{.Stats.Skipped}}</div>
              <div class="stat-label">Skipped</div>
            </div>
            <div class="stat-item">
              <div class="stat-value">{{bytesHuman .Stats.TotalBytes}}</div>
              <div class="stat-label">Total Size</div>
            </div>
          </div>
        </div>

        <div class="tree-section">
          <h2>🌳 Directory Structure</h2>
          <pre>{{.TreeText}}</pre>
        </div>

        {{range .SkipGroups}}
        <details class="skip-section"><summary>{{.Title}} ({{len .Items}})</summary>
          <ul class="skip-list">
            {{range .Items}}<li><code>{{.Rel}}</code> <span class="file-size">({{.SizeHuman}})</span></li>
            {{end}}
          </ul>
        </details>
        {{end}}

        {{range .Sections}}
        <section class="file-section" id="file-{{.Anchor}}">
          <div class="file-body">
            {{if .Markdown}}<div class="markdown-content">{{.Body}}</div>
            {{else if .Failed}}{{.Body}}
            {{else}}<div class="code-container">
              <div class="code-header">
                <span class="file-icon">{{.Icon}}</span>
                <span class="file-path">{{.Rel}}</span>
                <button class="copy-btn" onclick="copyCode(this)" data-content="{{.RawText}}">
                  <svg width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
                    <rect x="9" y="9" width="13" height="13" rx="2" ry="2"></rect>
                    <path d="M5 15H4a2 2 0 0 1-2-2V4a2 2 0 0 1 2-2h9a2 2 0 0 1 2 2v1"></path>
                  </svg>
                  Copy
                </button>
              </div>
              <div class="highlight">{{.Body}}</div>
            </div>{{end}}
          </div>
        </section>
        {{end}}
      </div>

      <div id="llm-view">
        <div class="stats-section">
          <h2>🤖 LLM View</h2>
          <div style="display: flex; align-items: flex-start; gap: 16px; margin-bottom: 16px;">
            <p style="margin: 0; flex: 1;">This is the raw export that you can copy and paste directly into an LLM for code analysis:</p>
            <button class="copy-btn" onclick="copyLLMText(this)">
              <svg width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
                <rect x="9" y="9" width="13" height="13" rx="2" ry="2"></rect>
                <path d="M5 15H4a2 2 0 0 1-2-2V4a2 2 0 0 1 2-2h9a2 2 0 0 1 2 2v1"></path>
              </svg>
              Copy All
            </button>
          </div>
          <textarea id="llm-text" readonly>{{.ExportText}}</textarea>
        </div>
      </div>

    </div>
  </div>
</div>

<script>
function markCopied(button) {
  var originalText = button.innerHTML;
  button.innerHTML = '<svg width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><polyline points="20,6 9,17 4,12"></polyline></svg> Copied!';
  button.classList.add('copied');
  setTimeout(function () {
    button.innerHTML = originalText;
    button.classList.remove('copied');
  }, 2000);
}

function copyCode(button) {
  var content = button.getAttribute('data-content');
  navigator.clipboard.writeText(content).then(function () {
    markCopied(button);
  });
}

function copyLLMText(button) {
  var textArea = document.getElementById('llm-text');
  textArea.select();
  document.execCommand('copy');
  markCopied(button);
}

function setActive(name) {
  document.getElementById('human-view').style.display = name === 'human' ? 'block' : 'none';
  document.getElementById('llm-view').style.display = name === 'llm' ? 'block' : 'none';
  var buttons = document.querySelectorAll('.toggle-btn');
  buttons.forEach(function (btn) { btn.classList.remove('active'); });
  event.target.classList.add('active');
}

function showHumanView() { setActive('human'); }
function showLLMView() { setActive('llm'); }

document.querySelectorAll('.toc a[href^="#"]').forEach(function (anchor) {
  anchor.addEventListener('click', function (e) {
    e.preventDefault();
    var target = document.querySelector(this.getAttribute('href'));
    if (target) {
      target.scrollIntoView({ behavior: 'smooth', block: 'start' });
    }
  });
});
</script>
</body>
</html>
`
