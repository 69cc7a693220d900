package preview

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>brickyard pages</title>
    <link href="{{ css }}" rel="stylesheet">
</head>
<body class="container py-4">
    <h1 class="h3 mb-4">Pages</h1>
{% if pages.size == 0 %}    <p class="text-muted">No pages yet. Create one with <code>brickyard page new</code>.</p>
{% else %}    <ul class="list-group">
{% for p in pages %}        <li class="list-group-item d-flex justify-content-between">
            <a href="/pages/{{ p }}">{{ p }}</a>
            <a class="text-muted" href="/pages/{{ p }}/code">code</a>
        </li>
{% endfor %}    </ul>
{% endif %}</body>
</html>`

const codeTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{ name }} source</title>
    <style>
        body { background: #1e1e1e; color: #d4d4d4; margin: 0; }
        pre { padding: 1rem; white-space: pre-wrap; }
        .tag { color: #569cd6; }
        .attr { color: #9cdcfe; }
        .string { color: #ce9178; }
    </style>
</head>
<body>
<pre><code>{{ code }}</code></pre>
</body>
</html>`
