package report

const snapshotHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{if .Report.Title}}{{.Report.Title}}{{else}}Video report{{end}} - vidcheck</title>
    <style>` + pageCSS + `</style>
</head>
<body class="{{.Theme.Page}}">
<header class="header">
    <h1 class="{{.Theme.Heading}}">{{if .Report.Title}}{{.Report.Title}}{{else}}Video report{{end}}</h1>
    {{with .Report.Channel}}<p class="meta">{{.}}</p>{{end}}
    <p class="meta">{{with .VideoURL}}<a href="{{.}}" target="_blank" rel="noopener noreferrer">{{.}}</a> · {{end}}Generated {{date .GeneratedAt}}</p>
</header>
<main>
    <section id="summary"><h2 class="{{.Theme.Heading}}">Summary</h2>{{template "summary" .Sections}}</section>
    <section id="key-points"><h2 class="{{.Theme.Heading}}">Key Points</h2>{{template "key-points" .Sections}}</section>
    <section id="fact-check"><h2 class="{{.Theme.Heading}}">Fact Check</h2>{{template "fact-check" .Sections}}</section>
    <section id="transcript"><h2 class="{{.Theme.Heading}}">Transcript</h2>{{template "transcript" .Sections}}</section>
</main>
</body>
</html>`
