package report

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{if .Report.Title}}{{.Report.Title}} - {{end}}vidcheck</title>
    <style nonce="{{.Nonce}}">` + pageCSS + `</style>
</head>
<body class="{{.Theme.Page}}">
{{with .Flash}}<div class="flash" role="alert">{{.}}</div>{{end}}
<header class="header">
    <h1 class="{{.Theme.Heading}}"><a href="/">vidcheck</a></h1>
    {{if .HistoryEnabled}}<nav><a class="{{.Theme.Tab}}" href="/history">History</a></nav>{{end}}
</header>
<form class="url-form" method="post" action="/analyze">
    <input type="url" name="video_url" placeholder="Paste a YouTube URL" value="{{.VideoURL}}" required>
    <button type="submit" class="{{.Theme.Button}}">Analyze</button>
</form>
<main class="layout">
    <div class="left">
        <div id="player" class="player{{if not .EmbedURL}} player-empty{{end}}">
            {{if .EmbedURL}}<iframe src="{{.EmbedURL}}" title="YouTube video player" allow="accelerometer; autoplay; encrypted-media; picture-in-picture" allowfullscreen></iframe>{{else}}<p>Enter a YouTube URL to get started.</p>{{end}}
        </div>
        {{with .Report.Failure "video_info"}}{{template "failure" (failure $.Theme .)}}{{end}}
        {{if .Report.Title}}
        <div class="{{.Theme.Panel}} video-info">
            <h2 class="{{.Theme.Heading}}">{{.Report.Title}}</h2>
            {{with .Report.Channel}}<p class="meta">{{.}}</p>{{end}}
        </div>
        {{end}}
        {{if and .Analyzed .ShareEnabled}}
        <form method="post" action="/share">
            <button type="submit" class="{{.Theme.Button}}">Share report</button>
        </form>
        {{end}}
    </div>
    <div class="right">
        <nav class="tabs">
            {{range .Tabs}}<a class="{{$.Theme.TabClass (eq .ID $.Tab)}}" href="/?tab={{.ID}}">{{.Label}}</a>{{end}}
        </nav>
        {{if .Analyzed}}
        <section id="summary" class="tab-panel{{if .Sections.Hidden "summary"}} hidden{{end}}">{{template "summary" .Sections}}</section>
        <section id="transcript" class="tab-panel{{if .Sections.Hidden "transcript"}} hidden{{end}}">{{template "transcript" .Sections}}</section>
        <section id="key-points" class="tab-panel{{if .Sections.Hidden "key-points"}} hidden{{end}}">{{template "key-points" .Sections}}</section>
        <section id="fact-check" class="tab-panel{{if .Sections.Hidden "fact-check"}} hidden{{end}}">{{template "fact-check" .Sections}}</section>
        {{else if ne .Tab "qa"}}
        <section class="tab-panel">
            <p class="{{.Theme.Body}}">Analyze a video to see its summary, transcript, key points and fact checks.</p>
        </section>
        {{end}}
        <section id="qa" class="tab-panel{{if .Sections.Hidden "qa"}} hidden{{end}}">
            {{if .Analyzed}}
            <form class="qa-form" method="post" action="/question">
                <textarea name="question" maxlength="2000" placeholder="Ask a question about this video" required></textarea>
                <button type="submit" class="{{.Theme.Button}}">Ask</button>
            </form>
            {{else}}
            <p class="{{.Theme.Body}}">Analyze a video before asking questions about it.</p>
            {{end}}
            {{range .QA}}
            <div class="{{$.Theme.Panel}} qa-entry">
                <p class="qa-question {{$.Theme.Subheading}}">{{.Question}}</p>
                <div class="qa-answer {{$.Theme.Body}}">{{range paragraphs .Answer}}<p>{{.}}</p>{{end}}</div>
            </div>
            {{end}}
        </section>
    </div>
</main>
</body>
</html>`

const historyHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>History - vidcheck</title>
    <style nonce="{{.Nonce}}">` + pageCSS + `</style>
</head>
<body class="{{.Theme.Page}}">
<header class="header">
    <h1 class="{{.Theme.Heading}}"><a href="/">vidcheck</a></h1>
</header>
<main>
    {{if not .Enabled}}
    <p class="{{.Theme.Body}}">History is not enabled on this server.</p>
    {{else}}
    {{range .Items}}
    <div class="{{$.Theme.Panel}} history-item">
        {{if .Thumbnail}}<img src="{{.Thumbnail}}" alt="">{{end}}
        <div>
            <h3 class="{{$.Theme.Heading}}">{{if .Title}}{{.Title}}{{else}}{{.VideoID}}{{end}}</h3>
            <p class="meta">{{date .CreatedAt}}</p>
            <form method="post" action="/history/{{.ID}}/open">
                <button type="submit" class="{{$.Theme.Button}}">Open</button>
            </form>
        </div>
    </div>
    {{else}}
    <p class="{{.Theme.Body}}">No analyses yet.</p>
    {{end}}
    {{end}}
</main>
</body>
</html>`
