package report

// pageCSS defines every class the bundled themes refer to. It is inlined into
// both the live page and shared snapshots so a snapshot renders on its own.
const pageCSS = `
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            line-height: 1.5;
            min-height: 100vh;
        }
        a { color: inherit; }
        .page { padding: 1.5rem; }
        .page-pink { background: linear-gradient(135deg, #1a0b16, #2d0f24); color: #fce7f3; }
        .page-slate { background: #0f172a; color: #e2e8f0; }
        .layout { display: grid; grid-template-columns: minmax(0, 2fr) minmax(0, 3fr); gap: 1.5rem; max-width: 1400px; margin: 0 auto; }
        @media (max-width: 900px) { .layout { grid-template-columns: 1fr; } }
        .panel { border-radius: 0.5rem; padding: 1rem; margin-bottom: 1rem; background: rgba(0, 0, 0, 0.3); }
        .panel-pink { border: 1px solid rgba(236, 72, 153, 0.3); }
        .panel-slate { border: 1px solid #334155; }
        .heading { font-size: 1.125rem; font-weight: 600; margin-bottom: 0.5rem; }
        .heading-pink { color: #f472b6; }
        .heading-slate { color: #38bdf8; }
        .subheading { font-weight: 500; margin-bottom: 0.25rem; display: flex; align-items: center; gap: 0.5rem; }
        .subheading-pink { color: #f9a8d4; }
        .subheading-slate { color: #94a3b8; }
        .body-pink { color: #fce7f3; }
        .body-slate { color: #e2e8f0; }
        .button {
            display: inline-block;
            border: none;
            border-radius: 0.375rem;
            padding: 0.375rem 0.875rem;
            font-size: 0.875rem;
            font-weight: 600;
            cursor: pointer;
            text-decoration: none;
        }
        .button-pink { background: #db2777; color: #fff; }
        .button-pink:hover { background: #be185d; }
        .button-slate { background: #0284c7; color: #fff; }
        .button-slate:hover { background: #0369a1; }
        .timestamp { font-size: 0.75rem; padding: 0.125rem 0.5rem; border-radius: 9999px; text-decoration: none; opacity: 0.85; }
        .timestamp:hover { opacity: 1; }
        .tabs { display: flex; gap: 0.25rem; flex-wrap: wrap; margin-bottom: 1rem; }
        .tab { padding: 0.5rem 1rem; border-radius: 0.375rem 0.375rem 0 0; text-decoration: none; opacity: 0.7; }
        .tab-pink { color: #f9a8d4; }
        .tab-slate { color: #94a3b8; }
        .tab-active { opacity: 1; font-weight: 600; border-bottom: 2px solid currentColor; }
        .player { position: relative; width: 100%; aspect-ratio: 16 / 9; border-radius: 0.5rem; overflow: hidden; background: #000; }
        .player iframe { position: absolute; inset: 0; width: 100%; height: 100%; border: 0; }
        .player-empty { display: flex; align-items: center; justify-content: center; opacity: 0.6; }
        .url-form { display: flex; gap: 0.5rem; margin-bottom: 1rem; }
        .url-form input, .qa-form textarea {
            flex: 1;
            padding: 0.5rem 0.75rem;
            border-radius: 0.375rem;
            border: 1px solid rgba(148, 163, 184, 0.4);
            background: rgba(0, 0, 0, 0.4);
            color: inherit;
            font: inherit;
        }
        .qa-form { display: flex; flex-direction: column; gap: 0.5rem; margin-bottom: 1rem; }
        .qa-form textarea { min-height: 4rem; resize: vertical; }
        .flash {
            position: fixed;
            top: 1rem;
            right: 1rem;
            padding: 0.75rem 1rem;
            border-radius: 0.5rem;
            background: #b91c1c;
            color: #fff;
            z-index: 10;
            animation: flash-hide 0s linear 5s forwards;
        }
        @keyframes flash-hide { to { visibility: hidden; opacity: 0; } }
        .failure { color: #f472b6; }
        .failure-hint { opacity: 0.8; margin-top: 0.5rem; }
        .buckets { display: grid; grid-template-columns: repeat(2, minmax(0, 1fr)); gap: 1rem; }
        @media (max-width: 700px) { .buckets { grid-template-columns: 1fr; } }
        .bucket-label { font-weight: 500; margin-bottom: 0.5rem; }
        .segment { display: flex; gap: 0.5rem; padding: 0.375rem 0.5rem; border-radius: 0.25rem; text-decoration: none; border-left: 4px solid transparent; }
        .segment:hover { opacity: 0.85; }
        .segment-time { font-size: 0.75rem; min-width: 45px; margin-top: 0.2rem; opacity: 0.8; }
        .segment details { margin-top: 0.25rem; font-size: 0.875rem; }
        .references a { display: block; font-size: 0.75rem; word-break: break-all; }
        .tally { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; margin-bottom: 1rem; text-align: center; }
        .tally strong { display: block; font-size: 1.5rem; }
        .claim { margin-bottom: 0.75rem; padding: 0.5rem 0.75rem; border-radius: 0.25rem; border-left: 4px solid transparent; }
        .text-green { color: #86efac; }
        .border-green { border-left-color: #22c55e; }
        .bg-green { background: rgba(34, 197, 94, 0.05); }
        .text-red { color: #fca5a5; }
        .border-red { border-left-color: #ef4444; }
        .bg-red { background: rgba(239, 68, 68, 0.05); }
        .text-yellow { color: #fde68a; }
        .border-yellow { border-left-color: #eab308; }
        .bg-yellow { background: rgba(234, 179, 8, 0.05); }
        .text-muted { color: #94a3b8; }
        .border-muted { border-left-color: #64748b; }
        .bg-muted { background: rgba(100, 116, 139, 0.05); }
        ul.list { list-style: disc inside; }
        ul.list li { margin-bottom: 0.25rem; }
        .qa-entry { margin-bottom: 1rem; }
        .qa-question { font-weight: 600; margin-bottom: 0.25rem; }
        .qa-answer p { margin-bottom: 0.5rem; }
        .history-item { display: flex; gap: 1rem; align-items: center; }
        .history-item img { width: 120px; border-radius: 0.25rem; }
        .meta { font-size: 0.75rem; opacity: 0.7; }
        .hidden { display: none; }
`
