package ssr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceCustomElements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "primary button",
			in:   `<button-primary type="submit">End day</button-primary>`,
			want: `<button type="submit" class="btn-primary">End day</button>`,
		},
		{
			name: "stat pill",
			in:   `<stat-pill>Budget: 1000</stat-pill>`,
			want: `<span class="stat-pill">Budget: 1000</span>`,
		},
		{
			name: "mood badge",
			in:   `<mood-badge mood="wary">wary</mood-badge>`,
			want: `<span class="mood-badge mood-wary">wary</span>`,
		},
		{
			name: "plain html passes through",
			in:   `<p>3 children hospitalized this week.</p>`,
			want: `<p>3 children hospitalized this week.</p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			err := ReplaceCustomElements(&b, strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.String())
		})
	}
}

func TestReplaceCustomElements_fullPage(t *testing.T) {
	in := `<!doctype html>
<html lang="en">
<head>
    <title>Overview - Sidero Valley</title>
    <link rel="stylesheet" href="/static/main.css">
    <script nonce="abc123" src="https://unpkg.com/htmx.org@1.9.10" defer></script>
</head>
<body>
<header><h1>Sidero Valley Field Investigation</h1></header>
<main><stat-pill>Day 1 of 5</stat-pill></main>
</body>
</html>`

	var b strings.Builder
	err := ReplaceCustomElements(&b, strings.NewReader(in))
	require.NoError(t, err)
	out := b.String()

	// The head must survive so stylesheets and the htmx script reach the
	// browser on full page loads.
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Overview - Sidero Valley</title>")
	assert.Contains(t, out, `<link rel="stylesheet" href="/static/main.css"/>`)
	assert.Contains(t, out, `<script nonce="abc123" src="https://unpkg.com/htmx.org@1.9.10" defer=""></script>`)
	assert.Contains(t, out, `<span class="stat-pill">Day 1 of 5</span>`)
}
