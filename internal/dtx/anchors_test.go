// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dtx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	lines := readSample(t)

	a, err := Locate(lines)
	require.NoError(t, err)
	assert.Equal(t, Anchors{
		DocumentClass: 5,
		BeginDocument: 7,
		DocInput:      8,
		EndDocument:   9,
		EndInput:      27,
	}, a)
	assert.LessOrEqual(t, a.DocumentClass, a.BeginDocument)
	assert.LessOrEqual(t, a.BeginDocument, a.DocInput)
	assert.LessOrEqual(t, a.DocInput, a.EndDocument)
	assert.LessOrEqual(t, a.EndDocument, a.EndInput)
}

func TestLocate_Patterns(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Anchors
	}{
		{
			name: "class options and jobname docinput",
			lines: []string{
				`% \iffalse`,
				`\documentclass[a4paper,10pt]{ltxdoc}`,
				`\begin{document}\DocInput{\jobname.dtx}\end{document}`,
				`% \fi`,
				`% \endinput`,
			},
			want: Anchors{DocumentClass: 1, BeginDocument: 2, DocInput: 2, EndDocument: 2, EndInput: 4},
		},
		{
			name: "non-ASCII class and source names",
			lines: []string{
				`\documentclass{artïcle}`,
				`\begin{document}`,
				`\DocInput{paquet_é.dtx}`,
				`\end{document}`,
				`\endinput`,
			},
			want: Anchors{DocumentClass: 0, BeginDocument: 1, DocInput: 2, EndDocument: 3, EndInput: 4},
		},
		{
			name: "earliest endinput after first line wins",
			lines: []string{
				`\documentclass{article}`,
				`\begin{document}`,
				`\DocInput{foo.dtx}`,
				`\end{document}`,
				`\endinput`,
				`% trailing`,
				`\endinput`,
			},
			want: Anchors{DocumentClass: 0, BeginDocument: 1, DocInput: 2, EndDocument: 3, EndInput: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Locate(tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		wantAnchor string
		wantErr    error
	}{
		{
			name:       "empty input",
			lines:      nil,
			wantAnchor: AnchorDocumentClass,
			wantErr:    ErrMissingAnchor,
		},
		{
			name:       "indented documentclass is not an anchor",
			lines:      []string{`  \documentclass{article}`, `\begin{document}`},
			wantAnchor: AnchorDocumentClass,
			wantErr:    ErrMissingAnchor,
		},
		{
			name:       "no begin document",
			lines:      []string{`\documentclass{article}`, `\DocInput{foo.dtx}`},
			wantAnchor: AnchorBeginDocument,
			wantErr:    ErrMissingAnchor,
		},
		{
			name:       "docinput must name a dtx file",
			lines:      []string{`\documentclass{article}`, `\begin{document}`, `\DocInput{foo.tex}`, `\end{document}`},
			wantAnchor: AnchorDocInput,
			wantErr:    ErrMissingAnchor,
		},
		{
			name:       "end document before docinput is not seen",
			lines:      []string{`\documentclass{article}`, `\begin{document}`, `\end{document}`, `\DocInput{foo.dtx}`},
			wantAnchor: AnchorEndDocument,
			wantErr:    ErrMissingAnchor,
		},
		{
			name:       "no endinput",
			lines:      []string{`\documentclass{article}`, `\begin{document}`, `\DocInput{foo.dtx}`, `\end{document}`},
			wantAnchor: AnchorEndInput,
			wantErr:    ErrMissingAnchor,
		},
		{
			name:       "endinput on first line only is ignored",
			lines:      []string{`\endinput`, `\documentclass{article}`, `\begin{document}`, `\DocInput{foo.dtx}`, `\end{document}`},
			wantAnchor: AnchorEndInput,
			wantErr:    ErrMissingAnchor,
		},
		{
			name:       "endinput before end document",
			lines:      []string{`\documentclass{article}`, `\endinput`, `\begin{document}`, `\DocInput{foo.dtx}`, `\end{document}`},
			wantAnchor: AnchorEndInput,
			wantErr:    ErrAnchorOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Locate(tt.lines)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var ae *AnchorError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tt.wantAnchor, ae.Anchor)
		})
	}
}

func TestAnchorsLines(t *testing.T) {
	a := Anchors{DocumentClass: 0, BeginDocument: 2, DocInput: 3, EndDocument: 4, EndInput: 11}
	l := a.Lines()
	assert.Equal(t, 1, l.DocumentClass)
	assert.Equal(t, 3, l.BeginDocument)
	assert.Equal(t, 4, l.DocInput)
	assert.Equal(t, 5, l.EndDocument)
	assert.Equal(t, 12, l.EndInput)
}
