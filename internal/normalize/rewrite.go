package normalize

import (
	"booktidy/internal/grammar"
	"booktidy/internal/ledger"
)

// StripToTitles rewrites every name to its bare title: the author prefix
// and subtitle are cropped and a trailing comma-article moves to the
// front. Names without a separator keep their author segment as-is.
func (e *Engine) StripToTitles(dir string, names []string, led *ledger.Ledger) (Result, error) {
	return e.run(dir, names, led, grammar.StripToTitle)
}

// StripSubtitles crops the subtitle from every name while keeping the
// author segment, re-inserting a trailing comma-article after the
// separator.
func (e *Engine) StripSubtitles(dir string, names []string, led *ledger.Ledger) (Result, error) {
	return e.run(dir, names, led, grammar.StripSubtitle)
}
