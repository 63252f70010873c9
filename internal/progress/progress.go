// Package progress draws the per-placemark progress bar on stderr.
package progress

import (
	"io"

	"github.com/pterm/pterm"
)

// Bar counts handled placemarks. The zero value and a nil *Bar are silent.
type Bar struct {
	printer *pterm.ProgressbarPrinter
}

// Start draws a bar for total placemarks on w.
func Start(w io.Writer, title string, total int) (*Bar, error) {
	p, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithWriter(w).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return nil, err
	}
	return &Bar{printer: p}, nil
}

func (b *Bar) Increment() {
	if b == nil || b.printer == nil {
		return
	}
	b.printer.Increment()
}

// Stop removes the bar.
func (b *Bar) Stop() {
	if b == nil || b.printer == nil {
		return
	}
	_, _ = b.printer.Stop()
}
