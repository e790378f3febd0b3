package calc

import "fmt"

// ErrorText is shown in place of the value while an error is latched.
const ErrorText = "ERROR"

// DisplayUpdate is what the panel needs to redraw the calculator form.
type DisplayUpdate struct {
	// Text is the value box: an 11-column, 9 significant digit rendering or ErrorText.
	Text string
	// Status is "<M> <op>": the memory marker and the pending operator glyph.
	Status string
}

// FormatDisplay renders v the way the value box shows it.
func FormatDisplay(v float64, latched bool) string {
	if latched {
		return ErrorText
	}
	return fmt.Sprintf("%11.9g", v)
}

// FormatStatus renders the status box.
func FormatStatus(memory bool, op Operator) string {
	m := byte(' ')
	if memory {
		m = 'M'
	}
	return string([]byte{m, ' ', op.Glyph()})
}
