// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build windows

package office

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// wdFormatPDF is Word's native "save as PDF" format code.
const wdFormatPDF = 17

const wordAutomationSupported = true

// wordAutomation drives Word through its COM automation interface via a
// PowerShell bridge: launch invisibly, open the source, export as PDF,
// close the document, quit. Any failure anywhere in the sequence is a
// non-fatal failure of this strategy only.
func (c *Converter) wordAutomation(ctx context.Context, src, out string) (string, bool) {
	script := fmt.Sprintf(`$word = New-Object -ComObject Word.Application
$word.Visible = $false
try {
  $doc = $word.Documents.Open(%s)
  $doc.SaveAs(%s, %d)
  $doc.Close($false)
} finally {
  $word.Quit()
}`, psQuote(src), psQuote(out), wdFormatPDF)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.exec.Run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script); err != nil {
		return "", false
	}
	if _, err := os.Stat(out); err == nil {
		return out, true
	}
	return "", false
}

// psQuote wraps s in PowerShell single quotes, which take every character
// literally except the quote itself.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
