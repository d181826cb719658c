// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package office

import "context"

const wordAutomationSupported = false

// Word automation exists only on Windows; elsewhere the strategy is
// silently unavailable.
func (c *Converter) wordAutomation(context.Context, string, string) (string, bool) {
	return "", false
}
