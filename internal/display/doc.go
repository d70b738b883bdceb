// Package display formats user-facing messages that are not search results.
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Some paths could not be read",
//	    Files:      []string{"secret/", "locked.txt"},
//	    Suggestion: "Check the permissions on these paths",
//	    Color:      true,
//	}
//	warning.Display(os.Stderr)
//
// Or use the convenience factory for unreadable paths:
//
//	display.WarnUnreadable(paths).Display(os.Stderr)
package display
