package platform

// Package platform contains OS integration glue: directory helpers, output
// folder listing, and opening files or folders in the system file manager.
