package version

// AppVersion is the current promptctl release version.
// Overridden at build time via -ldflags "-X promptctl/internal/version.AppVersion=...".
var AppVersion = "0.3.0"
