package config

// Version is the application version, overridable at build time via
// -ldflags "-X github.com/caseflowhq/caseflow/internal/config.Version=...".
var Version = "dev"
