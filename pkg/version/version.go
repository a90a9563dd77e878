package version

// Current defines the application version.
// It defaults to "dev" but is overwritten at build time using -ldflags.
var Current = "dev"

// AppName is the user-facing product name.
const AppName = "lineal"
