package quill

// Version is the release of the module. Builds may override it with -ldflags.
var Version = "0.1.0"
