package version

// Version is the release of atlasgo reported by the CLI and written to logs.
const Version = "v0.3.0"
