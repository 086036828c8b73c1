// Package misc keeps build time information.
package misc

// Set with -ldflags "-X citeview/misc.version=..." at build time.
var (
	appName = "citeview"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
