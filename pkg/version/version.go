// Package version stores the version of lorem during runtime.
// The values are set in the main package.
package version

var (
	// Version is the version of lorem.
	Version = ""

	// CommitSHA is the commit SHA of lorem.
	CommitSHA = ""

	// CommitDate is the commit date of lorem.
	CommitDate = ""
)

// UserAgent returns the User-Agent used for outbound requests.
func UserAgent() string {
	v := Version
	if v == "" {
		v = "dev"
	}
	return "Lorem/" + v
}
