// Package version exposes build information. The git values are set at
// link time:
//
//	go build -ldflags "-X github.com/cosmicfriends/promptkit/version.GitRelease=v0.3.0 \
//	  -X github.com/cosmicfriends/promptkit/version.GitCommit=$(git rev-parse HEAD) \
//	  -X github.com/cosmicfriends/promptkit/version.GitCommitDate=$(git log -1 --format=%cI)" \
//	  ./cmd/promptkit
package version

import (
	"fmt"
	"runtime"
)

var (
	GitRelease    = "dev"
	GitCommit     = "unknown"
	GitCommitDate = "unknown"

	GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
)

// Info is the build information reported by the status endpoint.
type Info struct {
	Release    string `json:"release" yaml:"release"`
	Commit     string `json:"commit" yaml:"commit"`
	CommitDate string `json:"commit_date" yaml:"commit_date"`
	Go         string `json:"go" yaml:"go"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Release:    GitRelease,
		Commit:     GitCommit,
		CommitDate: GitCommitDate,
		Go:         GoInfo,
	}
}
