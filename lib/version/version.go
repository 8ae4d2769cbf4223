package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0" // follows SemVer (https://semver.org), updated by hand at each release
	GitCommit string    // set by the build system with -ldflags
	BuildDate string    // set by the build system with -ldflags
)

type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func Current() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func ToDetailVersion() string {
	return fmt.Sprintf("version=%s git=%s build=%s go=%s", Version, GitCommit, BuildDate, runtime.Version())
}
