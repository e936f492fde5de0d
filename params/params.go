package params

import (
	"fmt"
	"time"
)

const (
	ServerBodyLimit    = 1048576
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second
)

const (
	PendingUserExpiration    = 24 * time.Hour
	CSRFTokenExpiration      = 1 * time.Hour
	VerificationTokenLength  = 32
	DefaultPasswordMinLength = 6
	MaxPasswordBytes         = 72
	ThrottleKeyPrefix        = "throttle:"
	SessionKeyPrefix         = "session:"
)

const (
	VersionMajor = 0
	VersionMinor = 3
	VersionPatch = 1
)

var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)

func VersionWithCommit(gitCommit, gitDate string) string {
	version := Version
	if len(gitCommit) >= 8 {
		version += "-" + gitCommit[:8]
	}
	if gitDate != "" {
		version += "-" + gitDate
	}
	return version
}
