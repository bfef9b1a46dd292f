package version

import (
	"runtime/debug"
	"strings"
)

const devel = "(devel)"

// String reports the module version gi was installed at, or "(devel)" for
// local, dirty, or untagged builds.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return devel
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) string {
	v := info.Main.Version
	switch {
	case v == "" || v == devel:
		return devel
	case strings.Contains(v, "+dirty"), isPseudoVersion(v):
		return devel
	}
	return v
}

// isPseudoVersion matches vX.Y.Z-yyyymmddhhmmss-abcdefabcdef and friends.
func isPseudoVersion(v string) bool {
	v, _, _ = strings.Cut(v, "+")

	parts := strings.Split(v, "-")
	if len(parts) < 3 {
		return false
	}

	ts := parts[len(parts)-2]
	hash := parts[len(parts)-1]
	if idx := strings.LastIndex(ts, "."); idx >= 0 {
		ts = ts[idx+1:]
	}
	return len(ts) == 14 && isAll(ts, isDigit) && len(hash) >= 12 && isAll(hash, isHex)
}

func isAll(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
