package spawn

import (
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

var lineBufOnce = sync.OnceValue(detectLineBufEnv)

// LineBufEnv returns the environment entries that force line-buffered
// stdout on external libc programs, the same way stdbuf(1) would. Running
// `stdbuf -oL env` once and extracting the injected variables is the least
// invasive way to get them; when stdbuf is unavailable the result is empty
// and external commands keep their default buffering.
func LineBufEnv() []string {
	return lineBufOnce()
}

func detectLineBufEnv() []string {
	out, err := exec.Command("stdbuf", "-oL", "env").Output()
	if err != nil {
		return nil
	}

	var env []string
	for _, line := range strings.Split(string(out), "\n") {
		key, _, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if isPreloadKey(key) || strings.HasPrefix(key, "_STDBUF_") {
			env = append(env, line)
		}
	}
	return env
}

func isPreloadKey(key string) bool {
	if runtime.GOOS == "darwin" {
		return key == "DYLD_INSERT_LIBRARIES" || key == "DYLD_FORCE_FLAT_NAMESPACE"
	}
	return key == "LD_PRELOAD"
}
