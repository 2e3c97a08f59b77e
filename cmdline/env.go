package cmdline

import (
	"slices"

	"github.com/wippyai/widestring/wide"
)

// EnvBlock encodes env as a native environment block.
//
// Each entry is KEY=VALUE followed by a zero unit, sorted by key, and the block
// ends with one more zero unit. An empty map yields {0, 0}.
func EnvBlock(env map[string]string) []uint16 {
	keys := make([]string, 0, len(env))
	n := 1
	for k, v := range env {
		keys = append(keys, k)
		n += len(k) + len(v) + 2
	}
	slices.Sort(keys)

	block := make([]uint16, 0, max(n, 2))
	for _, k := range keys {
		block = wide.AppendEncoded(block, k)
		block = append(block, '=')
		block = wide.AppendEncoded(block, env[k])
		block = append(block, 0)
	}
	if len(keys) == 0 {
		block = append(block, 0)
	}
	return append(block, 0)
}
