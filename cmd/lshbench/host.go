package main

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Host records the machine a run was measured on.
type Host struct {
	GOOS     string   `yaml:"goos"`
	GOARCH   string   `yaml:"goarch"`
	NumCPU   int      `yaml:"num_cpu"`
	Features []string `yaml:"features,omitempty"`
}

// CurrentHost describes the running machine, including the SIMD features
// that affect the float64 kernels used for projection and ranking.
func CurrentHost() Host {
	h := Host{
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
		NumCPU: runtime.NumCPU(),
	}

	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"sse2", cpu.X86.HasSSE2},
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
		{"fma", cpu.X86.HasFMA},
		{"avx512f", cpu.X86.HasAVX512F},
		{"asimd", cpu.ARM64.HasASIMD},
		{"sve", cpu.ARM64.HasSVE},
	} {
		if f.ok {
			h.Features = append(h.Features, f.name)
		}
	}
	return h
}
