package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"
)

var (
	version = "dev"
	commit  = "unknown"
)

const engineModule = "github.com/coregx/coregex"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display the version of rure, the engine it was built with and the CPU features the engine can use",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rure %s\n", version)
	fmt.Fprintf(out, "Commit: %s\n", commit)
	fmt.Fprintf(out, "Engine: %s %s\n", engineModule, engineVersion())
	fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "CPU features: %s\n", cpuFeatures())
	return nil
}

func engineVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "(unknown)"
	}
	for _, dep := range info.Deps {
		if dep.Path == engineModule {
			return dep.Version
		}
	}
	return "(unknown)"
}

// cpuFeatures lists the SIMD extensions the engine's prefilters dispatch on.
func cpuFeatures() string {
	var fs []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasSSE42 {
			fs = append(fs, "sse4.2")
		}
		if cpu.X86.HasAVX2 {
			fs = append(fs, "avx2")
		}
		if cpu.X86.HasBMI2 {
			fs = append(fs, "bmi2")
		}
		if cpu.X86.HasAVX512BW {
			fs = append(fs, "avx512bw")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			fs = append(fs, "asimd")
		}
		if cpu.ARM64.HasSVE {
			fs = append(fs, "sve")
		}
	}
	if len(fs) == 0 {
		return "none"
	}
	return strings.Join(fs, " ")
}
