// Command pulseqc is a small front-end over the compiler: it loads a
// dumped sequence description, optionally replays variable updates,
// compiles it, and prints per-port waveform information or re-dumps the
// (possibly now-compiled) settings to a new file.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"pulseq/persist"
	"pulseq/port"
)

func main() {
	var (
		inputPath  = pflag.StringP("input", "i", "", "Path to a YAML sequence description produced by dump_setting.")
		outputPath = pflag.StringP("dump", "o", "", "Path to re-dump the loaded sequence's settings to, after any updates.")
		updates    = pflag.StringArrayP("set", "s", nil, "Variable update as name=index, may be repeated.")
		dacStep    = pflag.Float64P("dac-step", "d", 1.0, "Sample step in ns applied to every reconstructed port.")
		sideband   = pflag.Float64P("sideband-freq", "f", 0.25, "Sideband/IF frequency in GHz applied to every reconstructed port.")
		quiet      = pflag.BoolP("quiet", "q", false, "Suppress informational logging; only warnings and errors are printed.")
		help       = pflag.BoolP("help", "h", false, "Display help text.")
	)
	pflag.Parse()

	if *help || *inputPath == "" {
		pflag.Usage()
		if *inputPath == "" && !*help {
			os.Exit(2)
		}

		return
	}

	logger := log.New(os.Stderr)
	if *quiet {
		logger.SetLevel(log.WarnLevel)
	}

	if err := run(logger, *inputPath, *outputPath, *updates, *dacStep, *sideband); err != nil {
		logger.Error("compile failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger, inputPath, outputPath string, updates []string, dacStep, sideband float64) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %q: %w", inputPath, err)
	}

	names, err := persist.PortNames(data)
	if err != nil {
		return fmt.Errorf("scanning port names: %w", err)
	}

	ports := make(map[string]*port.Port, len(names))
	for _, name := range names {
		p, err := port.New(name, port.WithDACStep(dacStep), port.WithSidebandFreq(sideband))
		if err != nil {
			return fmt.Errorf("constructing port %q: %w", name, err)
		}
		ports[name] = p
	}
	logger.Info("loaded sequence", "ports", len(ports), "entries_file", inputPath)

	s, err := persist.LoadSetting(data, ports)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	for _, u := range updates {
		cmd, err := parseUpdate(u)
		if err != nil {
			return err
		}
		if err := s.UpdateVariables(cmd); err != nil {
			return fmt.Errorf("applying update %q: %w", u, err)
		}
	}

	info, err := s.WaveformInformation()
	if err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	for name, wi := range info {
		for _, w := range wi.Warnings {
			logger.Warn(w, "port", name)
		}
		logger.Info("port compiled",
			"port", name,
			"daq_length_ns", wi.DAQLength,
			"samples", len(wi.WaveformReal),
			"measurement_windows", len(wi.MeasurementWindows),
		)
	}

	if outputPath != "" {
		out, err := persist.DumpSetting(s)
		if err != nil {
			return fmt.Errorf("dumping settings: %w", err)
		}
		if err := os.WriteFile(outputPath, out, 0o644); err != nil {
			return fmt.Errorf("writing %q: %w", outputPath, err)
		}
		logger.Info("wrote settings", "path", outputPath)
	}

	return nil
}

// parseUpdate parses a "name=index" CLI argument into a single-entry
// variable.UpdateCommand-shaped map, the form seq.Sequence.UpdateVariables
// expects.
func parseUpdate(s string) (map[string]int, error) {
	name, idxStr, ok := strings.Cut(s, "=")
	if !ok {
		return nil, fmt.Errorf("invalid --set value %q, expected name=index", s)
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return nil, fmt.Errorf("invalid --set value %q: %w", s, err)
	}

	return map[string]int{name: idx}, nil
}
