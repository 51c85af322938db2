package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/driver"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !runDoctor(cmd.Context(), cmd.OutOrStdout(), cfg, executor.New(10*time.Second)) {
				return fmt.Errorf("some prerequisites are missing")
			}
			return nil
		},
	}
}

func check(out io.Writer, name string, ok bool, detail string) {
	mark := "ok"
	if !ok {
		mark = "!!"
	}
	fmt.Fprintf(out, "[%s] %-20s %s\n", mark, name, detail)
}

// runDoctor prints one line per check and reports whether the required
// ones passed. Missing Gemini keys only disable summaries.
func runDoctor(ctx context.Context, out io.Writer, cfg *config.Config, exec executor.Executor) bool {
	ok := true

	bin := cfg.Browser.Bin
	if bin == "" {
		if found, has := driver.LookPath(); has {
			bin = found
		}
	}
	if bin == "" {
		check(out, "Browser", false, "not found. Install Chrome/Chromium or set browser.bin")
		ok = false
	} else if v, err := exec.Execute(ctx, bin, "--version"); err != nil {
		check(out, "Browser", false, fmt.Sprintf("%s: %v", bin, err))
		ok = false
	} else {
		check(out, "Browser", true, strings.TrimSpace(v))
	}

	dirs := []struct{ name, path string }{
		{"Transcripts dir", cfg.Paths.Transcripts},
		{"Screenshots dir", cfg.Paths.Screenshots},
		{"Intake dir", cfg.Paths.Intake},
	}
	for _, d := range dirs {
		if d.path == "" {
			check(out, d.name, true, "disabled")
			continue
		}
		if err := os.MkdirAll(d.path, 0755); err != nil {
			check(out, d.name, false, err.Error())
			ok = false
			continue
		}
		check(out, d.name, true, d.path)
	}

	if len(cfg.Gemini.APIKeys) > 0 {
		check(out, "Gemini API keys", true, fmt.Sprintf("%d configured", len(cfg.Gemini.APIKeys)))
	} else {
		check(out, "Gemini API keys", true, "not set, summaries disabled (GEMINI_API_KEYS)")
	}

	if ok {
		fmt.Fprintln(out, "\nAll prerequisites met.")
	} else {
		fmt.Fprintln(out, "\nSome prerequisites are missing.")
	}
	return ok
}
