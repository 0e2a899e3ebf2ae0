package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"onboardbuilder/internal/analyze"
	"onboardbuilder/internal/blueprint"
	"onboardbuilder/internal/buildinfo"
	"onboardbuilder/internal/config"
	"onboardbuilder/internal/docfile"
	"onboardbuilder/internal/observability"
	"onboardbuilder/internal/validate"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path (optional)"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	Version bool   `help:"Print version and exit"`

	Analyze struct {
		Repo string `arg:"" help:"Repository root to analyze" default:"."`
	} `cmd:"" help:"Analyze a repository and print the evidence as JSON"`

	Generate struct {
		Repo     string `arg:"" help:"Repository root to analyze" default:"."`
		Output   string `short:"o" help:"Document path relative to the repository root" default:"ONBOARDING.md"`
		Mode     string `short:"m" help:"Write mode: overwrite, append or create" default:"overwrite"`
		NoBackup bool   `help:"Skip the backup copy when overwriting"`
		Stdout   bool   `help:"Print the document instead of writing it"`
	} `cmd:"" help:"Generate ONBOARDING.md for a repository"`

	Validate struct {
		File            string `arg:"" help:"Path to the ONBOARDING.md file"`
		AllowProvenance bool   `help:"Allow 'source:' and 'evidence:' markers"`
	} `cmd:"" help:"Validate an ONBOARDING.md against the format rules"`

	Read struct {
		Repo string `arg:"" help:"Repository root" default:"."`
		File string `short:"f" help:"Document path relative to the repository root" default:"ONBOARDING.md"`
	} `cmd:"" help:"Read the onboarding document and print it as JSON"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("onboardbuilder"),
		kong.Description("Deterministic repository analysis and ONBOARDING.md generation"),
	)

	if CLI.Version {
		fmt.Printf("onboardbuilder %s (commit %s, built %s)\n",
			buildinfo.Version, buildinfo.GitCommit, buildinfo.BuildTime)
		return
	}

	observability.SetupLogging(CLI.Verbose)

	cfg := config.Default()
	if CLI.Config != "" {
		loaded, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	switch ctx.Command() {
	case "analyze <repo>", "analyze":
		if err := runAnalyze(cfg, CLI.Analyze.Repo); err != nil {
			slog.Error("Analyze failed", "error", err)
			os.Exit(1)
		}
	case "generate <repo>", "generate":
		if err := runGenerate(cfg, CLI.Generate.Repo); err != nil {
			slog.Error("Generate failed", "error", err)
			os.Exit(1)
		}
	case "validate <file>":
		clean, err := runValidate(CLI.Validate.File, CLI.Validate.AllowProvenance)
		if err != nil {
			slog.Error("Validate failed", "error", err)
			os.Exit(1)
		}
		if !clean {
			os.Exit(1)
		}
	case "read <repo>", "read":
		doc := docfile.Read(CLI.Read.Repo, CLI.Read.File)
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			slog.Error("Read failed", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	default:
		slog.Error("Unknown command", "command", ctx.Command())
		os.Exit(1)
	}
}

func runAnalyze(cfg *config.Config, repo string) error {
	analysis, err := analyze.Analyze(repo, cfg)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runGenerate(cfg *config.Config, repo string) error {
	mode, err := docfile.ParseMode(CLI.Generate.Mode)
	if err != nil {
		return err
	}

	analysis, err := analyze.Analyze(repo, cfg)
	if err != nil {
		return err
	}

	bp := blueprint.NewCompiler(cfg).Compile(blueprint.NewContext(analysis, nil))

	if violations := validate.Document(bp.Rendered.Markdown, validate.Options{}); len(violations) > 0 {
		for _, v := range violations {
			slog.Error("Generated document failed validation", "violation", v.String())
		}
		return fmt.Errorf("generated document failed validation with %d violations", len(violations))
	}

	if CLI.Generate.Stdout {
		fmt.Print(bp.Rendered.Markdown)
		return nil
	}

	result, err := docfile.Write(analysis.RepoPath, CLI.Generate.Output, bp.Rendered.Markdown, mode, !CLI.Generate.NoBackup)
	if err != nil {
		return err
	}
	slog.Info("Document written", "path", result.Path, "bytes", result.BytesWritten)
	if result.BackupPath != "" {
		slog.Info("Backup created", "path", result.BackupPath)
	}
	return nil
}

func runValidate(file string, allowProvenance bool) (bool, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}

	violations := validate.Document(string(content), validate.Options{AllowProvenance: allowProvenance})
	if len(violations) == 0 {
		fmt.Printf("Validation passed for %s.\n", file)
		return true, nil
	}

	fmt.Printf("Validation failed for %s:\n", file)
	for _, v := range violations {
		fmt.Printf("  - %s\n", v.String())
	}
	return false, nil
}
