package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/talentforge/forge/internal/model"
	"github.com/talentforge/forge/internal/pipeline"
	"github.com/talentforge/forge/internal/skills"
)

var (
	jobFile        string
	jobDescription string
	candidatesFile string
	outJSON        string
	analyzeTau     float64
	analyzeTimeout time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a candidate batch from files",
	Long: `Analyze scores a batch of candidates against a job configuration and
prints the ranked verdicts.

The job is supplied either as a YAML config (--job) or as a raw job
description text file (--job-description), in which case the skill
extractor derives the requirement list.

The candidates file holds one hosting handle per line, or a JSON array of
rich candidate objects when it ends in .json.

Example:
  forge analyze --job job.yaml --candidates handles.txt
  forge analyze --job-description jd.txt --candidates pool.json --out results.json`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&jobFile, "job", "", "job config YAML file")
	analyzeCmd.Flags().StringVar(&jobDescription, "job-description", "", "raw job description text file (skills are extracted)")
	analyzeCmd.Flags().StringVar(&candidatesFile, "candidates", "", "candidates file (handles per line, or JSON array)")
	analyzeCmd.Flags().StringVar(&outJSON, "out", "", "write full results JSON to this path")
	analyzeCmd.Flags().Float64Var(&analyzeTau, "tau", 0, "gate threshold override")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 10*time.Minute, "total batch timeout")

	_ = analyzeCmd.MarkFlagRequired("candidates")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	job, err := loadJob(ctx, cfg)
	if err != nil {
		return err
	}
	if analyzeTau > 0 {
		job.Tau = analyzeTau
	}

	candidates, err := loadCandidates(candidatesFile)
	if err != nil {
		return err
	}

	analyzer := buildAnalyzer(cfg, log)
	result, err := analyzer.Analyze(ctx, pipeline.BatchRequest{Job: *job, Candidates: candidates})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	printSummary(result)

	if outJSON != "" {
		raw, err := json.MarshalIndent(result.Analyses, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		if err := os.WriteFile(outJSON, raw, 0o644); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote results: %s\n", outJSON)
	}

	return nil
}

func loadJob(ctx context.Context, cfg *model.Config) (*model.JobConfig, error) {
	switch {
	case jobFile != "":
		raw, err := os.ReadFile(jobFile)
		if err != nil {
			return nil, fmt.Errorf("read job file: %w", err)
		}
		var job model.JobConfig
		if err := yaml.Unmarshal(raw, &job); err != nil {
			return nil, fmt.Errorf("parse job file: %w", err)
		}
		return &job, nil

	case jobDescription != "":
		raw, err := os.ReadFile(jobDescription)
		if err != nil {
			return nil, fmt.Errorf("read job description: %w", err)
		}
		extractor, err := skills.NewExtractor(cfg.Skills)
		if err != nil {
			return nil, fmt.Errorf("build skill extractor: %w", err)
		}
		reqs, err := extractor.Extract(ctx, string(raw))
		if err != nil {
			return nil, fmt.Errorf("extract skills (%s): %w", extractor.Name(), err)
		}
		if len(reqs) == 0 {
			return nil, fmt.Errorf("no skills extracted from %s", jobDescription)
		}
		return &model.JobConfig{Skills: reqs}, nil

	default:
		return nil, fmt.Errorf("either --job or --job-description is required")
	}
}

// loadCandidates reads the pool: a JSON array of candidate objects, or one
// hosting handle per line with #-comments.
func loadCandidates(path string) ([]model.CandidateInput, error) {
	if strings.HasSuffix(path, ".json") {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read candidates: %w", err)
		}
		var candidates []model.CandidateInput
		if err := json.Unmarshal(raw, &candidates); err != nil {
			return nil, fmt.Errorf("parse candidates: %w", err)
		}
		return candidates, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candidates: %w", err)
	}
	defer func() { _ = file.Close() }()

	var candidates []model.CandidateInput
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			candidates = append(candidates, model.CandidateInput{Handle: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan candidates: %w", err)
	}

	return candidates, nil
}

func printSummary(result *pipeline.BatchResult) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Candidates:  %d\n", len(result.Analyses))
	fmt.Fprintf(os.Stderr, "  Ranked:      %d\n", result.Ranked)
	fmt.Fprintf(os.Stderr, "  Review:      %d\n", result.Review)
	fmt.Fprintf(os.Stderr, "  Filtered:    %d\n", result.Filtered)
	fmt.Fprintf(os.Stderr, "  Errors:      %d\n", len(result.Errors))
	fmt.Fprintf(os.Stderr, "  Tau:         %.2f\n", result.Tau)
	fmt.Fprintf(os.Stderr, "\n")

	for _, a := range result.Analyses {
		marker := "✗"
		switch a.GateStatus {
		case model.GateRanked:
			marker = "✓"
		case model.GateReview:
			marker = "?"
		}
		fmt.Fprintf(os.Stderr, "%s %-24s %-8s forge=%.3f cs=%.2f xs=%.2f\n",
			marker, a.CandidateID, a.GateStatus, a.ForgeScore, a.CapabilityScore, a.ContextScore)
	}

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "! %s: %s\n", e.Username, e.Error)
	}
}
