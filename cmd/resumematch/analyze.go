package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

var (
	analyzeJobFile string
	analyzeJSON    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze --job <file> <resume>...",
	Short: "Score local resume files against a job description",
	Long:  "Analyze one resume in detail, or rank several resumes against the same job description.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to the job description (.txt or .pdf)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full report as JSON")
	_ = analyzeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	job, err := readLocalFile(analyzeJobFile, cfg.Upload.MaxFileSize)
	if err != nil {
		return err
	}
	jobText, err := app.extractor.ExtractText(job.Name, job.Data)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		resume, err := readLocalFile(args[0], cfg.Upload.MaxFileSize)
		if err != nil {
			return err
		}
		extracted, err := app.extractor.ExtractText(resume.Name, resume.Data)
		if err != nil {
			return err
		}

		report, err := app.analyzer.AnalyzeResume(ctx, services.AnalysisInput{
			Filename:       resume.Name,
			ResumeText:     extracted.Text,
			JobDescription: jobText.Text,
		})
		if err != nil {
			return err
		}

		if analyzeJSON {
			return writeJSON(out, report)
		}
		printReport(out, report)
		return nil
	}

	var files []models.UploadedFile
	for _, path := range args {
		file, err := readLocalFile(path, cfg.Upload.MaxFileSize)
		if err != nil {
			log.Printf("⚠️ Skipping %s: %v\n", path, err)
			continue
		}
		files = append(files, *file)
	}

	report, err := app.analyzer.CompareResumes(ctx, files, jobText.Text)
	if err != nil {
		return err
	}

	if analyzeJSON {
		return writeJSON(out, report)
	}
	printComparison(out, report)
	return nil
}

func readLocalFile(path string, maxSize int64) (*models.UploadedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", services.ErrFileTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &models.UploadedFile{
		Name: filepath.Base(path),
		Size: int64(len(data)),
		Data: data,
	}, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, report *models.AnalysisReport) {
	fmt.Fprintf(w, "%s: %.1f%% match (%s)\n", report.Filename, report.MatchPercent, report.Rating)
	if report.SemanticScore != nil {
		fmt.Fprintf(w, "Semantic similarity: %.1f%%\n", models.ToPercent(*report.SemanticScore))
	}
	fmt.Fprintf(w, "Matched skills (%d): %s\n", len(report.MatchedSkills), strings.Join(report.MatchedSkills, ", "))
	fmt.Fprintf(w, "Missing skills (%d): %s\n", len(report.MissingSkills), strings.Join(report.MissingSkills, ", "))

	for _, group := range report.Suggestions {
		if len(group.Items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", group.Category)
		for _, item := range group.Items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
}

func printComparison(w io.Writer, report *models.ComparisonReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tFILE\tMATCH\tMATCHED\tMISSING\tSKILLS")
	for i, row := range report.Results {
		fmt.Fprintf(tw, "%d\t%s\t%.1f%%\t%d\t%d\t%d\n",
			i+1, row.Filename, row.MatchPercent, row.MatchedSkills, row.MissingSkills, row.TotalSkills)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nBest %.1f%%  Average %.1f%%  Lowest %.1f%%\n",
		report.Summary.BestMatch, report.Summary.AverageMatch, report.Summary.LowestMatch)

	for _, failure := range report.Failures {
		fmt.Fprintf(w, "❌ %s: %s\n", failure.Filename, failure.Error)
	}
}
