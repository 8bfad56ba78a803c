// Package main provides the resumematch command: the web server and a batch CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumematch",
	Short: "Match resumes against job descriptions",
	Long:  "Resume Matcher scores resumes against a job description with TF-IDF similarity, extracts skills and suggests improvements.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
