package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:           "gradebook",
		Short:         "Compute gradebook reports from a snapshot file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var file string
	rootCmd.PersistentFlags().StringVarP(&file, "file", "f", "", "Gradebook snapshot JSON file (required)")
	rootCmd.MarkPersistentFlagRequired("file")

	var classID, studentID, periodID string
	var asJSON bool

	var validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check a snapshot for structural and consistency errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadSnapshot(file); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "snapshot is valid")
			return nil
		},
	}

	var classCmd = &cobra.Command{
		Use:   "class",
		Short: "Print the grades of every student of a class",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := loadSnapshot(file)
			if err != nil {
				return err
			}
			return printClassReport(cmd.OutOrStdout(), book, classID, periodID, asJSON)
		},
	}
	classCmd.Flags().StringVarP(&classID, "class", "c", "", "Class ID (required)")
	classCmd.Flags().StringVarP(&periodID, "period", "p", "", "Limit assignment columns to one evaluation period")
	classCmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	classCmd.MarkFlagRequired("class")

	var studentCmd = &cobra.Command{
		Use:   "student",
		Short: "Print every aggregate of one student",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := loadSnapshot(file)
			if err != nil {
				return err
			}
			return printStudentReport(cmd.OutOrStdout(), book, classID, studentID, periodID, asJSON)
		},
	}
	studentCmd.Flags().StringVarP(&classID, "class", "c", "", "Class ID (required)")
	studentCmd.Flags().StringVarP(&studentID, "student", "s", "", "Student ID (required)")
	studentCmd.Flags().StringVarP(&periodID, "period", "p", "", "Limit criterion and competence grades to one evaluation period")
	studentCmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	studentCmd.MarkFlagRequired("class")
	studentCmd.MarkFlagRequired("student")

	rootCmd.AddCommand(validateCmd, classCmd, studentCmd)
	return rootCmd
}
