package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrei/cv-tailor/internal/samples"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the embedded sample profiles and postings",
	RunE:  runSamples,
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}

func runSamples(_ *cobra.Command, _ []string) error {
	profiles, err := samples.Profiles()
	if err != nil {
		return err
	}
	vacancies, err := samples.Vacancies()
	if err != nil {
		return err
	}

	fmt.Println("Sample profiles:")
	for _, p := range profiles {
		fmt.Printf("  %s (%s)\n", p.Name, p.Profile.PersonalInfo.Name)
	}

	fmt.Println("Sample vacancies:")
	for _, v := range vacancies {
		fmt.Printf("  %s\n", v.Name)
	}
	return nil
}
