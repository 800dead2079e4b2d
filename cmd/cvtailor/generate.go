package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andrei/cv-tailor/internal/app"
	"github.com/andrei/cv-tailor/internal/config"
	"github.com/andrei/cv-tailor/internal/export"
	"github.com/andrei/cv-tailor/internal/fetch"
	"github.com/andrei/cv-tailor/internal/generate"
	"github.com/andrei/cv-tailor/internal/history"
	"github.com/andrei/cv-tailor/internal/llm"
	"github.com/andrei/cv-tailor/internal/observability"
	"github.com/andrei/cv-tailor/internal/samples"
	"github.com/andrei/cv-tailor/internal/schemas"
	"github.com/andrei/cv-tailor/internal/store"
	"github.com/andrei/cv-tailor/internal/types"
)

var (
	genConfigPath    string
	genProfilePath   string
	genVacancyPath   string
	genVacancyURL    string
	genSampleVacancy string
	genLength        string
	genOutDir        string
	genPDF           bool
	genAPIKey        string
	genModel         string
	genUseBrowser    bool
	genVerbose       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored resume and cover letter in one shot",
	Long: `Run a single generation without the server: read a profile and a job
posting, call the model and write both documents as Markdown (and optionally
PDF) into the output directory.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file")
	generateCmd.Flags().StringVarP(&genProfilePath, "profile", "p", "", "Path to candidate profile JSON (default: built-in sample profile)")
	generateCmd.Flags().StringVarP(&genVacancyPath, "vacancy", "j", "", "Path to job posting text file")
	generateCmd.Flags().StringVar(&genVacancyURL, "vacancy-url", "", "URL to fetch the job posting from")
	generateCmd.Flags().StringVar(&genSampleVacancy, "sample-vacancy", "", "Name of an embedded sample posting (see 'cvtailor samples')")
	generateCmd.Flags().StringVarP(&genLength, "length", "l", "medium", "Cover letter length: short, medium or long")
	generateCmd.Flags().StringVarP(&genOutDir, "out", "o", ".", "Output directory")
	generateCmd.Flags().BoolVar(&genPDF, "pdf", false, "Also render both documents to PDF (requires Chrome)")
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	generateCmd.Flags().StringVar(&genModel, "model", "", "Gemini model name")
	generateCmd.Flags().BoolVar(&genUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print the resolved profile, vacancy and result summaries")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(genConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = genModel
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = genUseBrowser
	}
	cfg.FromEnv()
	merged := cfg.MergeWithDefaults(config.Defaults())
	if merged.APIKey == "" {
		return fmt.Errorf("Gemini API key is required (flag --api-key or GEMINI_API_KEY)")
	}

	length := types.CoverLetterLength(genLength)
	request := types.GenerateRequest{CoverLetterLength: length}
	if err := request.Validate(); err != nil {
		return fmt.Errorf("invalid --length %q: want short, medium or long", genLength)
	}

	profile, err := resolveProfile()
	if err != nil {
		return err
	}

	vacancy, err := resolveVacancy(ctx, merged)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if genVerbose || merged.Verbose {
		printer.PrintProfile(&profile)
		printer.PrintVacancy(vacancy)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(merged.Model), merged.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	kv := store.NewMemory()
	state := app.New(kv, merged.Debounce())
	state.SetProfile(profile)
	state.SetVacancyText(vacancy)

	orch := generate.New(state, history.New(kv), client)

	fmt.Println("Generating documents...")
	item, err := orch.Run(ctx, length)
	if err != nil {
		return err
	}
	if genVerbose || merged.Verbose {
		printer.PrintOutput(&item.Output)
		printer.PrintHistoryItem(&item)
	}

	if err := os.MkdirAll(genOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := map[string]string{
		"resume.md":       item.Output.Resume,
		"cover_letter.md": item.Output.CoverLetter,
	}
	for name, content := range files {
		path := filepath.Join(genOutDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}

	if genPDF {
		if err := writePDFs(ctx, merged, item.Output); err != nil {
			return err
		}
	}

	return nil
}

// writePDFs renders and saves both documents.
func writePDFs(ctx context.Context, cfg config.Config, output types.GenerationOutput) error {
	renderer := export.NewPDFRenderer(cfg.ChromePath)

	resume, coverLetter, err := renderer.RenderBoth(ctx, output)
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}

	for name, pdf := range map[string][]byte{
		"resume.pdf":       resume,
		"cover_letter.pdf": coverLetter,
	} {
		path := filepath.Join(genOutDir, name)
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}

// resolveProfile loads the candidate profile from --profile or falls back to
// the first embedded sample.
func resolveProfile() (types.CandidateProfile, error) {
	if genProfilePath == "" {
		embedded, err := samples.Profiles()
		if err != nil {
			return types.CandidateProfile{}, err
		}
		fmt.Printf("No --profile given, using sample profile %q\n", embedded[0].Name)
		return embedded[0].Profile, nil
	}

	data, err := os.ReadFile(genProfilePath)
	if err != nil {
		return types.CandidateProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return schemas.ParseProfile(data)
}

// resolveVacancy picks the posting text from a file, a URL or a sample.
func resolveVacancy(ctx context.Context, cfg config.Config) (string, error) {
	set := 0
	for _, s := range []string{genVacancyPath, genVacancyURL, genSampleVacancy} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return "", fmt.Errorf("exactly one of --vacancy, --vacancy-url or --sample-vacancy is required")
	}

	switch {
	case genVacancyPath != "":
		data, err := os.ReadFile(genVacancyPath)
		if err != nil {
			return "", fmt.Errorf("failed to read vacancy: %w", err)
		}
		return string(data), nil

	case genVacancyURL != "":
		fetcher := fetch.NewVacancyFetcher(nil, nil)
		return fetcher.Fetch(ctx, genVacancyURL, cfg.UseBrowser)

	default:
		vacancies, err := samples.Vacancies()
		if err != nil {
			return "", err
		}
		for _, v := range vacancies {
			if v.Name == genSampleVacancy {
				return v.Text, nil
			}
		}
		return "", fmt.Errorf("unknown sample vacancy %q (see 'cvtailor samples')", genSampleVacancy)
	}
}
