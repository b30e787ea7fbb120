package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flavorquiz/backend/internal/domain"
	"github.com/flavorquiz/backend/internal/infrastructure/taxonomy"
	"github.com/flavorquiz/backend/internal/logger"
	"github.com/flavorquiz/backend/internal/usecase"
)

// options shared by the comparison commands
type compareFlags struct {
	noStrict bool
	perfect  float64
	close    float64
	accept   float64
	verbose  bool
}

func (f *compareFlags) register(cmd *cobra.Command) {
	defaults := domain.DefaultComparisonOptions()
	cmd.Flags().BoolVar(&f.noStrict, "no-strict", false, "allow forbidden flavor confusions to be fuzzy-scored")
	cmd.Flags().Float64Var(&f.perfect, "perfect", defaults.PerfectThreshold, "similarity needed for a perfect verdict")
	cmd.Flags().Float64Var(&f.close, "close", defaults.CloseThreshold, "similarity needed for a close verdict")
	cmd.Flags().Float64Var(&f.accept, "accept", defaults.AcceptThreshold, "similarity needed for an acceptable verdict")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log each comparison step to stderr")
}

func (f *compareFlags) options() (domain.ComparisonOptions, error) {
	opts := domain.ComparisonOptions{
		PerfectThreshold: f.perfect,
		CloseThreshold:   f.close,
		AcceptThreshold:  f.accept,
		StrictFlavors:    !f.noStrict,
		LogDetails:       f.verbose,
	}
	for _, t := range []float64{opts.PerfectThreshold, opts.CloseThreshold, opts.AcceptThreshold} {
		if t <= 0 || t > 1 {
			return opts, fmt.Errorf("%w: thresholds must be in (0, 1]", domain.ErrInvalidRequest)
		}
	}
	return opts, nil
}

func (f *compareFlags) validator() (*usecase.AnswerValidator, error) {
	log := zap.NewNop()
	if f.verbose {
		var err error
		if log, err = logger.New("development", "debug"); err != nil {
			return nil, err
		}
	}
	return usecase.NewAnswerValidator(usecase.ValidatorConfig{Logger: log}), nil
}

// compareOutput is what compare and reverse print
type compareOutput struct {
	Result  domain.ComparisonResult `json:"result"`
	Display string                  `json:"display"`
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flavorcheck",
		Short:         "Score flavor quiz answers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCompareCmd(), newReverseCmd(), newRulesCmd())
	return root
}

func newCompareCmd() *cobra.Command {
	var flags compareFlags

	cmd := &cobra.Command{
		Use:   "compare <user-answer> <correct-answer>",
		Short: "Score an answer against the correct one",
		Long: `Runs the answer tiers: empty, exact, forbidden confusion,
spelling variation and edit-distance similarity.

Example:
  flavorcheck compare "Watermelom" "Watermelon"
  flavorcheck compare --no-strict "Blue Raspberry" "Blueberry"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			v, err := flags.validator()
			if err != nil {
				return err
			}
			result := v.Compare(args[0], args[1], opts)
			return writeJSON(cmd.OutOrStdout(), compareOutput{
				Result:  result,
				Display: usecase.FormatFeedback(result).String(),
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newReverseCmd() *cobra.Command {
	var (
		flags        compareFlags
		question     string
		taxonomyPath string
	)

	cmd := &cobra.Command{
		Use:   "reverse <user-answer> <expected-answer>",
		Short: "Score a reverse-question answer with the taxonomy fallback",
		Long: `Scores like compare; a failed verdict falls back to taxonomy
agreement at the level the question asks for.

Example:
  flavorcheck reverse "Pineapple Punch" "Mango Tango" \
    --question "What type of fruit flavor is this?" --taxonomy flavors.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			v, err := flags.validator()
			if err != nil {
				return err
			}

			var entries []domain.ProductCategoryEntry
			if taxonomyPath != "" {
				if entries, err = taxonomy.LoadFile(taxonomyPath); err != nil {
					return fmt.Errorf("%w: %w", domain.ErrTaxonomyUnavailable, err)
				}
			}

			result := v.CompareWithHierarchicalCategory(args[0], args[1], question, entries, opts)
			return writeJSON(cmd.OutOrStdout(), compareOutput{
				Result:  result,
				Display: usecase.FormatFeedback(result).String(),
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&question, "question", "q", "", "question text, used to pick the taxonomy level")
	cmd.Flags().StringVarP(&taxonomyPath, "taxonomy", "t", "", "CSV or YAML taxonomy file")
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Print the flavor distinctions and spelling variations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), struct {
				Distinctions map[string]domain.FlavorDistinctionRule `json:"distinctions"`
				Variations   []domain.SpellingVariation              `json:"variations"`
			}{
				Distinctions: usecase.FlavorDistinctions(),
				Variations:   usecase.SpellingVariations(),
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
