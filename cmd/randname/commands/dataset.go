package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/mrled/randname/internal/presenter"
	"github.com/mrled/randname/internal/repository"
	"github.com/mrled/randname/internal/repository/embedded"
	"github.com/mrled/randname/internal/service/convert"
	"github.com/mrled/randname/internal/service/validation"
)

func newCountriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "countries",
		Short:   "List the country codes of the dataset",
		GroupID: "dataset",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.newResolver()
			if err != nil {
				return err
			}
			countries, err := svc.Countries(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list countries: %w", err)
			}
			return presenter.WriteCountries(cmd.OutOrStdout(), countries)
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Show which sexes each country offers",
		GroupID: "dataset",
		Long: `Display, for every country, the sex codes available for first and last names.

Examples:
  randname show
  randname show --format yaml
  randname show --database ./names --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := presenter.ParseFormat(format)
			if err != nil {
				return &UsageError{err}
			}
			svc, err := a.newResolver()
			if err != nil {
				return err
			}
			summary, err := svc.Summary(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to summarize dataset: %w", err)
			}
			return presenter.WriteSummary(cmd.OutOrStdout(), summary, f)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "validate [dir]",
		Short:   "Check a dataset directory for structural problems",
		GroupID: "dataset",
		Long: `Validate the layout and content of a dataset directory.

Every problem found is reported; the command exits with status 1 when the
dataset is invalid. Without an argument the --database directory is checked,
or the embedded dataset when none is configured.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.Database
			if len(args) == 1 {
				root = args[0]
			}
			if root == "" && a.cfg.Snapshot != "" {
				return &UsageError{errors.New("validate works on dataset directories; export one instead of a snapshot")}
			}

			svc := validation.NewService(validation.WithLogger(a.logger))
			var err error
			if root == "" {
				err = svc.Validate(cmd.Context(), embedded.FS())
			} else {
				err = svc.ValidateDir(cmd.Context(), root)
			}

			out := cmd.OutOrStdout()
			var verr *validation.Error
			switch {
			case err == nil:
				fmt.Fprintln(out, "Dataset is valid.")
				return nil
			case errors.As(err, &verr):
				for _, p := range verr.Problems {
					fmt.Fprintf(out, "  - %v\n", p)
				}
				return ExitWithCode(1, fmt.Errorf("dataset is invalid: %d problem(s)", len(verr.Problems)))
			default:
				return ExitWithCode(1, err)
			}
		},
	}
}

func newConvertCmd(a *app) *cobra.Command {
	var (
		output string
		limit  int
		raw    bool
		lang   string
	)
	cmd := &cobra.Command{
		Use:     "convert <input.csv|->",
		Short:   "Turn a name,frequency CSV into a bucket file",
		GroupID: "dataset",
		Long: `Convert a two-column CSV of names and frequencies into bucket JSON.

Frequencies are accumulated into running totals unless --raw is given. Names
are title-cased. An optional header row is skipped.

Examples:
  randname convert census.csv -o names/US/first_names/2020_F
  cat census.csv | randname convert - --limit 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(lang)
			if err != nil {
				return &UsageError{fmt.Errorf("invalid language %q: %w", lang, err)}
			}

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			opts := convert.Options{Limit: limit, Raw: raw, Language: tag}
			bucket, err := convert.Read(in, opts)
			if err != nil {
				return fmt.Errorf("conversion failed: %w", err)
			}
			err = writeOutput(cmd, output, func(w io.Writer) error {
				return convert.Write(w, bucket, opts)
			})
			if err != nil {
				return fmt.Errorf("failed to write bucket: %w", err)
			}
			a.logger.Info("bucket written", "names", len(bucket.Names), "output", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the bucket to this file instead of stdout")
	cmd.Flags().IntVar(&limit, "limit", convert.DefaultLimit, "Maximum number of names to keep")
	cmd.Flags().BoolVar(&raw, "raw", false, "Write frequencies as read instead of running totals (not a loadable bucket)")
	cmd.Flags().StringVar(&lang, "language", "und", "BCP 47 language used for title-casing")
	return cmd
}

func newSnapshotCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "snapshot",
		Short:   "Export the dataset as a single JSON file",
		GroupID: "dataset",
		Long: `Export every country of the dataset into one JSON document that can be
used later with --snapshot.

Examples:
  randname snapshot --database ./names -o names.json
  randname --snapshot names.json full`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.openRepository()
			if err != nil {
				return err
			}

			return writeOutput(cmd, output, func(w io.Writer) error {
				return repository.WriteSnapshot(cmd.Context(), repo, w)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the snapshot to this file instead of stdout")
	return cmd
}
