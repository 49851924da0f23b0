package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrled/randname/internal/model"
	"github.com/mrled/randname/internal/presenter"
)

func newFirstCmd(a *app) *cobra.Command {
	return newCategoryCmd(a, model.FirstName, "first", "Draw a random first name", `Draw a random first name.

Examples:
  # A first name from any country
  randname first

  # A Polish girl's name from around 2010
  randname first --country PL --sex F --year 2010

  # Five names, ignoring popularity
  randname first -c US -n 5 --no-weights`)
}

func newLastCmd(a *app) *cobra.Command {
	return newCategoryCmd(a, model.LastName, "last", "Draw a random last name", `Draw a random last name.

Last names are neutral (N) in most countries; countries with gendered
surnames declare M and F instead.

Examples:
  randname last --country US
  randname last -c PL -s F`)
}

func newCategoryCmd(a *app, category model.Category, use, short, long string) *cobra.Command {
	var flags NameFlags
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    long,
		GroupID: "names",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := flags.query(cmd)
			if err != nil {
				return err
			}
			svc, err := a.newResolver()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			for range flags.Count {
				res, err := svc.Resolve(ctx, category, q)
				if err != nil {
					return err
				}
				if flags.Explain {
					fmt.Fprintln(out, presenter.DescribeResult(res))
				} else {
					fmt.Fprintln(out, res.Name)
				}
			}
			return nil
		},
	}
	addNameFlags(cmd, &flags)
	return cmd
}

func newFullCmd(a *app) *cobra.Command {
	var flags NameFlags
	cmd := &cobra.Command{
		Use:     "full",
		Short:   "Draw a random full name",
		GroupID: "names",
		Long: `Draw a first and a last name from the same country.

When the requested sex is not available for one of the two lists, a sex that
is available there is picked instead, so "--sex F" still yields a last name in
countries whose surnames are neutral.

Examples:
  randname full
  randname full --country PL --sex F --year 1990`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFull(cmd, &flags)
		},
	}
	addNameFlags(cmd, &flags)
	return cmd
}

func (a *app) runFull(cmd *cobra.Command, flags *NameFlags) error {
	q, err := flags.query(cmd)
	if err != nil {
		return err
	}
	svc, err := a.newResolver()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	for range flags.Count {
		res, err := svc.ResolveFull(ctx, q)
		if err != nil {
			return err
		}
		if flags.Explain {
			fmt.Fprintf(out, "%s + %s\n", presenter.DescribeResult(res.First), presenter.DescribeResult(res.Last))
		} else {
			fmt.Fprintln(out, res.Name())
		}
	}
	return nil
}
