package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	phon "github.com/rmera/gophon"
	"github.com/rmera/gophon/dos"
	"github.com/rmera/gophon/dyn"
	"github.com/rmera/gophon/dynplot"
	"github.com/rmera/gophon/dynstore"
	"github.com/spf13/cobra"
)

//read reads all the files, in order.
func (a *app) read(ctx context.Context, names []string) ([]*phon.Record, error) {
	recs, err := dyn.ReadFiles(ctx, names, a.cfg.Options())
	if err != nil {
		return nil, err
	}
	if a.verbose {
		for i, r := range recs {
			log.Printf("%s: %d atoms, q = %s, %d modes", names[i], r.NAtoms(), r.Q, len(r.Modes))
		}
	}
	return recs, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

//summary writes a short description of rec.
func summary(w io.Writer, name string, rec *phon.Record, tol float64) {
	fmt.Fprintf(w, "%s: nat=%d q=%s gamma=%v ifc=%d dielectric=%s charges=%s modes=%d\n",
		name, rec.NAtoms(), rec.Q, rec.Gamma(tol), rec.IFC.Len(), yesNo(rec.Epsilon != nil), yesNo(rec.Charges != nil), len(rec.Modes))
	for _, sp := range rec.Header.Species {
		fmt.Fprintf(w, "  species %d %s (%s): %.4f amu\n", sp.Index, sp.Name, sp.Element(), sp.AMU())
	}
	if rec.Epsilon != nil {
		d := rec.Epsilon.Diag()
		fmt.Fprintf(w, "  epsilon diagonal: %.6f %.6f %.6f\n", d[0], d[1], d[2])
	}
	freqs := make([]string, len(rec.Modes))
	for i, f := range rec.Frequencies() {
		freqs[i] = strconv.FormatFloat(f, 'f', 6, 64)
	}
	fmt.Fprintf(w, "  frequencies (THz): %s\n", strings.Join(freqs, " "))
}

func (a *app) parseCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Print the contents of dyn files",
		Long: `Print a summary of each dyn file, or the whole file as JSON.

Examples:
  dynread parse si.dyn1 si.dyn2
  dynread parse --json si.dyn1.gz`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := a.read(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if len(recs) == 1 {
					return enc.Encode(recs[0])
				}
				return enc.Encode(recs)
			}
			for i, r := range recs {
				summary(w, args[i], r, a.cfg.Options().ZeroTol)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the records as JSON")
	return cmd
}

func (a *app) openStore() (*dynstore.Store, error) {
	s, err := dynstore.Open(a.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", a.cfg.DB, err)
	}
	s.SetZeroTol(a.cfg.Options().ZeroTol)
	return s, nil
}

func (a *app) storeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "store FILE...",
		Short: "Read dyn files and save them in the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := a.read(cmd.Context(), args)
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			for i, r := range recs {
				id, err := s.Save(cmd.Context(), args[i], r)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, args[i])
			}
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the records in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			entries, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\tnat=%d\tq=%s\tgamma=%v\t%s\n", e.ID, e.Source, e.NAt, e.Q, e.Gamma, e.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q: %w", s, err)
	}
	return id, nil
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a stored record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			rec, err := s.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a record from the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(cmd.Context(), id)
		},
	}
}

func (a *app) plotCmd() *cobra.Command {
	var out, title string
	cmd := &cobra.Command{
		Use:   "plot FILE...",
		Short: "Plot the phonon branches along the q-points of the given files",
		Long: `Plot the frequencies of each file against the path through their q-points,
in the order given. All files must be for the same system.

Examples:
  dynread plot --out si.png si.dyn1 si.dyn2 si.dyn3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := a.read(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := dynplot.Dispersion(recs, title, out, a.cfg.Options().ZeroTol); err != nil {
				return err
			}
			if a.verbose {
				log.Printf("plot written to %s", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dispersion.png", "Output file, the extension sets the format")
	cmd.Flags().StringVar(&title, "title", "Phonon dispersion", "Title of the plot")
	return cmd
}

func (a *app) dosCmd() *cobra.Command {
	var bins int
	var asJSON, normalize bool
	cmd := &cobra.Command{
		Use:   "dos FILE...",
		Short: "Print a histogram of the frequencies of all the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := a.read(cmd.Context(), args)
			if err != nil {
				return err
			}
			d, err := dos.FromRecords(recs, bins)
			if err != nil {
				return err
			}
			if normalize {
				d.Normalize()
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(d)
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().IntVar(&bins, "bins", 20, "Number of bins")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the histogram as JSON")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Normalize the histogram")
	return cmd
}
