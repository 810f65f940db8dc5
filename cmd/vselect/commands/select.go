package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/vselect/attributes"
	"github.com/willibrandon/vselect/chooser"
	"github.com/willibrandon/vselect/component"
	"github.com/willibrandon/vselect/observability"
	"github.com/willibrandon/vselect/selector"
)

// candidateFile is the YAML schema of the candidate input file.
type candidateFile struct {
	Candidates []candidateEntry `yaml:"candidates"`
}

type candidateEntry struct {
	Group        string            `yaml:"group"`
	Name         string            `yaml:"name"`
	Version      string            `yaml:"version"`
	Status       string            `yaml:"status"`
	StatusScheme []string          `yaml:"statusScheme"`
	Attributes   map[string]string `yaml:"attributes"`
}

func newSelectCommand() *cobra.Command {
	var (
		selectorStr string
		rejectStr   string
		attrFlags   []string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "select <candidate-file>",
		Short: "Run one selection call over a YAML candidate file",
		Example: `  vselect select candidates.yaml --selector '1.+'
  vselect select candidates.yaml --selector latest.milestone --reject '1.3'
  vselect select candidates.yaml --selector '[1.0, 2.0)' --attr color=red`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			primary, err := selector.Parse(selectorStr)
			if err != nil {
				return fmt.Errorf("invalid --selector: %w", err)
			}

			var constraint selector.Selector
			if rejectStr != "" {
				constraint, err = selector.Parse(rejectStr)
				if err != nil {
					return fmt.Errorf("invalid --reject: %w", err)
				}
			}

			attrs, err := parseAttrFlags(attrFlags)
			if err != nil {
				return err
			}

			candidates, err := loadCandidates(args[0])
			if err != nil {
				return err
			}

			logger := observability.NewNullLogger()
			if verbose {
				logger = observability.NewLogger(cmd.ErrOrStderr(), observability.VerboseLevel)
			}

			ch := chooser.New(chooser.WithLogger(logger))
			res, err := ch.Select(cmd.Context(), chooser.Request{
				Candidates: candidates,
				Selector:   primary,
				Constraint: constraint,
				Attributes: attrs,
			})
			if res != nil {
				printLedger(cmd, res)
			}
			if err != nil {
				return err
			}
			if res.Selection.State != chooser.OutcomeMatched {
				return fmt.Errorf("no candidate matched %q", selectorStr)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&selectorStr, "selector", "", "version selector (required)")
	cmd.Flags().StringVar(&rejectStr, "reject", "", "exclusion selector")
	cmd.Flags().StringArrayVar(&attrFlags, "attr", nil, "requested attribute key=value (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each pipeline stage")
	_ = cmd.MarkFlagRequired("selector")

	return cmd
}

// loadCandidates reads the YAML candidate file into resolved candidates.
func loadCandidates(path string) ([]*component.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidate file: %w", err)
	}

	var file candidateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse candidate file: %w", err)
	}
	if len(file.Candidates) == 0 {
		return nil, fmt.Errorf("candidate file %s lists no candidates", path)
	}

	candidates := make([]*component.Candidate, 0, len(file.Candidates))
	for i, entry := range file.Candidates {
		if entry.Version == "" {
			return nil, fmt.Errorf("candidate %d has no version", i)
		}
		id := component.ID{Group: entry.Group, Name: entry.Name, Version: entry.Version}
		desc := &component.Descriptor{
			Status:       entry.Status,
			StatusScheme: entry.StatusScheme,
			Attributes:   attributes.Set(entry.Attributes),
		}
		if desc.Status == "" {
			desc.Status = "release"
		}
		candidates = append(candidates, component.NewResolvedCandidate(id, desc))
	}
	return candidates, nil
}

// parseAttrFlags parses repeated key=value attribute flags.
func parseAttrFlags(flags []string) (attributes.Set, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	attrs := make(attributes.Set, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --attr %q, want key=value", f)
		}
		attrs[key] = value
	}
	return attrs, nil
}

// printLedger renders the ordered outcome sequence.
func printLedger(cmd *cobra.Command, res *chooser.Result) {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	for _, ev := range res.Events {
		switch ev.Kind {
		case chooser.OutcomeMatched:
			_, _ = green.Fprintf(out, "  matched                %s\n", ev.ID)
		case chooser.OutcomeResolutionFailed:
			_, _ = red.Fprintf(out, "  resolution failed      %s: %v\n", ev.ID, ev.Err.Unwrap())
		case chooser.OutcomeNoMatchFound:
			_, _ = yellow.Fprintln(out, "  no match found")
		case chooser.OutcomeNotMatched:
			_, _ = fmt.Fprintf(out, "  not matched            %s\n", ev.ID)
		case chooser.OutcomeRejectedByConstraint:
			_, _ = fmt.Fprintf(out, "  rejected by constraint %s\n", ev.ID)
		case chooser.OutcomeRejectedByRule:
			_, _ = fmt.Fprintf(out, "  rejected by rule       %s (%s)\n", ev.ID, ev.Reason)
		case chooser.OutcomeAttributeMismatch:
			_, _ = fmt.Fprintf(out, "  attribute mismatch     %s\n", ev.ID)
			for _, m := range ev.Mismatches {
				_, _ = fmt.Fprintf(out, "      %s\n", m)
			}
		}
	}
}
