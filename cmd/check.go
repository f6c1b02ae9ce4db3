package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/slopguard/slopguard/config"
	"github.com/slopguard/slopguard/internal/ghclient"
	"github.com/slopguard/slopguard/internal/log"
	"github.com/slopguard/slopguard/internal/output"
	"github.com/slopguard/slopguard/internal/response"
	"github.com/slopguard/slopguard/internal/service"
)

// NewCmdCheck creates the check command.
func NewCmdCheck(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check owner/repo#number",
		Short: "Evaluate a pull request (same as root slopguard)",
		Long: `Fetches the pull request, its diff, and the author's recent
activity, runs every heuristic check, and reports the aggregate score
and verdict.

The PR can be given as owner/repo#123, as "owner/repo 123", or as a
full https://github.com/owner/repo/pull/123 URL.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	addCheckFlags(cmd, opts)
	return cmd
}

// addCheckFlags adds the check-specific flags to a command.
func addCheckFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, markdown, json)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	cmd.Flags().BoolVar(&opts.Post, "post", false, "Apply label/comment/close actions to the PR")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "With --post, print planned actions without applying them")
}

func runCheck(cmd *cobra.Command, args []string, opts *Options) error {
	ctx := cmd.Context()

	log.Initialize(opts.Verbosity, os.Stderr)

	owner, repo, number, err := parsePRRef(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gh, err := ghclient.NewClient(ctx, cfg.GetGitHubToken())
	if err != nil {
		return err
	}

	svc := service.New(gh, cfg)
	eval, err := svc.Evaluate(ctx, owner, repo, number, time.Now())
	if err != nil {
		return fmt.Errorf("failed to evaluate %s/%s#%d: %w", owner, repo, number, err)
	}

	format := opts.Format
	if format == "" {
		format = cfg.DefaultFormat
	}
	formatter, err := output.NewFormatter(format)
	if err != nil {
		return err
	}
	if err := formatter.Format(eval, os.Stdout); err != nil {
		return err
	}

	if opts.Post && !eval.Bypassed {
		return applyActions(cmd, gh, owner, repo, number, eval, cfg, opts.DryRun)
	}

	return nil
}

// applyActions posts the planned moderation actions, or describes them
// under --dry-run.
func applyActions(cmd *cobra.Command, gh *ghclient.Client, owner, repo string, number int, eval *service.Evaluation, cfg *config.Config, dryRun bool) error {
	ctx := cmd.Context()
	action := response.Plan(eval.Result, cfg.AutoClose)

	if dryRun {
		fmt.Printf("\nPlanned actions for %s/%s#%d:\n", owner, repo, number)
		fmt.Printf("  label: %s\n", action.Label)
		if action.Comment != "" {
			if action.RequestChanges {
				fmt.Println("  review: request changes with findings comment")
			} else {
				fmt.Println("  comment: post findings")
			}
		}
		if action.Close {
			fmt.Println("  close: yes")
		}
		return nil
	}

	if err := gh.AddLabel(ctx, owner, repo, number, action.Label, response.AllLabels); err != nil {
		return err
	}
	if action.Comment != "" {
		if action.RequestChanges {
			if err := gh.RequestChanges(ctx, owner, repo, number, action.Comment); err != nil {
				return err
			}
		} else {
			if err := gh.PostComment(ctx, owner, repo, number, action.Comment); err != nil {
				return err
			}
		}
	}
	if action.Close {
		if err := gh.ClosePR(ctx, owner, repo, number); err != nil {
			return err
		}
	}

	log.Info("actions applied", "pr", fmt.Sprintf("%s/%s#%d", owner, repo, number), "label", action.Label, "closed", action.Close)
	return nil
}

// parsePRRef resolves the argument forms into owner, repo, and PR number.
func parsePRRef(args []string) (owner, repo string, number int, err error) {
	if len(args) == 2 {
		owner, repo, err = ghclient.ParseRepo(args[0])
		if err != nil {
			return "", "", 0, err
		}
		number, err = strconv.Atoi(args[1])
		if err != nil || number <= 0 {
			return "", "", 0, fmt.Errorf("invalid PR number %q", args[1])
		}
		return owner, repo, number, nil
	}

	ref := args[0]
	if strings.HasPrefix(ref, "https://github.com/") || strings.HasPrefix(ref, "http://github.com/") {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(ref, "https://github.com/"), "http://github.com/")
		parts := strings.Split(strings.TrimSuffix(trimmed, "/"), "/")
		if len(parts) < 4 || parts[2] != "pull" {
			return "", "", 0, fmt.Errorf("invalid PR URL %q, expected https://github.com/owner/repo/pull/number", ref)
		}
		number, err = strconv.Atoi(parts[3])
		if err != nil || number <= 0 {
			return "", "", 0, fmt.Errorf("invalid PR number in URL %q", ref)
		}
		return parts[0], parts[1], number, nil
	}

	full, numStr, found := strings.Cut(ref, "#")
	if !found {
		return "", "", 0, fmt.Errorf("invalid PR reference %q, expected owner/repo#number", ref)
	}
	owner, repo, err = ghclient.ParseRepo(full)
	if err != nil {
		return "", "", 0, err
	}
	number, err = strconv.Atoi(numStr)
	if err != nil || number <= 0 {
		return "", "", 0, fmt.Errorf("invalid PR number %q", numStr)
	}
	return owner, repo, number, nil
}
