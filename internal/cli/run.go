// Package cli — run.go implements the "repo-setup run" command.
//
// The run command is the whole setup flow, executed strictly in order:
//  1. Collect inputs (destination folder, repository URLs) and ensure
//     the destination directory exists
//  2. Resolve the package-manager preference (npm/yarn, npm default)
//  3. Verify the chosen manager is installed (yarn only)
//  4. Clone each repository, tolerating per-URL failures
//  5. Install dependencies in every cloned folder with a package.json
//  6. Print the final summary (text or JSON)
//
// There is no branching back and no parallelism; every external process
// runs synchronously and the interactive session is closed before the
// first one starts.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/repo-setup/internal/gitclone"
	"github.com/mmr-tortoise/repo-setup/internal/model"
	"github.com/mmr-tortoise/repo-setup/internal/pkgmgr"
	"github.com/mmr-tortoise/repo-setup/internal/prompt"
)

// runFlags holds the flag values for the run command. Each flag
// pre-answers the corresponding interactive prompt; a prompt is shown
// only for values not supplied by flags.
type runFlags struct {
	dest    string // --dest: destination folder (prompt 1)
	repos   string // --repos: semicolon-delimited URL list (prompt 2)
	manager string // --package-manager: npm or yarn (prompt 3)
}

// NewRunCommand creates the "run" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the interactive clone-and-install setup flow",
		Long: `Run the setup flow: prompt for a destination folder, a semicolon-delimited
list of Git repository URLs, and the package manager to use, then clone every
repository and install dependencies wherever a package.json is found.

Any prompt can be pre-answered with a flag for scripted use.

Examples:
  repo-setup run
  repo-setup run --dest /tmp/proj --repos "https://x/a.git;https://x/b.git"
  repo-setup run --dest /tmp/proj --repos https://x/a.git --package-manager yarn`,

		Args: cobra.NoArgs,

		// RunE returns errors to the root command's error handler,
		// which maps CLIError codes onto process exit codes.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context(), cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.dest, "dest", "", "Destination folder for all clones (skips the folder prompt)")
	cmd.Flags().StringVar(&flags.repos, "repos", "", "Semicolon-delimited repository URLs (skips the URL prompt)")
	cmd.Flags().StringVar(&flags.manager, "package-manager", "", "Package manager to use: npm or yarn (skips the manager prompt)")

	return cmd
}

// runSetup is the main orchestration function for the run command.
func runSetup(ctx context.Context, cmd *cobra.Command, flags *runFlags) error {
	out := cmd.OutOrStdout()

	// Step 1: Collect inputs over a single interactive session.
	// The session is a scoped resource: opened once, closed right after
	// the last answer, before any external process is invoked.
	session := prompt.NewSession(cmd.InOrStdin(), out)

	dest := flags.dest
	if dest == "" {
		var err error
		dest, err = session.DestinationPath()
		if err != nil {
			return model.WrapCLIError(model.ExitInputError, "failed to read destination folder", err)
		}
	}

	var urls []string
	if flags.repos != "" {
		urls = prompt.ParseURLList(flags.repos)
	} else {
		var err error
		urls, err = session.RepositoryURLs()
		if err != nil {
			return model.WrapCLIError(model.ExitInputError, "failed to read repository URLs", err)
		}
	}

	// Step 2: Resolve the package-manager preference. An unrecognized
	// answer falls back to npm with a notice — not an error.
	var kind model.ManagerKind
	var recognized bool
	if flags.manager != "" {
		kind, recognized = model.ParseManagerKind(flags.manager)
	} else {
		var err error
		kind, recognized, err = session.ManagerChoice()
		if err != nil {
			return model.WrapCLIError(model.ExitInputError, "failed to read package-manager choice", err)
		}
	}
	if !recognized {
		fmt.Fprintf(out, "unrecognized package manager preference, defaulting to %s\n", model.ManagerNpm)
	}

	// All prompts are answered — release the input stream before the
	// first external-process invocation. No prompt is possible after this.
	if err := session.Close(); err != nil {
		VerboseLog("closing input stream: %v", err)
	}

	// Normalize the destination and make sure it exists.
	destPath, err := filepath.Abs(dest)
	if err != nil {
		return model.WrapCLIError(model.ExitFilesystemError, "failed to resolve destination folder", err)
	}
	if err := os.MkdirAll(destPath, 0755); err != nil {
		return model.WrapCLIError(model.ExitFilesystemError,
			fmt.Sprintf("failed to create destination folder %s", destPath), err)
	}
	VerboseLog("Destination folder: %s", destPath)

	// Zero usable URLs aborts the run before any clone is attempted.
	if len(urls) == 0 {
		return model.NewCLIError(model.ExitInputError, "no repository URLs supplied")
	}

	req := model.SetupRequest{DestinationPath: destPath, RepositoryURLs: urls}
	VerboseLog("Cloning %d repositories with %s", len(req.RepositoryURLs), kind)

	// Step 3: Verify the chosen manager is present, installing it via
	// npm when missing. A failure here is fatal.
	manager := pkgmgr.New(kind)
	if err := manager.EnsureAvailable(ctx); err != nil {
		return err // EnsureAvailable already returns CLIError
	}

	// Step 4: Clone every repository in order. Failures are per-URL and
	// tolerated; only the successful subset moves on.
	cloner := gitclone.NewCloner()
	outcomes := cloner.CloneAll(ctx, req.DestinationPath, req.RepositoryURLs)
	folders := gitclone.Succeeded(outcomes)
	VerboseLog("%d of %d clones succeeded", len(folders), len(outcomes))

	// Soft stop: nothing cloned means nothing to install. Reported as
	// incomplete, but the process still exits zero.
	if len(folders) == 0 {
		fmt.Fprintln(out, "no repository could be cloned; setup incomplete")
		printRunSummary(out, destPath, 0)
		return nil
	}

	// Step 5: Install dependencies folder by folder. Per-folder failures
	// are reported and tolerated; a folder without a manifest is skipped
	// with a notice and still counts as set up.
	count := manager.InstallAll(ctx, destPath, folders)

	// Step 6: Final summary.
	printRunSummary(out, destPath, count)
	return nil
}

// printRunSummary outputs the destination path and the count of
// successfully set-up repositories, as text or JSON.
func printRunSummary(out io.Writer, destPath string, count int) {
	if IsJSONOutput() {
		summary := struct {
			Destination       string `json:"destination"`
			RepositoriesSetUp int    `json:"repositoriesSetUp"`
		}{
			Destination:       destPath,
			RepositoriesSetUp: count,
		}
		data, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Fprintln(out, string(data))
		return
	}

	fmt.Fprintf(out, "Setup finished in %s: %d repositories set up\n", destPath, count)
}
