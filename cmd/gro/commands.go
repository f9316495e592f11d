package gro

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/gro/pkg/adopt"
	"github.com/arthur-debert/gro/pkg/config"
	"github.com/arthur-debert/gro/pkg/errors"
	"github.com/arthur-debert/gro/pkg/executor"
	"github.com/arthur-debert/gro/pkg/filesystem"
	"github.com/arthur-debert/gro/pkg/paths"
	"github.com/arthur-debert/gro/pkg/reconcile"
	"github.com/arthur-debert/gro/pkg/scanner"
	"github.com/arthur-debert/gro/pkg/style"
	"github.com/arthur-debert/gro/pkg/types"
	"github.com/arthur-debert/gro/pkg/vscode"
)

func newInitCmd() *cobra.Command {
	var (
		codePath   string
		workspaces []string
		scan       bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Long: `Create a new gro config file. With --scan the store is scanned and
every repository found is declared at the root of the first workspace.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath()
			if err != nil {
				return err
			}
			fsys := filesystem.NewOS()
			if _, err := fsys.Lstat(path); err == nil {
				return errors.Newf(errors.ErrConfigValid, MsgConfigExists, path)
			}

			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			if codePath == "" {
				codePath = settings.Store.Path
			}

			cfg, err := config.Default(codePath, workspaces)
			if err != nil {
				return err
			}

			if err := fsys.MkdirAll(cfg.StorePath, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate,
					"cannot create store directory %s", cfg.StorePath)
			}

			if scan {
				repos, err := scanner.ScanStore(fsys, cfg.StorePath)
				if err != nil {
					return err
				}
				names := cfg.WorkspaceNames()
				root := cfg.Workspaces[names[0]].EnsureCategory(types.RootCategory)
				for _, repo := range repos {
					root.Entries = append(root.Entries, types.RepoEntry{RepoName: repo})
				}
			}

			if dryRun {
				fmt.Printf(MsgConfigCreated, path)
				fmt.Println(MsgDryRunNotice)
				return nil
			}
			if err := config.Save(fsys, cfg, path); err != nil {
				return err
			}
			fmt.Printf(MsgConfigCreated, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&codePath, "code", "", MsgFlagInitCode)
	cmd.Flags().StringArrayVarP(&workspaces, "workspace", "w", nil, MsgFlagInitWorkspace)
	cmd.Flags().BoolVar(&scan, "scan", false, MsgFlagInitScan)
	return cmd
}

func newStatusCmd() *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			workspaces, err := a.selectWorkspaces(workspaceFlag)
			if err != nil {
				return err
			}

			storeRepos, err := scanner.ScanStore(a.fs, a.cfg.StorePath)
			if err != nil {
				return err
			}

			anyChanges := false
			anyOrphans := false
			for _, ws := range workspaces {
				observed, err := scanner.ScanWorkspaceSymlinks(a.fs, ws)
				if err != nil {
					return err
				}
				plan := reconcile.Reconcile(ws, a.cfg.StorePath, storeRepos, observed,
					reconcile.Options{PathState: scanner.NewPathStater(a.fs, ws.Path)})
				renderPlan(os.Stdout, a.format, ws, plan)
				anyChanges = anyChanges || plan.HasChanges()
				anyOrphans = anyOrphans || len(plan.Orphans) > 0
			}

			// Store content nothing declares, and config-level advisories.
			declared := a.cfg.AllRepos()
			var uncategorized []string
			for _, repo := range storeRepos {
				if !declared[repo] {
					uncategorized = append(uncategorized, repo)
				}
			}
			if len(uncategorized) > 0 {
				fmt.Println(style.Render(a.format, style.Header, "uncategorized"))
				for _, repo := range uncategorized {
					fmt.Println(style.Render(a.format, style.Muted, "  "+repo))
				}
			}
			for _, w := range config.Validate(a.fs, a.cfg) {
				fmt.Println(style.Render(a.format, style.Warning,
					fmt.Sprintf("  %s %s", style.GlyphConflict, w)))
			}

			if !anyChanges && !anyOrphans && len(uncategorized) == 0 {
				fmt.Println(MsgNothingToDo)
				return nil
			}
			if anyChanges {
				fmt.Println(MsgRunApplyHint)
			}
			if anyOrphans {
				fmt.Println(MsgRunPruneHint)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", MsgFlagWorkspace)
	return cmd
}

func newApplyCmd() *cobra.Command {
	var (
		workspaceFlag string
		prune         bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: MsgApplyShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			workspaces, err := a.selectWorkspaces(workspaceFlag)
			if err != nil {
				return err
			}

			storeRepos, err := scanner.ScanStore(a.fs, a.cfg.StorePath)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("prune") {
				prune = a.settings.Apply.Prune
			}

			changed := false
			for _, ws := range workspaces {
				observed, err := scanner.ScanWorkspaceSymlinks(a.fs, ws)
				if err != nil {
					return err
				}
				plan := reconcile.Reconcile(ws, a.cfg.StorePath, storeRepos, observed,
					reconcile.Options{
						Prune:     prune,
						PathState: scanner.NewPathStater(a.fs, ws.Path),
					})

				for _, c := range plan.Conflicts {
					fmt.Println(style.Render(a.format, style.Danger,
						fmt.Sprintf("  %s %s", style.GlyphConflict, c.Description())))
				}

				result := executor.Apply(a.fs, ws, a.cfg.StorePath, plan, executor.Options{
					DryRun:           dryRun,
					CleanupEmptyDirs: a.settings.Apply.CleanupEmptyDirs,
				})
				renderResult(os.Stdout, a.format, ws,
					result.Created, result.Relinked, result.Removed, result.Errors)
				changed = changed || result.Changed()

				if len(result.Errors) > 0 {
					return errors.Newf(errors.ErrSymlinkCreate,
						"%d actions failed in workspace %s", len(result.Errors), ws.Name())
				}
			}

			if !changed {
				fmt.Println(MsgNothingToDo)
			}
			if dryRun {
				fmt.Println(MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", MsgFlagWorkspace)
	cmd.Flags().BoolVar(&prune, "prune", false, MsgFlagPrune)
	return cmd
}

func newSyncCmd() *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: MsgSyncShort,
		Long: `Find store repositories not declared anywhere in the config and add
them to the root category of a workspace.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			storeRepos, err := scanner.ScanStore(a.fs, a.cfg.StorePath)
			if err != nil {
				return err
			}

			declared := a.cfg.AllRepos()
			var missing []string
			for _, repo := range storeRepos {
				if !declared[repo] {
					missing = append(missing, repo)
				}
			}
			if len(missing) == 0 {
				fmt.Println(MsgNoUncategorized)
				return nil
			}

			ws, err := a.firstWorkspace(workspaceFlag)
			if err != nil {
				return err
			}
			root := ws.EnsureCategory(types.RootCategory)
			for _, repo := range missing {
				root.Entries = append(root.Entries, types.RepoEntry{RepoName: repo})
			}

			if dryRun {
				fmt.Printf(MsgSyncedFormat, len(missing), ws.Name())
				fmt.Println(MsgDryRunNotice)
				return nil
			}
			if err := a.saveConfig(); err != nil {
				return err
			}
			fmt.Printf(MsgSyncedFormat, len(missing), ws.Name())
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", MsgFlagWorkspace)
	return cmd
}

func newAdoptCmd() *cobra.Command {
	var workspaceFlag string

	cmd := &cobra.Command{
		Use:   "adopt",
		Short: MsgAdoptShort,
		Long: `Scan existing workspace symlink trees and add the entries they imply
to the config. Links already declared, broken links, and links pointing
outside the store are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			workspaces, err := a.selectWorkspaces(workspaceFlag)
			if err != nil {
				return err
			}

			totalAdded := 0
			for _, ws := range workspaces {
				adopted, warnings, err := adopt.Adopt(a.fs, ws, a.cfg.StorePath)
				if err != nil {
					return err
				}
				for _, w := range warnings {
					fmt.Println(style.Render(a.format, style.Warning,
						fmt.Sprintf("  %s %s", style.GlyphConflict, w)))
				}
				added := adopt.Merge(ws, adopted)
				if added > 0 {
					fmt.Printf(MsgAdoptedFormat, added, ws.Name())
				}
				totalAdded += added
			}

			if totalAdded == 0 {
				fmt.Print(MsgNoAdopted)
				return nil
			}
			if dryRun {
				fmt.Println(MsgDryRunNotice)
				return nil
			}
			return a.saveConfig()
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", MsgFlagWorkspace)
	return cmd
}

func newAddCmd() *cobra.Command {
	var (
		workspaceFlag string
		categoryFlag  string
		aliasFlag     string
	)

	cmd := &cobra.Command{
		Use:   "add <repo>[:<alias>]",
		Short: MsgAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			ws, err := a.firstWorkspace(workspaceFlag)
			if err != nil {
				return err
			}

			entry := types.ParseRepoEntry(args[0])
			if aliasFlag != "" {
				entry.Alias = aliasFlag
			}

			cat := ws.EnsureCategory(categoryFlag)
			if cat.SymlinkNames()[entry.SymlinkName()] {
				fmt.Printf(MsgRepoAlready, entry.String(), ws.Name(), cat.Path)
				return nil
			}
			cat.Entries = append(cat.Entries, entry)

			if dryRun {
				fmt.Printf(MsgRepoAdded, entry.String(), ws.Name(), cat.Path)
				fmt.Println(MsgDryRunNotice)
				return nil
			}
			if err := a.saveConfig(); err != nil {
				return err
			}
			fmt.Printf(MsgRepoAdded, entry.String(), ws.Name(), cat.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", MsgFlagWorkspace)
	cmd.Flags().StringVar(&categoryFlag, "category", types.RootCategory, MsgFlagCategory)
	cmd.Flags().StringVar(&aliasFlag, "alias", "", MsgFlagAlias)
	return cmd
}

func newVSCodeCmd() *cobra.Command {
	var (
		workspaceFlag string
		categoryFlag  string
		outputFlag    string
	)

	cmd := &cobra.Command{
		Use:   "vscode",
		Short: MsgVSCodeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			workspaces, err := a.selectWorkspaces(workspaceFlag)
			if err != nil {
				return err
			}

			outputDir := outputFlag
			if outputDir == "" {
				outputDir = a.cfg.VSCodeWorkspacesPath
			}
			if outputDir == "" {
				outputDir, err = os.Getwd()
				if err != nil {
					return errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
				}
			} else if outputDir, err = paths.ExpandHome(outputDir); err != nil {
				return err
			}

			for _, ws := range workspaces {
				doc, err := vscode.Generate(a.cfg, ws.Name(), categoryFlag, outputDir)
				if err != nil {
					return err
				}
				out := filepath.Join(outputDir, vscode.FileName(ws.Name(), normalizedCategory(categoryFlag)))
				if dryRun {
					fmt.Printf(MsgWroteFileFormat, out)
					continue
				}
				if err := vscode.Write(a.fs, doc, out); err != nil {
					return err
				}
				fmt.Printf(MsgWroteFileFormat, out)
			}
			if dryRun {
				fmt.Println(MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspaceFlag, "workspace", "w", "", MsgFlagWorkspace)
	cmd.Flags().StringVar(&categoryFlag, "category", "", MsgFlagCategory)
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", MsgFlagOutput)
	return cmd
}

// normalizedCategory keeps the "no category" case distinct from the root
// category for file naming.
func normalizedCategory(flag string) string {
	if flag == "" {
		return ""
	}
	return types.NormalizeCategoryPath(flag)
}

func newGenconfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenconfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.DefaultSettingsTOML()
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}
