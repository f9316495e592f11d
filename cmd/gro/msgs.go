package gro

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Organize git repositories with categorized workspace symlinks"
	MsgInitShort      = "Create a new gro config"
	MsgStatusShort    = "Show what apply would change"
	MsgApplyShort     = "Reconcile workspaces with the config"
	MsgSyncShort      = "Add uncategorized store repos to the config"
	MsgAdoptShort     = "Infer config entries from existing workspace symlinks"
	MsgAddShort       = "Declare a repo in a workspace category"
	MsgVSCodeShort    = "Generate VS Code .code-workspace files"
	MsgGenconfigShort = "Print the default app settings TOML"
	MsgVersionShort   = "Print version information"

	// Status messages
	MsgDryRunNotice     = "\nDRY RUN MODE - No changes were made"
	MsgNothingToDo      = "Everything up to date."
	MsgRunApplyHint     = "\nRun 'gro apply' to make these changes."
	MsgRunPruneHint     = "Run 'gro apply --prune' to also remove orphaned symlinks."
	MsgConfigCreated    = "Created config at %s\n"
	MsgConfigExists     = "config already exists at %s (remove it first or edit it directly)"
	MsgRepoAdded        = "Added %s to %s/%s\n"
	MsgRepoAlready      = "%s is already declared in %s/%s\n"
	MsgSyncedFormat     = "Added %d uncategorized repos to %s\n"
	MsgNoUncategorized  = "No uncategorized repos found."
	MsgAdoptedFormat    = "Adopted %d entries into %s\n"
	MsgNoAdopted        = "No new entries to adopt.\n"
	MsgWroteFileFormat  = "Wrote %s\n"

	// Flag descriptions
	MsgFlagConfig         = "Config file (default $XDG_CONFIG_HOME/gro/config.yaml)"
	MsgFlagDryRun         = "Preview changes without executing them"
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNonInteractive = "Never prompt; pick defaults"
	MsgFlagWorkspace      = "Limit to one workspace"
	MsgFlagPrune          = "Also remove orphaned symlinks"
	MsgFlagCategory       = "Category path ('.' for the workspace root)"
	MsgFlagAlias          = "Symlink name to use instead of the repo name"
	MsgFlagOutput         = "Output directory for generated files"
	MsgFlagInitCode       = "Store path for the new config"
	MsgFlagInitWorkspace  = "Workspace to declare (repeatable)"
	MsgFlagInitScan       = "Populate the config by scanning the store"
)
