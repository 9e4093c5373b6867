// Package cli provides the command line interface.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ingest/internal/utils"
)

const (
	includeFlagName      = "include"
	includeFlagShorthand = "i"
	excludeFlagName      = "exclude"
	excludeFlagShorthand = "e"
	maxSizeFlagName      = "max-size"
	outputFlagName       = "output"
	outputFlagShorthand  = "o"
	noGitignoreFlagName  = "no-gitignore"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	clipboardFlagName    = "clipboard"
	clipboardShorthand   = "c"

	includeFlagDescription     = "glob patterns for files to include; if used, only matching files are included"
	excludeFlagDescription     = "additional glob patterns for files or directories to exclude"
	maxSizeFlagDescription     = "maximum file size in KiB for content inclusion"
	outputFlagDescription      = "output file name"
	noGitignoreFlagDescription = "do not apply .gitignore files"
	tokensFlagDescription      = "print the estimated token count of the digest"
	modelFlagDescription       = "tokenizer model used for token estimation"
	clipboardFlagDescription   = "copy the digest to the system clipboard"

	defaultRootPath       = "."
	defaultMaxSizeKiB     = 100
	defaultOutputFileName = "digest.txt"
	defaultTokenizerModel = "gpt-4o"

	rootUse              = "ingest [path]"
	rootShortDescription = "generate a directory content digest"
	rootLongDescription  = `ingest walks a directory tree, filters out non-source artifacts
(build outputs, lockfiles, binaries, large files), and writes a single digest
document containing a tree view plus the concatenated contents of the
surviving files.`
	rootUsageExample = `  # Digest the current directory into digest.txt
  ingest

  # Digest only Go sources of a project into context.txt
  ingest -i "*.go" -o context.txt ./project

  # Raise the content size cutoff and copy the digest to the clipboard
  ingest --max-size 512 --clipboard .`
)

// ingestOptions stores the configuration gathered from flags and arguments.
type ingestOptions struct {
	rootPath         string
	includePatterns  []string
	excludePatterns  []string
	maxSizeKiB       int64
	outputFileName   string
	disableGitignore bool
	countTokens      bool
	tokenizerModel   string
	copyToClipboard  bool
}

// Execute runs the ingest application with the provided logger.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// createRootCommand builds the single root Cobra command; the tool has no subcommands.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var options ingestOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Version:      utils.GetApplicationVersion(),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			options.rootPath = defaultRootPath
			if len(arguments) > 0 {
				options.rootPath = arguments[0]
			}
			return runIngest(options, logger)
		},
	}

	rootCommand.Flags().StringArrayVarP(&options.includePatterns, includeFlagName, includeFlagShorthand, nil, includeFlagDescription)
	rootCommand.Flags().StringArrayVarP(&options.excludePatterns, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	rootCommand.Flags().Int64Var(&options.maxSizeKiB, maxSizeFlagName, defaultMaxSizeKiB, maxSizeFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputFileName, outputFlagName, outputFlagShorthand, defaultOutputFileName, outputFlagDescription)
	rootCommand.Flags().BoolVar(&options.disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	rootCommand.Flags().BoolVar(&options.countTokens, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.tokenizerModel, modelFlagName, defaultTokenizerModel, modelFlagDescription)
	rootCommand.Flags().BoolVarP(&options.copyToClipboard, clipboardFlagName, clipboardShorthand, false, clipboardFlagDescription)

	return rootCommand
}
