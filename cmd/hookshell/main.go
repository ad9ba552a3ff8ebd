// Command hookshell is an interactive shell for experimenting with hooks.
//
// Hooks can be preloaded from a YAML manifest and from Lua scripts, then
// dispatched, added and removed from the prompt:
//
//	hookshell --manifest hooks.yaml --script plugin.lua
//	hooks> apply price 10
//	21
package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/rickchristie/wphook"
	"github.com/rickchristie/wphook/luahooks"
	"github.com/rickchristie/wphook/manifest"
	"github.com/spf13/cobra"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

type options struct {
	manifest string
	scripts  []string
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "hookshell",
		Short: "Interactive shell for action and filter hooks.",
		Long: `hookshell keeps a hook registry in memory and lets you register, ` +
			`dispatch and remove actions and filters from a prompt. Hooks can be ` +
			`preloaded from a YAML manifest and from Lua scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", "", "YAML manifest of hooks to register")
	cmd.Flags().StringArrayVarP(&opts.scripts, "script", "s", nil, "Lua script to run at startup (repeatable)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log registry changes")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func run(opts *options) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	L := lua.NewState()
	defer L.Close()

	sh := newShell(wphook.NewRegistry(wphook.WithLogger(logger)), L, os.Stdout)

	if opts.manifest != "" {
		m, err := manifest.Load(opts.manifest)
		if err != nil {
			return err
		}
		if err := m.Apply(sh.registry, sh.catalog); err != nil {
			return fmt.Errorf("failed to apply manifest: %w", err)
		}
		logger.Info("manifest applied",
			zap.String("path", opts.manifest),
			zap.Int("hooks", len(m.Hooks)),
		)
	}

	installed := luahooks.Install(L, sh.registry)
	logger.Debug("lua globals installed", zap.Strings("names", installed))

	for _, path := range opts.scripts {
		if err := L.DoFile(path); err != nil {
			return fmt.Errorf("failed to run script %s: %w", path, err)
		}
		logger.Info("script loaded", zap.String("path", path))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "hooks> ",
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	return sh.loop(rl)
}

func completer() *readline.PrefixCompleter {
	types := func() []readline.PrefixCompleterInterface {
		return []readline.PrefixCompleterInterface{
			readline.PcItem(string(wphook.Action)),
			readline.PcItem(string(wphook.Filter)),
		}
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("apply"),
		readline.PcItem("do"),
		readline.PcItem("add", types()...),
		readline.PcItem("remove", types()...),
		readline.PcItem("callbacks"),
		readline.PcItem("lua"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
