package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snapshoot/pkg/document"
	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/metrics"
	"github.com/matzehuels/snapshoot/pkg/observability"
	"github.com/matzehuels/snapshoot/pkg/pipeline"
	"github.com/matzehuels/snapshoot/pkg/scene"
	"github.com/matzehuels/snapshoot/pkg/settings"
	"github.com/matzehuels/snapshoot/pkg/snapshot"
)

// exportOpts holds the command-line flags for the export command.
// Flags left unset fall back to the persisted settings.
type exportOpts struct {
	scene string // scene name; DontDestroyOnLoad selects the untracked roots
	index int    // scene index in dump order
	pick  bool   // choose the scene interactively

	format          string
	noTransform     bool
	noComponents    bool
	noMaterials     bool
	includeInactive bool
	noChildren      bool
	maxDepth        int
	detailed        bool // layer, tag and component types in dot/svg labels

	output      string // export directory
	noTimestamp bool
	stdout      bool

	noCache     bool
	refresh     bool
	cacheURL    string
	metricsFile string
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <scene-dump>",
		Short: "Export the scene hierarchy to a document",
		Long: `Export reads a scene dump (.yaml, .yml or .json) and writes a hierarchy
document for one scene or for every loaded scene.

Without --scene, --index or --pick every loaded scene is exported, the active
one first, followed by the objects that belong to no scene (DontDestroyOnLoad).`,
		Example: `  snapshoot export dump.yaml
  snapshoot export dump.yaml --scene Main --format json
  snapshoot export dump.yaml --index 0 --no-materials --max-depth 2
  snapshoot export dump.yaml --pick --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.scene, "scene", "s", "", "export a single scene by name")
	f.IntVar(&opts.index, "index", -1, "export a single scene by index in dump order")
	f.BoolVar(&opts.pick, "pick", false, "choose the scene interactively")
	f.StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(document.Formats, ", "))
	f.BoolVar(&opts.noTransform, "no-transform", false, "omit position, rotation and scale")
	f.BoolVar(&opts.noComponents, "no-components", false, "omit components")
	f.BoolVar(&opts.noMaterials, "no-materials", false, "omit renderer materials")
	f.BoolVar(&opts.includeInactive, "include-inactive", false, "include inactive objects")
	f.BoolVar(&opts.noChildren, "no-children", false, "export scene roots only")
	f.IntVar(&opts.maxDepth, "max-depth", -1, "maximum depth below scene roots (-1 = unlimited)")
	f.BoolVar(&opts.detailed, "detailed", false, "show layer, tag and components in dot/svg output")
	f.StringVarP(&opts.output, "output", "o", "", "export directory")
	f.BoolVar(&opts.noTimestamp, "no-timestamp", false, "omit the timestamp from the file name")
	f.BoolVar(&opts.stdout, "stdout", false, "write the document to stdout instead of a file")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the digest cache")
	f.BoolVar(&opts.refresh, "refresh", false, "write the file even if the hierarchy is unchanged")
	f.StringVar(&opts.cacheURL, "cache-url", "", "redis URL for a shared digest cache")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	cmd.MarkFlagsMutuallyExclusive("scene", "index", "pick")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return document.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, source string, opts exportOpts) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, _, err := c.loadSettings()
	if err != nil {
		return err
	}
	popts, err := buildPipelineOptions(cmd, source, s, opts)
	if err != nil {
		return err
	}
	popts.Logger = c.Logger

	if opts.pick {
		reg, err := scene.LoadFile(source)
		if err != nil {
			return err
		}
		sel, ok, err := pickScene(reg)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Export cancelled")
			return nil
		}
		popts.Registry = reg
		popts.Selection = sel
	}

	var recorder *metrics.Recorder
	if opts.metricsFile != "" {
		recorder = metrics.NewRecorder()
		recorder.Register()
		defer observability.Reset()
	}

	cacheURL := opts.cacheURL
	if cacheURL == "" {
		cacheURL = s.CacheURL
	}
	runner, err := c.newRunner(ctx, opts.noCache || popts.Stdout, cacheURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Execute(ctx, popts)
	if recorder != nil {
		if werr := recorder.WriteTextfile(opts.metricsFile); werr != nil {
			c.Logger.Warn("metrics not written", "err", werr)
		}
	}
	switch {
	case errors.Is(err, errors.ErrCodeSceneNotFound):
		return fmt.Errorf("nothing exported: %s", errors.UserMessage(err))
	case err != nil:
		return fmt.Errorf("export failed: %w", err)
	}

	if popts.Stdout {
		_, err := cmd.OutOrStdout().Write(res.Data)
		return err
	}

	prog.done(fmt.Sprintf("Exported %d objects", res.Walk.Visited))
	label := res.Scene
	if label == "" {
		label = "all scenes"
	}
	if res.Unchanged {
		printInfo("Hierarchy of %s unchanged since last export", label)
	} else {
		printSuccess("Exported %s", label)
	}
	printFile(res.Path)
	printStats(res.Walk, res.Unchanged)
	if res.Walk.Failed > 0 {
		printWarning("%d objects could not be read and were exported as error placeholders", res.Walk.Failed)
	}
	return nil
}

// buildPipelineOptions merges the persisted settings with the flags the
// user set explicitly.
func buildPipelineOptions(cmd *cobra.Command, source string, s settings.Settings, opts exportOpts) (pipeline.Options, error) {
	p := pipeline.FromSettings(source, s)
	changed := cmd.Flags().Changed

	switch {
	case changed("scene"):
		if err := errors.ValidateSceneName(opts.scene); err != nil {
			return p, err
		}
		p.Selection = snapshot.SceneNamed(opts.scene)
	case changed("index"):
		if opts.index < 0 {
			return p, errors.New(errors.ErrCodeInvalidInput, "--index must not be negative")
		}
		p.Selection = snapshot.SceneAt(opts.index)
	}

	if changed("format") {
		p.Format = strings.ToLower(opts.format)
	}
	if changed("no-transform") {
		p.Snapshot.IncludeTransform = !opts.noTransform
	}
	if changed("no-components") {
		p.Snapshot.IncludeComponents = !opts.noComponents
	}
	if changed("no-materials") {
		p.Snapshot.IncludeMaterials = !opts.noMaterials
	}
	if changed("include-inactive") {
		p.Snapshot.IncludeInactiveObjects = opts.includeInactive
	}
	if changed("no-children") {
		p.Snapshot.IncludeChildObjects = !opts.noChildren
	}
	if changed("max-depth") {
		p.Snapshot.MaxDepth = opts.maxDepth
	}
	if changed("output") {
		p.OutDir = opts.output
	}
	if changed("no-timestamp") {
		p.AutoTimestamp = !opts.noTimestamp
	}
	p.Detailed = opts.detailed
	p.Stdout = opts.stdout
	p.Refresh = opts.refresh
	return p, nil
}
