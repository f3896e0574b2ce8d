package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxPack/internal/engine"
	"github.com/piwi3910/BoxPack/internal/export"
	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/piwi3910/BoxPack/internal/project"
)

// settingsFlags are the packing flags shared by pack and compare.
type settingsFlags struct {
	width  int
	order  string
	engine string
	boxes  []string
	job    string
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.width, "width", "w", 0, "container width (default from config)")
	cmd.Flags().StringVarP(&f.order, "order", "o", "", "insertion order: descending, ascending, best, genetic")
	cmd.Flags().StringVarP(&f.engine, "engine", "e", "", "placement engine: tree, grid")
	cmd.Flags().StringArrayVarP(&f.boxes, "box", "b", nil, "box as HxW, HxW*N or label:HxW*N (repeatable)")
	cmd.Flags().StringVar(&f.job, "job", "", "load boxes and settings from a saved job file")
}

// resolve builds the settings and box list for a run. Precedence, lowest
// first: built-in defaults, config file, job file, command-line flags.
func (f *settingsFlags) resolve(cmd *cobra.Command, c *CLI, files []string) (model.Job, error) {
	logger := loggerFromContext(cmd.Context())

	cfg, err := c.loadConfig()
	if err != nil {
		return model.Job{}, err
	}

	job := model.NewJob()
	cfg.ApplyToSettings(&job.Settings)

	if f.job != "" {
		loaded, err := project.LoadJob(f.job)
		if err != nil {
			return model.Job{}, err
		}
		job.Name = loaded.Name
		job.Settings = loaded.Settings
		job.Boxes = append(job.Boxes, loaded.Boxes...)
		logger.Debug("loaded job", "file", f.job, "boxes", len(loaded.Boxes))
	}

	if cmd.Flags().Changed("width") {
		job.Settings.Width = f.width
	}
	if cmd.Flags().Changed("order") {
		o, err := model.ParseOrder(f.order)
		if err != nil {
			return model.Job{}, err
		}
		job.Settings.Order = o
	}
	if cmd.Flags().Changed("engine") {
		e, err := model.ParseEngine(f.engine)
		if err != nil {
			return model.Job{}, err
		}
		job.Settings.Engine = e
	}

	boxes, err := collectBoxes(logger, files, f.boxes)
	if err != nil {
		return model.Job{}, err
	}
	job.Boxes = append(job.Boxes, boxes...)

	if len(job.Boxes) == 0 {
		return model.Job{}, fmt.Errorf("%w: pass a file, --box or --job", model.ErrNoBoxes)
	}
	return job, nil
}

type packOpts struct {
	settingsFlags
	pdf       string
	labels    string
	noQR      bool
	dxf       string
	save      string
	name      string
	noPreview bool
	list      bool
}

func (c *CLI) packCommand() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [file...]",
		Short: "Pack boxes into a fixed-width container",
		Long: `Pack reads boxes from CSV, Excel or DXF files and --box flags, places
them into a container of the given width and prints the packed depth.`,
		Example: `  boxpack pack --width 96 --box 48x48*3 --box 36x36
  boxpack pack boxes.csv --order best --pdf layout.pdf
  boxpack pack --job shipment.json --engine grid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd, opts, args)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write the layout as PDF")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write printable box labels as PDF")
	cmd.Flags().BoolVar(&opts.noQR, "no-qr", false, "omit QR codes from labels")
	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "write the layout as DXF")
	cmd.Flags().StringVar(&opts.save, "save", "", "save boxes, settings and result as a job file")
	cmd.Flags().StringVar(&opts.name, "name", "", "job name used with --save")
	cmd.Flags().BoolVar(&opts.noPreview, "no-preview", false, "skip the terminal layout preview")
	cmd.Flags().BoolVar(&opts.list, "list", false, "list every placement")

	return cmd
}

func (c *CLI) runPack(cmd *cobra.Command, opts packOpts, files []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	job, err := opts.resolve(cmd, c, files)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	opt := engine.New(job.Settings)
	opt.Logger = logger
	st := startStage(logger)
	result, err := opt.Pack(job.Boxes)
	if err != nil {
		return err
	}
	st.done("packed", "boxes", len(result.Placements), "depth", result.Depth)

	printSummary(out, result)
	if !opts.noPreview {
		printPreview(out, result)
	}
	if opts.list {
		printPlacements(out, result)
	}
	for _, b := range result.Rejected {
		printWarning(out, "rejected %s: wider than the container (%d)", b, result.Width)
	}

	if err := c.writeOutputs(cmd, opts, result); err != nil {
		return err
	}

	if opts.save != "" {
		if opts.name != "" {
			job.Name = opts.name
		}
		job.Result = &result
		if err := project.SaveJob(opts.save, job); err != nil {
			return err
		}
		printSuccess(out, "Saved job")
		printFile(out, opts.save)
		c.rememberJob(cmd, opts.save)
	}
	return nil
}

// writeOutputs runs every requested export. With no placed boxes there is
// nothing to draw, which is reported but not fatal.
func (c *CLI) writeOutputs(cmd *cobra.Command, opts packOpts, result model.PackResult) error {
	out := cmd.OutOrStdout()

	withQR := !opts.noQR
	if cfg, err := c.loadConfig(); err == nil && !cmd.Flags().Changed("no-qr") {
		withQR = cfg.LabelsWithQR
	}

	exports := []struct {
		path  string
		kind  string
		write func(string) error
	}{
		{opts.pdf, "PDF layout", func(p string) error { return export.ExportPDF(p, result) }},
		{opts.labels, "labels", func(p string) error { return export.ExportLabels(p, result, withQR) }},
		{opts.dxf, "DXF drawing", func(p string) error { return export.ExportDXF(p, result) }},
	}

	for _, e := range exports {
		if e.path == "" {
			continue
		}
		err := e.write(e.path)
		if errors.Is(err, export.ErrNothingToExport) {
			printWarning(out, "skipped %s: no boxes were placed", e.kind)
			continue
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", e.kind, err)
		}
		printSuccess(out, "Wrote %s", e.kind)
		printFile(out, e.path)
	}
	return nil
}

// rememberJob records path in the config's recent list. Failures are
// logged only, since the job itself was saved.
func (c *CLI) rememberJob(cmd *cobra.Command, path string) {
	logger := loggerFromContext(cmd.Context())

	cfg, err := c.loadConfig()
	if err != nil {
		logger.Warn("could not read config", "err", err)
		return
	}
	cfg.AddRecentJob(path, maxRecentJobs)
	if err := project.SaveAppConfig(c.resolvedConfigPath(), cfg); err != nil {
		logger.Warn("could not update recent jobs", "err", err)
	}
}
