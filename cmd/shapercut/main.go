// ShaperCut: toolpath preview and export for the Shaper Origin.
//
// Reads a DXF drawing or a saved job, assigns cut data from a CSV or Excel
// sheet, computes the region every bit pass removes and writes the result
// as Shaper-ready SVG, a preview SVG, JSON, a PDF sheet, labels or an Excel
// report.
//
// Build:
//
//	go build -o shapercut ./cmd/shapercut
//
// Examples:
//
//	shapercut -in panel.dxf -units mm -bit "6 mm" -svg panel.svg
//	shapercut -in panel.dxf -assign cuts.csv -pdf panel.pdf -report panel.xlsx
//	shapercut -in logo.dxf -width "300 mm" -bit "6mm Straight" -preview logo.svg
//	shapercut -eval "(1/4) in + 3 mm"
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/engine"
	"github.com/piwi3910/ShaperCut/internal/export"
	"github.com/piwi3910/ShaperCut/internal/expr"
	"github.com/piwi3910/ShaperCut/internal/importer"
	"github.com/piwi3910/ShaperCut/internal/model"
	"github.com/piwi3910/ShaperCut/internal/project"
	"github.com/piwi3910/ShaperCut/internal/toolpath"
)

type options struct {
	in, assign, config      string
	units, bit, depth, cut  string
	svg, preview, json, pdf string
	labels, report, save    string
	width, height           string
	backup, restore, bits   string
	eval                    string
	compare, verbose        bool
}

const recentJobLimit = 10

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "shapercut:", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("shapercut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.in, "in", "", "drawing (.dxf) or saved job (.json) to plan")
	fs.StringVar(&o.assign, "assign", "", "CSV or Excel sheet assigning cut data to paths")
	fs.StringVar(&o.config, "config", project.DefaultConfigPath(), "application config file")
	fs.StringVar(&o.units, "units", "", "unit of drawing coordinates (in or mm)")
	fs.StringVar(&o.bit, "bit", "", "bit diameter, or inventory bit name, for paths without one")
	fs.StringVar(&o.depth, "depth", "", "cut depth for paths without one")
	fs.StringVar(&o.cut, "type", "", "cut type for paths without one")
	fs.StringVar(&o.width, "width", "", "real width of the drawing; outlines are scaled to match")
	fs.StringVar(&o.height, "height", "", "real height of the drawing, used when -width is not given")
	fs.StringVar(&o.svg, "svg", "", "write Shaper SVG")
	fs.StringVar(&o.preview, "preview", "", "write preview SVG with cut regions")
	fs.StringVar(&o.json, "json", "", "write computed paths as JSON")
	fs.StringVar(&o.pdf, "pdf", "", "write PDF preview and summary")
	fs.StringVar(&o.labels, "labels", "", "write PDF labels for cut paths")
	fs.StringVar(&o.report, "report", "", "write Excel report")
	fs.StringVar(&o.save, "save", "", "save the job with its cut data")
	fs.StringVar(&o.backup, "backup", "", "write config, inventory and saved jobs to a backup file and exit")
	fs.StringVar(&o.restore, "restore", "", "restore a backup file and exit")
	fs.StringVar(&o.bits, "import-bits", "", "merge bit profiles from a JSON inventory file and exit")
	fs.StringVar(&o.eval, "eval", "", "evaluate a dimension expression and exit")
	fs.BoolVar(&o.compare, "compare", false, "compare the bits in the inventory")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	toolpath.SetLogger(logger)

	if o.eval != "" {
		return evaluate(stdout, o.eval, o.units)
	}

	config, err := project.LoadAppConfig(o.config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if o.backup != "" || o.restore != "" || o.bits != "" {
		return manageData(o, config, logger)
	}
	if o.in == "" {
		return errors.New("no input given, use -in")
	}
	if o.bit != "" {
		if o.bit, err = resolveBit(o.bit, project.DefaultInventoryPath()); err != nil {
			return err
		}
	}
	if err := applyOverrides(&config, o); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	job, err := loadJob(o.in, config.DefaultUnits, logger)
	if err != nil {
		return err
	}
	if o.assign != "" {
		if err := assign(&job, o.assign, logger); err != nil {
			return err
		}
	}
	if err := fitFrame(&job, o.width, o.height, logger); err != nil {
		return err
	}

	if o.compare {
		inv, err := project.LoadInventory(project.DefaultInventoryPath())
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		return printComparison(stdout, engine.CompareBits(config, job, inv.Bits))
	}

	plan := engine.New(config).Plan(job)
	for _, s := range plan.Skipped {
		logger.Warn("path skipped", "id", s.Node.ID, "name", s.Node.Name, "reason", s.Reason)
	}
	printSummary(stdout, plan)

	outputs := []struct {
		path  string
		write func(io.Writer, engine.Plan) error
	}{
		{o.svg, export.WriteSVG},
		{o.preview, export.WritePreviewSVG},
		{o.json, export.WriteJSON},
		{o.pdf, export.WritePDF},
		{o.labels, export.WriteLabels},
		{o.report, export.WriteReport},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := writeFile(out.path, plan, out.write); err != nil {
			return err
		}
		logger.Info("written", "path", out.path)
	}

	if o.save != "" {
		if err := project.SaveJob(o.save, job); err != nil {
			return err
		}
		// Reload so the overrides of this run stay out of the config file
		if err := rememberJob(o.config, o.save); err != nil {
			logger.Warn("failed to update recent jobs", "error", err)
		}
	}
	return nil
}

func rememberJob(configPath, jobPath string) error {
	config, err := project.LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	config.AddRecentJob(jobPath, recentJobLimit)
	return project.SaveAppConfig(configPath, config)
}

// evaluate prints the value of input, converted to units when given.
func evaluate(w io.Writer, input, units string) error {
	d, err := expr.Evaluate(input)
	if err != nil {
		return err
	}
	if units != "" {
		u, err := dimension.AssertRealUnit(units)
		if err != nil {
			return fmt.Errorf("-units: %w", err)
		}
		d = dimension.Convert(d, u)
	}
	if !d.IsReal() {
		_, err = fmt.Fprintln(w, d)
		return err
	}
	s, err := dimension.Format(d)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// manageData writes or restores a backup of everything kept under the
// config directory, or merges bits into the inventory.
func manageData(o options, config model.AppConfig, logger *slog.Logger) error {
	if o.bits != "" {
		path := project.DefaultInventoryPath()
		inv, err := project.LoadInventory(path)
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		merged, err := project.ImportInventory(o.bits, inv)
		if err != nil {
			return err
		}
		if err := project.SaveInventory(path, merged); err != nil {
			return err
		}
		logger.Info("bits imported", "path", o.bits, "added", len(merged.Bits)-len(inv.Bits))
	}
	if o.backup != "" {
		inv, err := project.LoadInventory(project.DefaultInventoryPath())
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		if err := project.ExportAllData(o.backup, config, inv, project.DefaultJobsDir()); err != nil {
			return err
		}
		logger.Info("backup written", "path", o.backup)
	}
	if o.restore != "" {
		backup, err := project.ImportAllData(o.restore)
		if err != nil {
			return err
		}
		if err := project.RestoreAllData(backup, o.config, project.DefaultInventoryPath(), project.DefaultJobsDir()); err != nil {
			return err
		}
		logger.Info("backup restored", "path", o.restore, "jobs", len(backup.Jobs))
	}
	return nil
}

// applyOverrides replaces the config defaults with the values given on the
// command line. Dimensions are entered in the drawing's units unless they
// name one.
func applyOverrides(config *model.AppConfig, o options) error {
	if o.units != "" {
		u, err := dimension.AssertRealUnit(o.units)
		if err != nil {
			return fmt.Errorf("-units: %w", err)
		}
		config.DefaultUnits = u
	}
	var update model.PathDataUpdate
	if o.bit != "" {
		s, ok := expr.ValidateDimensionInput(o.bit, true, config.DefaultUnits)
		if !ok || s == "" {
			return fmt.Errorf("-bit: %q is not a dimension", o.bit)
		}
		update.BitDiameter = (*string)(&s)
	}
	if o.depth != "" {
		s, ok := expr.ValidateDimensionInput(o.depth, true, config.DefaultUnits)
		if !ok || s == "" {
			return fmt.Errorf("-depth: %q is not a dimension", o.depth)
		}
		update.CutDepth = (*string)(&s)
	}
	if o.cut != "" {
		c := strings.ToLower(o.cut)
		update.CutType = &c
	}

	defaults := dimension.MapStore{}
	config.Defaults().Save(defaults)
	if err := model.ApplyPathData(defaults, update); err != nil {
		return fmt.Errorf("invalid override: %w", err)
	}
	data, errs := model.LoadPathData(defaults)
	if len(errs) > 0 {
		return fmt.Errorf("config defaults: %w", errs[0])
	}
	config.SetDefaults(data)
	return nil
}

// resolveBit returns text unchanged when it reads as a dimension, and the
// diameter of the inventory bit named text otherwise.
func resolveBit(text, inventoryPath string) (string, error) {
	if _, ok := expr.ParseDimensionInput(text, true, dimension.Millimeter); ok {
		return text, nil
	}
	inv, err := project.LoadInventory(inventoryPath)
	if err != nil {
		return "", fmt.Errorf("failed to load inventory: %w", err)
	}
	if b := inv.FindBitByName(text); b != nil {
		return string(b.Diameter), nil
	}
	return "", fmt.Errorf("-bit: %q is not a dimension or one of %s", text, strings.Join(inv.BitNames(), ", "))
}

// fitFrame scales the job so its frame has the given real width, or the
// width that gives it the given height.
func fitFrame(job *model.Job, width, height string, logger *slog.Logger) error {
	if width == "" && height == "" {
		return nil
	}
	if job.Frame.PixelWidth <= 0 || job.Frame.PixelHeight <= 0 {
		if !job.FrameToBounds() {
			return errors.New("cannot size a drawing without geometry")
		}
	}
	if width != "" {
		d, ok := expr.ParseDimensionInput(width, true, job.Units)
		if !ok {
			return fmt.Errorf("-width: %q is not a dimension", width)
		}
		return setFrameWidth(job, d, logger)
	}
	h, ok := expr.ParseDimensionInput(height, true, job.Units)
	if !ok {
		return fmt.Errorf("-height: %q is not a dimension", height)
	}
	w, err := job.Frame.WidthFromHeight(h)
	if err != nil {
		return fmt.Errorf("-height: %w", err)
	}
	return setFrameWidth(job, w, logger)
}

func setFrameWidth(job *model.Job, w dimension.Dimension, logger *slog.Logger) error {
	s, err := dimension.Format(w)
	if err != nil {
		return err
	}
	job.Frame.Data.Width = s
	factor, err := job.ScaleToFrame()
	if err != nil {
		return err
	}
	logger.Debug("drawing scaled", "width", s, "factor", factor)
	return nil
}

func loadJob(path string, units dimension.Unit, logger *slog.Logger) (model.Job, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		job, problems, err := project.LoadJob(path)
		if err != nil {
			return model.Job{}, err
		}
		for _, p := range problems {
			logger.Warn("invalid value dropped", "file", path, "error", p)
		}
		return job, nil
	case ".dxf":
		res := importer.ImportDXF(path)
		for _, w := range res.Warnings {
			logger.Warn(w, "file", path)
		}
		if len(res.Errors) > 0 {
			return model.Job{}, fmt.Errorf("failed to import %s: %s", path, strings.Join(res.Errors, "; "))
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		job := model.NewJob(name, units)
		job.Nodes = res.Nodes
		job.Frame.Name = name
		job.FrameToBounds()
		logger.Debug("drawing imported", "file", path, "nodes", len(res.Nodes))
		return job, nil
	}
	return model.Job{}, fmt.Errorf("unsupported input %s, expected .dxf or .json", path)
}

func assign(job *model.Job, path string, logger *slog.Logger) error {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		res = importer.ImportCSV(path, job.Units)
	case ".xlsx", ".xlsm":
		res = importer.ImportExcel(path, job.Units)
	default:
		return fmt.Errorf("unsupported assignment sheet %s, expected .csv or .xlsx", path)
	}
	for _, w := range res.Warnings {
		logger.Warn(w, "file", path)
	}
	for _, e := range res.Errors {
		logger.Error(e, "file", path)
	}
	if len(res.Assignments) == 0 && len(res.Errors) > 0 {
		return fmt.Errorf("no assignments read from %s", path)
	}
	changed, warnings := importer.ApplyAssignments(job, res.Assignments)
	for _, w := range warnings {
		logger.Warn(w, "file", path)
	}
	logger.Info("cut data assigned", "file", path, "paths", changed)
	return nil
}

func writeFile(path string, plan engine.Plan, write func(io.Writer, engine.Plan) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f, plan); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printSummary(w io.Writer, plan engine.Plan) {
	s := plan.Summary()
	units := string(plan.Job.Units)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Job\t%s\n", plan.Job.Name)
	if w, ok := plan.Job.Frame.Width(); ok {
		if h, err := plan.Job.Frame.Height(); err == nil {
			fmt.Fprintf(tw, "Frame\t%s x %s\n", formatDimension(w), formatDimension(h))
		}
	}
	fmt.Fprintf(tw, "Paths\t%d\n", s.Paths)
	for _, c := range model.CutTypes() {
		if n := s.ByCutType[c]; n > 0 {
			fmt.Fprintf(tw, "  %s\t%d\n", c, n)
		}
	}
	fmt.Fprintf(tw, "Skipped\t%d\n", s.Skipped)
	if s.Collapsed > 0 {
		fmt.Fprintf(tw, "Collapsed\t%d\n", s.Collapsed)
	}
	fmt.Fprintf(tw, "Cut length\t%.2f %s\n", s.CutLength, units)
	fmt.Fprintf(tw, "Removed area\t%.2f %s²\n", s.RemovedArea, units)
	tw.Flush()
}

func formatDimension(d dimension.Dimension) string {
	s, err := dimension.Format(d)
	if err != nil {
		return d.String()
	}
	return string(s)
}

func printComparison(w io.Writer, results []engine.BitComparison) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Bit\tDiameter\tPaths\tCollapsed\tCut length\tRemoved area")
	for _, r := range results {
		diameter := string(r.Bit.Diameter)
		if d, err := r.Bit.DiameterIn(r.Plan.Job.Units); err == nil {
			diameter = fmt.Sprintf("%.3f %s", d, r.Plan.Job.Units)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f\t%.2f\n",
			r.Bit.Name, diameter, r.Summary.Paths, r.Summary.Collapsed,
			r.Summary.CutLength, r.Summary.RemovedArea)
	}
	return tw.Flush()
}
