// Command mrkconvert converts and concatenates markup files into a single
// fiducial markup document, with optional GeoJSON output and a conversion
// catalog.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/slic3r-display/converter/internal/catalog"
	"github.com/slic3r-display/converter/internal/config"
	"github.com/slic3r-display/converter/internal/convert"
	"github.com/slic3r-display/converter/internal/logging"
	"github.com/slic3r-display/converter/internal/represent"
)

var (
	Version   = "0.0.1"
	BuildDate = "unknown"

	ToolName = "mrkconvert"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configDir  = flag.String("config", ".", "directory containing "+config.ConfigName)
		outputPath = flag.String("o", "", "output file path; stdout when empty")
		swap       = flag.Bool("swap", false, "negate x and y of every point (RAS/LPS)")
		geoJSON    = flag.Bool("geojson", false, "also emit a GeoJSON MultiPoint sidecar")
		version    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Printf("%s %s (built %s)\n", ToolName, Version, BuildDate)
		return 0
	}

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", ToolName, err)
		return 1
	}

	logManager := logging.NewManager()
	logFile := openLogFile()
	if logFile != nil {
		defer logFile.Close()
		logManager.Setup(logFile, config.GetString("logLevel"))
	} else {
		logManager.Setup(nil, config.GetString("logLevel"))
	}
	log := logManager.Logger()

	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file...\n", ToolName)
		flag.PrintDefaults()
		return 2
	}

	doSwap := *swap || config.GetBool("convert.swapCoordinates")
	outPath := resolveOutputPath(*outputPath)

	var cat *catalog.Manager
	if config.GetBool("catalog.enabled") {
		cat = catalog.NewManager(zerolog.New(os.Stderr).With().Timestamp().Logger())
		if err := cat.Connect(); err != nil {
			log.Error("Catalog unavailable, continuing without it", "error", err)
			cat = nil
		} else if err := cat.Setup(); err != nil {
			log.Error("Catalog setup failed, continuing without it", "error", err)
			cat = nil
		} else {
			defer cat.Close()
		}
	}

	runID := catalog.NewRunID()

	// Convert each input on its own so per-file results can be cataloged,
	// then concatenate the converted sets.
	sets := make([]represent.Representable, 0, len(inputs))
	for _, path := range inputs {
		ps, err := convert.ConvertFile(path, doSwap)
		if err != nil {
			log.Error("Failed to convert input", "path", path, "error", err)
			return 1
		}
		log.Info("Converted input", "path", path, "points", len(ps.Points))
		sets = append(sets, ps)

		if cat != nil {
			recordConversion(cat, log, runID, path, doSwap, outPath, ps)
		}
	}

	result, err := convert.Concatenate(sets...)
	if err != nil {
		log.Error("Failed to concatenate inputs", "error", err)
		return 1
	}

	// Write failures are reported but do not abort the remaining outputs.
	rc := 0
	if err := emit(result, outPath); err != nil {
		log.Error("Failed to write output", "path", outPath, "error", err)
		rc = 1
	}

	if *geoJSON {
		if err := emitGeoJSON(result, outPath); err != nil {
			log.Error("Failed to write GeoJSON output", "error", err)
			rc = 1
		}
	}

	log.Info("Done", "inputs", len(inputs), "points", len(result.Points), "runId", runID)
	return rc
}

// openLogFile creates the session log file under the configured logs dir.
// Returns nil when the file cannot be created; logging falls back to stderr.
func openLogFile() *os.File {
	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil
	}
	path := logging.LogFilePath(logsDir, ToolName, time.Now())
	f, err := os.Create(path)
	if err != nil {
		return nil
	}
	return f
}

// emit writes the result document to path, or to stdout when path is empty.
// A .gz suffix or the output.compress setting selects gzip output.
func emit(ps *represent.PointSet, path string) error {
	if path == "" {
		return represent.Print(ps, os.Stdout)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	compress := strings.HasSuffix(path, ".gz") || config.GetBool("output.compress")
	if !compress {
		return represent.Write(ps, path)
	}

	if !strings.HasSuffix(path, ".gz") {
		path += ".gz"
	}
	return represent.WriteGzip(ps, path)
}

// resolveOutputPath places a relative output path under the configured
// output directory. Absolute paths and stdout (the empty path) pass through.
func resolveOutputPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(config.GetString("output.dir"), path)
}

// emitGeoJSON writes a MultiPoint sidecar next to the output file, or to
// stdout when no output path was given.
func emitGeoJSON(ps *represent.PointSet, outputPath string) error {
	data, err := convert.GeoJSON(ps)
	if err != nil {
		return err
	}
	if outputPath == "" {
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}
	side := strings.TrimSuffix(outputPath, ".gz") + ".geojson"
	return os.WriteFile(side, data, 0644)
}

func recordConversion(cat *catalog.Manager, log *slog.Logger, runID, path string, swapped bool, outputPath string, ps *represent.PointSet) {
	markupType, err := detectType(path)
	if err != nil {
		markupType = "Unknown"
	}

	points := make([][]float64, 0, len(ps.Points))
	for _, p := range ps.Points {
		points = append(points, []float64{p.X, p.Y, p.Z})
	}
	encoded, err := catalog.EncodePoints(points)
	if err != nil {
		log.Error("Failed to encode points for catalog", "path", path, "error", err)
		return
	}

	rec := &catalog.ConversionRecord{
		RunID:      runID,
		SourcePath: path,
		MarkupType: markupType,
		PointCount: len(ps.Points),
		Swapped:    swapped,
		OutputPath: outputPath,
		Points:     encoded,
	}
	if err := cat.Record(rec); err != nil {
		log.Error("Failed to record conversion", "path", path, "error", err)
	}
}

func detectType(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	kind, err := convert.DetectKind(content)
	if err != nil {
		return "", err
	}
	return kind.TypeName(), nil
}
