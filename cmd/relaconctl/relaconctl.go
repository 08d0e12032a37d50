package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fjenner/relacon-go/internal/cli"
	"github.com/fjenner/relacon-go/internal/configpaths"
	"github.com/fjenner/relacon-go/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var c cli.CLI
	ctx := kong.Parse(&c,
		kong.Name("relaconctl"),
		kong.Description("Control USB relay and digital I/O boards"),
		kong.UsageOnError(),
		// Config files load in JSON, YAML, TOML priority order; flags and
		// environment variables override file values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(c.Log.Level, c.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, cl := range closeFiles {
			_ = cl.Close()
		}
	}()

	rawLogger, rawFile := buildRawLogger(&c.Log, logger)
	if rawFile != nil {
		closeFiles = append(closeFiles, rawFile)
	}

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*log.RawLogger)(nil))
	ctx.Bind(&c.Globals)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// buildRawLogger decides where raw report payload traces go: a dedicated
// file when --log.raw-file is set, stdout at trace level, nowhere otherwise.
func buildRawLogger(cfg *cli.LogConfig, logger *slog.Logger) (log.RawLogger, io.Closer) {
	if cfg.RawFile != "" {
		f, err := os.OpenFile(cfg.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cfg.RawFile, "error", err)
			return log.NewRaw(nil), nil
		}
		return log.NewRaw(f), f
	}
	if cfg.Level == "trace" {
		return log.NewRaw(os.Stdout), nil
	}
	return log.NewRaw(nil), nil
}

// findUserConfig pre-scans the arguments for a --config override so the
// file can participate in the same kong.Parse that defined the flag.
func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("RELACONCTL_CONFIG")
}
