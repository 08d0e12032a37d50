package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/fjenner/relacon-go/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file covering the shared flags.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output string `help:"Destination file path (defaults to current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run writes a configuration template derived from the shared flag structs,
// so the template never drifts from the flags it mirrors.
func (c *ConfigInit) Run() error {
	format, ok := formatExt(c.Format)
	if !ok {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root := configTemplate(reflect.TypeOf(Globals{}))

	dest := c.Output
	if dest == "" {
		dest = "relaconctl." + format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(root, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(root)
	case "toml":
		data, err = toml.Marshal(root)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

// formatExt maps an accepted format name to its canonical file extension.
func formatExt(format string) (string, bool) {
	switch strings.ToLower(format) {
	case "json":
		return "json", true
	case "yaml", "yml":
		return "yaml", true
	case "toml":
		return "toml", true
	}
	return "", false
}

// configTemplate builds a map mirroring a kong flag struct: embedded groups
// nest under their prefix (or merge into the parent without one), every
// other exported field becomes a key carrying its default value.
func configTemplate(t reflect.Type) map[string]any {
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if _, embedded := f.Tag.Lookup("embed"); embedded {
			section := configTemplate(f.Type)
			if name := strings.TrimSuffix(f.Tag.Get("prefix"), "."); name != "" {
				out[name] = section
			} else {
				maps.Copy(out, section)
			}
			continue
		}
		out[configKey(f.Name)] = fieldDefault(f)
	}
	return out
}

// fieldDefault renders a field's kong default tag in the shape the config
// loaders expect back.
func fieldDefault(f reflect.StructField) any {
	def := f.Tag.Get("default")
	switch f.Type.Kind() {
	case reflect.Bool:
		v, _ := strconv.ParseBool(def)
		return v
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v, err := strconv.ParseInt(def, 10, 64); err == nil {
			return v
		}
		// Typed defaults such as durations keep their string form.
		return def
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, _ := strconv.ParseUint(def, 10, 64)
		return v
	case reflect.Struct:
		return configTemplate(f.Type)
	default:
		return def
	}
}

// configKey lowercases the leading rune of a field name, matching how kong
// derives configuration keys.
func configKey(name string) string {
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
