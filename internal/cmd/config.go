package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/padcan/padcan/gamepad"
	"github.com/padcan/padcan/internal/configpaths"

	"github.com/iancoleman/strcase"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init    ConfigInit    `cmd:"" help:"Generate a configuration template for a command"`
	Mapping ConfigMapping `cmd:"" help:"Write the built-in gamepad mapping to a file"`
}

// ConfigInit scaffolds a configuration file for a specific command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"drive,send,monitor,events"`
	Format  string `help:"Output format" enum:"json,yaml,yml,toml" default:"yaml"`
	Output  string `help:"Destination file path (defaults to <command>.<format> in the current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run generates the template from the command struct's kong tags.
func (c *ConfigInit) Run() error {
	format := configpaths.NormalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	t, ok := commandTypes[c.Command]
	if !ok {
		return fmt.Errorf("unknown command %q", c.Command)
	}
	root := buildMapFromStruct(t)

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
	return writeConfigFile(c.Output, c.Command, format, data, c.Force)
}

// ConfigMapping writes gamepad.DefaultMapping as a starting point for
// --mapping files.
type ConfigMapping struct {
	Format string `help:"Output format" enum:"json,yaml,yml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to mapping.<format> in the current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (c *ConfigMapping) Run() error {
	format := configpaths.NormalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	data, err := gamepad.DefaultMapping().Marshal(format)
	if err != nil {
		return err
	}
	return writeConfigFile(c.Output, "mapping", format, data, c.Force)
}

var commandTypes = map[string]reflect.Type{
	"drive":   reflect.TypeOf(Drive{}),
	"send":    reflect.TypeOf(Send{}),
	"monitor": reflect.TypeOf(Monitor{}),
	"events":  reflect.TypeOf(Events{}),
}

func writeConfigFile(dest, base, format string, data []byte, force bool) error {
	if dest == "" {
		dest = base + "." + configpaths.Ext(format)
	}
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

// flagName converts a Go field name to the kebab-case flag kong derives
// from it (MotorID -> motor-id).
func flagName(field string) string {
	return strcase.ToKebab(field)
}

func buildMapFromStruct(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if _, ok := f.Tag.Lookup("embed"); ok {
			sub := buildMapFromStruct(f.Type)
			if name := strings.TrimSuffix(f.Tag.Get("prefix"), "."); name != "" {
				out[name] = sub
			} else {
				for k, v := range sub {
					out[k] = v
				}
			}
			continue
		}

		key := f.Tag.Get("name")
		if key == "" {
			key = flagName(f.Name)
		}
		if val := defaultValueForField(f.Type, f.Tag.Get("default")); val != nil {
			out[key] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == reflect.TypeOf(time.Duration(0)) {
		if def != "" {
			return def
		}
		return "0s"
	}
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 10, 64)
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 10, 64)
		return n
	case reflect.Float32, reflect.Float64:
		f, _ := strconv.ParseFloat(def, 64)
		return f
	case reflect.Struct:
		return buildMapFromStruct(t)
	default:
		return nil
	}
}
