package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatJS   = "js"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a settings file. The format follows the file extension: .yaml
// and .yml are YAML, .js is the "var settings = {...};" script form, and
// anything else is JSON.
func Load(path string) (GameCommandConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameCommandConfig{}, &LoadError{Path: path, Reason: "cannot read file", Err: err}
	}

	cfg, err := Parse(data, FormatForPath(path))
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return GameCommandConfig{}, err
	}

	log.WithFields(log.Fields{
		"path":    path,
		"command": cfg.Command(),
		"cost":    cfg.Cost(),
	}).Debug("Loaded command settings")

	return cfg, nil
}

// LoadOrDefault loads path and falls back to Defaults when it cannot. The
// returned error is the reason for the fallback, or nil. An empty path
// selects the defaults without error.
func LoadOrDefault(path string) (GameCommandConfig, error) {
	if path == "" {
		return Defaults(), nil
	}

	cfg, err := Load(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("Default settings are being used")
		return Defaults(), err
	}
	return cfg, nil
}

// FormatForPath picks the decoder for a file name.
func FormatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".js":
		return FormatJS
	default:
		return FormatJSON
	}
}

// Parse decodes and validates a settings document.
func Parse(data []byte, format string) (GameCommandConfig, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	raw := make(map[string]any)
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return GameCommandConfig{}, &LoadError{Reason: "malformed YAML", Err: err}
		}
	case FormatJS:
		start, end := bytes.IndexByte(data, '{'), bytes.LastIndexByte(data, '}')
		if start < 0 || end < start {
			return GameCommandConfig{}, &LoadError{Reason: "no settings object found", Err: ErrInvalidSettings}
		}
		if err := decodeJSON(data[start:end+1], &raw); err != nil {
			return GameCommandConfig{}, &LoadError{Reason: "malformed settings object", Err: err}
		}
	default:
		if err := decodeJSON(data, &raw); err != nil {
			return GameCommandConfig{}, &LoadError{Reason: "malformed JSON", Err: err}
		}
	}

	v, err := valuesFromMap(raw)
	if err != nil {
		return GameCommandConfig{}, err
	}
	return New(v)
}

// Marshal encodes a table as JSON or YAML.
func Marshal(cfg GameCommandConfig, format string) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg.Values())
	case FormatJSON:
		return json.MarshalIndent(cfg.Values(), "", "  ")
	default:
		return nil, fmt.Errorf("unsupported settings format %q", format)
	}
}

func decodeJSON(data []byte, out *map[string]any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after the settings object")
	}
	return nil
}

func valuesFromMap(raw map[string]any) (Values, error) {
	var v Values
	var err error

	strField := func(key string, dst *string) {
		if err != nil {
			return
		}
		val, ok := raw[key]
		if !ok {
			err = invalid(key, "is missing")
			return
		}
		s, ok := val.(string)
		if !ok {
			err = invalid(key, fmt.Sprintf("must be text, got %v", val))
			return
		}
		*dst = s
	}
	intField := func(key string, dst *int64) {
		if err != nil {
			return
		}
		val, ok := raw[key]
		if !ok {
			err = invalid(key, "is missing")
			return
		}
		n, ok := toInt(val)
		if !ok {
			err = invalid(key, fmt.Sprintf("must be a number, got %v", val))
			return
		}
		*dst = n
	}

	strField("command", &v.Command)
	strField("currencyName", &v.CurrencyName)
	intField("cost", &v.Cost)
	intField("userCooldown", &v.UserCooldown)
	strField("msgBase", &v.MsgBase)
	strField("msgUserCooldown", &v.MsgUserCooldown)
	strField("msgInvalidBet", &v.MsgInvalidBet)
	strField("msgNotEnough", &v.MsgNotEnough)
	strField("msgLoss", &v.MsgLoss)
	strField("msgJackpot", &v.MsgJackpot)
	strField("msg2to1", &v.Msg2to1)
	strField("msg1to1", &v.Msg1to1)

	return v, err
}

// toInt accepts whole numbers given as numbers or as numeric text.
func toInt(val any) (int64, bool) {
	switch n := val.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return wholeFloat(f)
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		return wholeFloat(n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func wholeFloat(f float64) (int64, bool) {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
