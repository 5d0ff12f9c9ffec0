package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sort"
	"time"

	"github.com/9seconds/iplooker/lookerlib"
	"github.com/hjson/hjson-go"
	"github.com/qri-io/jsonschema"
	"github.com/spf13/afero"
)

const (
	DefaultListen            = "127.0.0.1:8080"
	DefaultRateLimitInterval = 100 * time.Millisecond
	DefaultRateLimitBurst    = 10
)

var configJSONSchema = func() *jsonschema.Schema {
	data := `{
        "type": "object",
        "additionalProperties": false,
        "properties": {
            "listen": {
                "type": "string",
                "minLength": 1
            },
            "endpoint": {
                "type": "string",
                "minLength": 1
            },
            "worker_pool_size": {
                "type": "integer",
                "minimum": 0
            },
            "max_attempts": {
                "type": "integer",
                "minimum": 0
            },
            "rate_limit_burst": {
                "type": "integer",
                "minimum": 0
            },
            "timeout": {"type": "string", "pattern": "^[0-9.]+(ns|us|ms|s|m|h)$"},
            "retry_delay": {"type": "string", "pattern": "^[0-9.]+(ns|us|ms|s|m|h)$"},
            "rate_limit_interval": {"type": "string", "pattern": "^[0-9.]+(ns|us|ms|s|m|h)$"},
            "basic_auth": {
                "type": "object",
                "additionalProperties": false,
                "required": ["user", "password"],
                "properties": {
                    "user": {"type": "string", "minLength": 1},
                    "password": {"type": "string", "minLength": 1}
                }
            },
            "sources": {
                "type": "array",
                "items": {
                    "type": "object",
                    "additionalProperties": false,
                    "required": ["name", "data_path", "fields"],
                    "properties": {
                        "name": {"type": "string", "minLength": 1},
                        "url": {"type": "string", "minLength": 1},
                        "data_path": {"type": "array", "items": {"type": "string", "minLength": 1}},
                        "fields": {
                            "type": "object",
                            "required": ["country", "region", "city", "isp", "org"],
                            "additionalProperties": {"type": "string", "minLength": 1}
                        },
                        "security": {
                            "type": "object",
                            "additionalProperties": false,
                            "properties": {
                                "vpn": {"type": "array", "items": {"type": "string", "minLength": 1}},
                                "proxy": {"type": "array", "items": {"type": "string", "minLength": 1}},
                                "tor": {"type": "array", "items": {"type": "string", "minLength": 1}},
                                "datacenter": {"type": "array", "items": {"type": "string", "minLength": 1}},
                                "anonymous": {"type": "array", "items": {"type": "string", "minLength": 1}},
                                "vpn_service": {"type": "array", "items": {"type": "string", "minLength": 1}}
                            }
                        }
                    }
                }
            }
        }
    }`

	rv := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(data), rv); err != nil {
		panic(err)
	}

	return rv
}()

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type config struct {
	Listen            string         `json:"listen"`
	Endpoint          string         `json:"endpoint"`
	WorkerPoolSize    uint           `json:"worker_pool_size"`
	MaxAttempts       uint           `json:"max_attempts"`
	Timeout           duration       `json:"timeout"`
	RetryDelay        duration       `json:"retry_delay"`
	RateLimitInterval duration       `json:"rate_limit_interval"`
	RateLimitBurst    uint           `json:"rate_limit_burst"`
	BasicAuth         *configAuth    `json:"basic_auth"`
	Sources           []configSource `json:"sources"`
}

func (c config) GetListen() string {
	if c.Listen != "" {
		return c.Listen
	}

	return DefaultListen
}

func (c config) GetWorkerPoolSize() int {
	return int(c.WorkerPoolSize)
}

func (c config) GetRateLimitInterval() time.Duration {
	if c.RateLimitInterval.Duration == 0 {
		return DefaultRateLimitInterval
	}

	return c.RateLimitInterval.Duration
}

func (c config) GetRateLimitBurst() int {
	if c.RateLimitBurst == 0 {
		return DefaultRateLimitBurst
	}

	return int(c.RateLimitBurst)
}

func (c config) GetUpstreamOpts() lookerlib.UpstreamOpts {
	return lookerlib.UpstreamOpts{
		Endpoint:    c.Endpoint,
		Timeout:     c.Timeout.Duration,
		MaxAttempts: int(c.MaxAttempts),
		RetryDelay:  c.RetryDelay.Duration,
	}
}

func (c config) GetSources() []lookerlib.Source {
	if len(c.Sources) == 0 {
		return lookerlib.DefaultSources()
	}

	rv := make([]lookerlib.Source, 0, len(c.Sources))

	for _, v := range c.Sources {
		rv = append(rv, v.ToSource())
	}

	return rv
}

type configAuth struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type configSource struct {
	Name     string                  `json:"name"`
	URL      string                  `json:"url"`
	DataPath []string                `json:"data_path"`
	Fields   map[string]string       `json:"fields"`
	Security *lookerlib.SecuritySpec `json:"security"`
}

// ToSource keeps canonical fields first, extra ones are sorted by
// name.
func (c configSource) ToSource() lookerlib.Source {
	rv := lookerlib.Source{
		Name:     c.Name,
		URL:      c.URL,
		DataPath: c.DataPath,
		Fields:   make([]lookerlib.FieldSpec, 0, len(c.Fields)),
		Security: c.Security,
	}

	seen := map[string]bool{}

	for _, name := range lookerlib.CanonicalFields {
		if key, ok := c.Fields[name]; ok {
			rv.Fields = append(rv.Fields, lookerlib.FieldSpec{Name: name, Key: key})
			seen[name] = true
		}
	}

	extra := []string{}

	for name := range c.Fields {
		if !seen[name] {
			extra = append(extra, name)
		}
	}

	sort.Strings(extra)

	for _, name := range extra {
		rv.Fields = append(rv.Fields, lookerlib.FieldSpec{Name: name, Key: c.Fields[name]})
	}

	return rv
}

func parseConfig(fs afero.Fs, path string) (*config, error) {
	conf := &config{}

	if path == "" {
		return conf, nil
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse hjson: %w", err)
	}

	rawBytes, err := json.Marshal(rawMap)
	if err != nil {
		return nil, fmt.Errorf("cannot convert config to json: %w", err)
	}

	errs, err := configJSONSchema.ValidateBytes(context.Background(), rawBytes)
	if err != nil {
		return nil, fmt.Errorf("cannot validate config: %w", err)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %w", errs[0])
	}

	if err := json.Unmarshal(rawBytes, conf); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}

	if _, _, err := net.SplitHostPort(conf.GetListen()); err != nil {
		return nil, fmt.Errorf("incorrect host:port for listen: %w", err)
	}

	seenSourceNames := map[string]struct{}{}

	for _, v := range conf.Sources {
		if _, ok := seenSourceNames[v.Name]; ok {
			return nil, fmt.Errorf("source %s is duplicated", v.Name)
		}

		seenSourceNames[v.Name] = struct{}{}
	}

	return conf, nil
}
