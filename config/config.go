package config

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/toolkits/pkg/file"

	"flashcat.cloud/nfsmon/pkg/cfg"
)

const Version = "0.1.0"

var envVarEscaper = strings.NewReplacer(
	`"`, `\"`,
	`\`, `\\`,
)

type Global struct {
	PrintConfigs bool              `toml:"print_configs"`
	Hostname        string            `toml:"hostname"`
	HostnameRefresh Duration          `toml:"hostname_refresh"`
	OmitHostname    bool              `toml:"omit_hostname"`
	Labels          map[string]string `toml:"labels"`
	Precision       string            `toml:"precision"`
	Interval        Duration          `toml:"interval"`
}

type Log struct {
	FileName   string `toml:"file_name"`
	MaxSize    int    `toml:"max_size"`
	MaxAge     int    `toml:"max_age"`
	MaxBackups int    `toml:"max_backups"`
	LocalTime  bool   `toml:"local_time"`
	Compress   bool   `toml:"compress"`
}

type WriterOpt struct {
	Batch    int `toml:"batch"`
	ChanSize int `toml:"chan_size"`
}

type WriterOption struct {
	Url           string   `toml:"url"`
	BasicAuthUser string   `toml:"basic_auth_user"`
	BasicAuthPass string   `toml:"basic_auth_pass"`
	Headers       []string `toml:"headers"`

	Timeout             int64 `toml:"timeout"`
	DialTimeout         int64 `toml:"dial_timeout"`
	MaxIdleConnsPerHost int   `toml:"max_idle_conns_per_host"`
}

type HTTP struct {
	Enable       bool   `toml:"enable"`
	Address      string `toml:"address"`
	PrintAccess  bool   `toml:"print_access"`
	RunMode      string `toml:"run_mode"`
	ReadTimeout  int    `toml:"read_timeout"`
	WriteTimeout int    `toml:"write_timeout"`
	IdleTimeout  int    `toml:"idle_timeout"`
}

type ConfigType struct {
	// from console args
	ConfigDir    string
	DebugMode    bool
	TestMode     bool
	InputFilters string

	// from config.toml
	Global    Global         `toml:"global"`
	WriterOpt WriterOpt      `toml:"writer_opt"`
	Writers   []WriterOption `toml:"writers"`
	HTTP      *HTTP          `toml:"http"`
	Log       Log            `toml:"log"`
}

var Config *ConfigType

func InitConfig(configDir string, debugMode, testMode bool, interval int64, inputFilters string) error {
	configFile := path.Join(configDir, "config.toml")
	if !file.IsExist(configFile) {
		return fmt.Errorf("configuration file(%s) not found", configFile)
	}

	c := &ConfigType{
		ConfigDir:    configDir,
		DebugMode:    debugMode,
		TestMode:     testMode,
		InputFilters: inputFilters,
	}

	if err := cfg.LoadConfig(configFile, c); err != nil {
		return fmt.Errorf("failed to load config file: %s err:%s", configFile, err)
	}

	if interval > 0 {
		c.Global.Interval = Duration(time.Duration(interval) * time.Second)
	}

	c.applyDefaults()
	Config = c

	if err := InitHostname(time.Duration(c.Global.HostnameRefresh)); err != nil {
		return err
	}

	if c.Global.PrintConfigs {
		json := jsoniter.ConfigCompatibleWithStandardLibrary
		bs, err := json.MarshalIndent(c, "", "    ")
		if err != nil {
			fmt.Println(err)
		} else {
			fmt.Println(string(bs))
		}
	}

	return nil
}

func (c *ConfigType) applyDefaults() {
	if c.Global.Precision == "" {
		c.Global.Precision = "ms"
	}

	if c.WriterOpt.ChanSize <= 0 {
		c.WriterOpt.ChanSize = 1000000
	}

	if c.WriterOpt.Batch <= 0 {
		c.WriterOpt.Batch = 1000
	}

	c.Global.Hostname = strings.TrimSpace(c.Global.Hostname)

	// test mode prints samples, keep logs next to them
	if c.TestMode {
		c.Log.FileName = "stdout"
	}
}

func (c *ConfigType) GetHostname() string {
	name := ""
	if Hostname != nil {
		name = Hostname.Get()
	}

	ret := c.Global.Hostname
	if ret == "" {
		return name
	}

	ret = strings.Replace(ret, "$hostname", name, -1)
	return os.Expand(ret, GetEnv)
}

func GetEnv(key string) string {
	return envVarEscaper.Replace(os.Getenv(key))
}

func GetInterval() time.Duration {
	if Config == nil || Config.Global.Interval <= 0 {
		return time.Second * 15
	}

	return time.Duration(Config.Global.Interval)
}
