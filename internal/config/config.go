package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// FileName is the name of the config file looked up in the config directory.
const FileName = "magcot.cfg.json"

// MemoryConfig holds settings for the JSON file archive backend
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds settings for the sqlite archive backend.
// An empty Path keeps the database in memory.
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// DBConfig holds postgres connection settings
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// ArchiveConfig selects and configures the snapshot archive backend
type ArchiveConfig struct {
	Type     string       `json:"type" mapstructure:"type"`
	Memory   MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite   SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
	Postgres DBConfig     `json:"-" mapstructure:"-"`
}

// MarkupConfig holds the markup rendering settings.
type MarkupConfig struct {
	PointZ       int
	PatchZ       int
	ElementStep  int
	OrdinalStyle string
	ColorSeries  []string
	ColorSeed    uint64
	Coloring     string
}

// StatementConfig holds the statement template and ordering.
type StatementConfig struct {
	Prefixes  []string
	Signature string
	Sign      string
	New       bool
	Semicolon bool
	Order     string
}

// PageConfig holds the preview page settings.
type PageConfig struct {
	Lang  string
	Embed bool
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "")

	viper.SetDefault("ordinalStyle", "qianziwen")
	viper.SetDefault("colorSeries", []string{})
	viper.SetDefault("colorSeed", 1)
	viper.SetDefault("coloring", "groupwise")

	viper.SetDefault("zIndex.point", 300)
	viper.SetDefault("zIndex.patch", 100)
	viper.SetDefault("zIndex.step", 10)

	viper.SetDefault("statement.prefixes", []string{"private", "static", "final"})
	viper.SetDefault("statement.signature", "before")
	viper.SetDefault("statement.sign", "=")
	viper.SetDefault("statement.new", true)
	viper.SetDefault("statement.semicolon", true)
	viper.SetDefault("statement.order", "class")

	viper.SetDefault("page.lang", "zh_cn")
	viper.SetDefault("page.embed", true)

	viper.SetDefault("archive.type", "memory")
	viper.SetDefault("archive.memory.outputDir", "./snapshots")
	viper.SetDefault("archive.memory.compressOutput", false)
	viper.SetDefault("archive.sqlite.path", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "magcot")

	viper.SetDefault("namespaces", map[string]string{})
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// LoadOrDefault behaves like Load but keeps the defaults when the directory
// holds no config file. It reports whether a file was read.
func LoadOrDefault(configDir string) (bool, error) {
	err := Load(configDir)
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetArchiveConfig returns the archive settings.
func GetArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		Type: viper.GetString("archive.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("archive.memory.outputDir"),
			CompressOutput: viper.GetBool("archive.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("archive.sqlite.path"),
		},
		Postgres: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetMarkupConfig returns the markup rendering settings.
func GetMarkupConfig() MarkupConfig {
	return MarkupConfig{
		PointZ:       viper.GetInt("zIndex.point"),
		PatchZ:       viper.GetInt("zIndex.patch"),
		ElementStep:  viper.GetInt("zIndex.step"),
		OrdinalStyle: viper.GetString("ordinalStyle"),
		ColorSeries:  viper.GetStringSlice("colorSeries"),
		ColorSeed:    viper.GetUint64("colorSeed"),
		Coloring:     viper.GetString("coloring"),
	}
}

// GetStatementConfig returns the statement template settings.
func GetStatementConfig() StatementConfig {
	return StatementConfig{
		Prefixes:  viper.GetStringSlice("statement.prefixes"),
		Signature: viper.GetString("statement.signature"),
		Sign:      viper.GetString("statement.sign"),
		New:       viper.GetBool("statement.new"),
		Semicolon: viper.GetBool("statement.semicolon"),
		Order:     viper.GetString("statement.order"),
	}
}

// GetPageConfig returns the preview page settings.
func GetPageConfig() PageConfig {
	return PageConfig{
		Lang:  viper.GetString("page.lang"),
		Embed: viper.GetBool("page.embed"),
	}
}

// GetNamespaces returns the configured resource namespaces, mapping each
// namespace to its root directory.
func GetNamespaces() map[string]string {
	return viper.GetStringMapString("namespaces")
}
