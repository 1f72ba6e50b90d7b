package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"flexlay/pkg/config"
	"flexlay/pkg/layout"
	"flexlay/pkg/observability"
)

var (
	cfgFile string
	cfg     config.Config
)

// Exit codes. Decode and layout failures are distinguished so callers can
// tell malformed input apart from an unsatisfiable layout.
const (
	exitDecodeFailure = 2
	exitLayoutFailure = 3
)

// errDecode tags failures that happened before layout ran.
var errDecode = errors.New("decode failure")

var rootCmd = &cobra.Command{
	Use:           "flexlay",
	Short:         "flexlay resolves box geometry for a styled tree under row-flex semantics.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "flexlay"})
			return err
		}
		observability.InitializeLogger(cfg.Logger)
		return nil
	},
}

// Execute runs the root command, mapping error classes to exit codes.
func Execute() {
	defer observability.Sync()
	if err := rootCmd.Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var lerr *layout.Error
	if errors.As(err, &lerr) {
		return exitLayoutFailure
	}
	if errors.Is(err, errDecode) {
		return exitDecodeFailure
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./flexlay.yaml, then $HOME/flexlay.yaml)")
}

func initializeConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName("flexlay")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FLEXLAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	return nil
}

// openInput returns the tree input stream: stdin for "" or "-", a file
// otherwise. The returned name selects the decoder.
func openInput(args []string) (string, *os.File, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return "-", os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return "", nil, nil, fmt.Errorf("%w: %v", errDecode, err)
	}
	return args[0], f, func() { f.Close() }, nil
}
