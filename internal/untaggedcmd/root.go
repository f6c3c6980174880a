package untaggedcmd

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/untagged/internal/footprint"
)

type globals struct {
	configPath string
	format     string
	memProfile string
	debug      bool
	log        *zap.Logger
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	g := &globals{log: zap.NewNop()}
	c := &cobra.Command{
		Use:           "untagged",
		Short:         "untagged: memory layout of discriminant-free optional slots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.PersistentFlags().StringVar(&g.configPath, "config", "", "path to a YAML config")
	c.PersistentFlags().StringVar(&g.format, "format", "text", "output format: text or yaml")
	c.PersistentFlags().StringVar(&g.memProfile, "memprofile", "", "write a heap profile to this file")
	c.PersistentFlags().BoolVar(&g.debug, "debug", false, "development logging")
	c.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		if g.debug {
			g.log, err = zap.NewDevelopment()
		} else {
			g.log, err = zap.NewProduction()
		}
		return err
	}
	c.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		defer g.log.Sync()
		return g.writeMemProfile()
	}
	c.AddCommand(newFootprintCmd(g))
	c.AddCommand(newLayoutCmd(g))
	c.AddCommand(newKindsCmd())
	return c
}

func (g *globals) loadConfig() (footprint.Config, error) {
	if g.configPath == "" {
		g.log.Debug("no config given, using defaults")
		return footprint.DefaultConfig(), nil
	}
	c, err := footprint.LoadConfig(g.configPath)
	if err != nil {
		return footprint.Config{}, err
	}
	g.log.Info("loaded config",
		zap.String("path", g.configPath),
		zap.Int("kinds", len(c.Kinds)),
		zap.Int("lengths", len(c.Lengths)))
	return c, nil
}

func (g *globals) checkFormat() error {
	switch g.format {
	case "text", "yaml":
		return nil
	default:
		return errors.Errorf("unknown format %q", g.format)
	}
}

func (g *globals) writeMemProfile() error {
	if g.memProfile == "" {
		return nil
	}
	f, err := os.Create(g.memProfile)
	if err != nil {
		return errors.Wrap(err, "creating heap profile")
	}
	defer f.Close()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errors.Wrap(err, "writing heap profile")
	}
	g.log.Info("wrote heap profile", zap.String("path", g.memProfile))
	return nil
}
