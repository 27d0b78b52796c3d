package main

import (
	"fmt"
	"net/http"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hnb22/gofpa/apfloat"
	"github.com/hnb22/gofpa/internal/config"
	"github.com/hnb22/gofpa/internal/logger"
)

// CLI defines the fpacalc command-line interface. Global flags override
// values from the optional TOML config file.
type CLI struct {
	Config    string `help:"TOML config file" type:"path"`
	Precision int    `short:"p" help:"Bit budget for encoded values"`
	Strategy  string `help:"Multiplication strategy (schoolbook|karatsuba)"`
	MaxIter   int    `help:"Taylor series iteration cap"`
	LogLevel  string `help:"Log level (debug|info|warn|error)"`
	LogFormat string `help:"Log format (console|json)"`
	Metrics   string `help:"Address to serve Prometheus metrics while running"`

	Encode EncodeCmd `cmd:"" help:"Encode a decimal value and show its bit layout"`
	Add    AddCmd    `cmd:"" help:"Add two values"`
	Mul    MulCmd    `cmd:"" help:"Multiply two values"`
	Div    DivCmd    `cmd:"" help:"Divide two values"`
	Sin    SinCmd    `cmd:"" help:"Evaluate sine by Taylor series"`
}

type EncodeCmd struct {
	Value string `arg:"" help:"Decimal value"`
}

type AddCmd struct {
	A string `arg:"" help:"Left operand"`
	B string `arg:"" help:"Right operand"`
}

type MulCmd struct {
	A string `arg:"" help:"Left operand"`
	B string `arg:"" help:"Right operand"`
}

type DivCmd struct {
	A string `arg:"" help:"Dividend"`
	B string `arg:"" help:"Divisor"`
}

type SinCmd struct {
	X string `arg:"" help:"Argument (no range reduction is performed)"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fpacalc"),
		kong.Description("Arbitrary-precision binary floating point calculator."),
	)

	cfg, err := resolveConfig(&cli)
	if err != nil {
		ctx.FatalIfErrorf(err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.MetricsAddr != "" {
		mlog := logger.Log.Component("metrics")
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			mlog.Info("listener starting", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				mlog.Error("listener failed", "error", err)
			}
		}()
	}

	ctx.FatalIfErrorf(ctx.Run(&cfg))
}

// resolveConfig layers flag values over the config file over the defaults.
func resolveConfig(cli *CLI) (config.Config, error) {
	cfg := config.Default()
	if cli.Config != "" {
		loaded, err := config.Load(cli.Config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if cli.Precision != 0 {
		cfg.Precision = cli.Precision
	}
	if cli.Strategy != "" {
		cfg.Strategy = cli.Strategy
	}
	if cli.MaxIter != 0 {
		cfg.SinMaxIter = cli.MaxIter
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.LogFormat = cli.LogFormat
	}
	if cli.Metrics != "" {
		cfg.MetricsAddr = cli.Metrics
	}
	return cfg, cfg.Validate()
}

func (c *EncodeCmd) Run(cfg *config.Config) error {
	f, err := apfloat.EncodeString(c.Value, cfg.Precision)
	if err != nil {
		return err
	}
	fmt.Printf("value:    %v\n", f.Float64())
	fmt.Printf("bits:     %s\n", f.BinaryString())
	fmt.Printf("layout:   1 sign + %d exponent + %d mantissa (bias %d)\n",
		f.ExponentBits(), f.MantissaBits(), f.Bias())
	fmt.Printf("decimal:  ~%d digits\n", f.EffectiveDecimalDigits())
	return nil
}

func (c *AddCmd) Run(cfg *config.Config) error {
	a, b, err := encodePair(c.A, c.B, cfg.Precision)
	if err != nil {
		return err
	}
	sum, err := apfloat.Add(a, b, cfg.Precision)
	if err != nil {
		return err
	}
	return printResult(sum)
}

func (c *MulCmd) Run(cfg *config.Config) error {
	a, b, err := encodePair(c.A, c.B, cfg.Precision)
	if err != nil {
		return err
	}
	strategy, err := apfloat.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}
	product, err := apfloat.MulWith(strategy, a, b, cfg.Precision)
	if err != nil {
		return err
	}
	logger.Log.Debug("multiplied", "strategy", strategy.String())
	return printResult(product)
}

func (c *DivCmd) Run(cfg *config.Config) error {
	a, b, err := encodePair(c.A, c.B, cfg.Precision)
	if err != nil {
		return err
	}
	quotient, err := apfloat.Div(a, b, cfg.Precision)
	if err != nil {
		return err
	}
	return printResult(quotient)
}

func (c *SinCmd) Run(cfg *config.Config) error {
	x, err := apfloat.EncodeString(c.X, cfg.Precision)
	if err != nil {
		return err
	}
	result, err := apfloat.SinIter(x, cfg.SinMaxIter)
	if err != nil {
		return err
	}
	return printResult(result)
}

func encodePair(a, b string, prec int) (apfloat.Float, apfloat.Float, error) {
	fa, err := apfloat.EncodeString(a, prec)
	if err != nil {
		return apfloat.Float{}, apfloat.Float{}, err
	}
	fb, err := apfloat.EncodeString(b, prec)
	if err != nil {
		return apfloat.Float{}, apfloat.Float{}, err
	}
	return fa, fb, nil
}

func printResult(f apfloat.Float) error {
	fmt.Printf("%v\n", f.Float64())
	fmt.Printf("bits: %s\n", f.BinaryString())
	return nil
}
