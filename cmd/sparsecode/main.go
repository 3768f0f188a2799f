// Command sparsecode inspects, records and exercises model configurations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/born-ml/sparsecode/internal/backend/cpu"
	"github.com/born-ml/sparsecode/internal/models"
	"github.com/born-ml/sparsecode/internal/params"
	"github.com/born-ml/sparsecode/internal/storage"
	"github.com/born-ml/sparsecode/internal/tensor"
)

const version = "v0.1.0-dev"

const defaultPreset = "lca_mlp_mnist"

type cli struct {
	env    params.Env
	stdout io.Writer
	logger *log.Logger
	now    func() time.Time
}

func main() {
	c := &cli{
		env:    params.DefaultEnv(),
		stdout: os.Stdout,
		logger: log.New(os.Stderr, "sparsecode: ", 0),
		now:    time.Now,
	}
	if err := c.run(context.Background(), os.Args[1:]); err != nil {
		c.logger.Println(err)
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(c.stdout, "sparsecode %s\n", version)
		return nil
	case "presets":
		for _, name := range params.PresetNames() {
			fmt.Fprintln(c.stdout, name)
		}
		return nil
	case "show":
		return c.runShow(args[1:])
	case "record":
		return c.runRecord(ctx, args[1:])
	case "runs":
		return c.runRuns(ctx, args[1:])
	case "forward":
		return c.runForward(args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

type presetFlags struct {
	preset *string
	config *string
}

func addPresetFlags(fs *flag.FlagSet) presetFlags {
	return presetFlags{
		preset: fs.String("preset", defaultPreset, "configuration preset name"),
		config: fs.String("config", "", "optional YAML overrides file"),
	}
}

func (c *cli) resolve(f presetFlags) (params.Set, error) {
	preset, err := params.LookupPreset(*f.preset)
	if err != nil {
		return nil, err
	}

	var overrides *params.Overrides
	if *f.config != "" {
		overrides, err = params.LoadOverrides(*f.config)
		if err != nil {
			return nil, err
		}
	}
	return preset(c.env, overrides)
}

func (c *cli) runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	pf := addPresetFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	set, err := c.resolve(pf)
	if err != nil {
		return err
	}
	data, err := params.Snapshot(set)
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(data)
	return err
}

func (c *cli) runRecord(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	pf := addPresetFlags(fs)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "sparsecode.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set, err := c.resolve(pf)
	if err != nil {
		return err
	}
	run, err := storage.NewRunRecord(set, c.now())
	if err != nil {
		return err
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	if err := store.SaveRun(ctx, run); err != nil {
		return err
	}
	if *storeKind == "memory" {
		c.logger.Print("warning: memory store is not persisted; build with -tags sqlite and use -store sqlite to keep runs")
	}
	c.logger.Printf("recorded run %s (%s %s) in %s store", run.ID, run.ModelType, run.ModelName, *storeKind)
	fmt.Fprintln(c.stdout, run.ID)
	return nil
}

func (c *cli) runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "sparsecode.db", "sqlite database path")
	limit := fs.Int("limit", 20, "max runs to list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	store, err := openStore(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(c.stdout, "no runs found")
		return nil
	}
	if len(runs) > *limit {
		runs = runs[len(runs)-*limit:]
	}
	for _, r := range runs {
		fmt.Fprintf(c.stdout, "%s %s %s %s %s\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.ModelType, r.ModelName, humanize.Time(r.CreatedAt))
	}
	return nil
}

func (c *cli) runForward(args []string) error {
	fs := flag.NewFlagSet("forward", flag.ContinueOnError)
	pf := addPresetFlags(fs)
	batch := fs.Int("batch", 4, "synthetic batch size")
	seed := fs.Uint64("seed", 1, "seed for the synthetic batch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *batch <= 0 {
		return errors.New("batch must be > 0")
	}

	set, err := c.resolve(pf)
	if err != nil {
		return err
	}
	mlp, err := mlpMember(set)
	if err != nil {
		return err
	}

	backend := cpu.New()
	model, err := models.New[*cpu.CPUBackend](mlp, backend)
	if err != nil {
		return err
	}
	model.Train(false)

	rng := rand.New(rand.NewPCG(*seed, *seed))
	x := tensor.Uniform(tensor.Shape{*batch, 1, 28, 28}, 0, 1, rng, backend)
	targets := make([]int32, *batch)
	for i := range targets {
		targets[i] = int32(rng.IntN(mlp.NumClasses))
	}
	y, err := tensor.FromSlice(targets, tensor.Shape{*batch}, backend)
	if err != nil {
		return err
	}

	out := model.Forward(x)
	loss := model.Loss(models.LossInput[*cpu.CPUBackend]{Prediction: out, Target: y})

	fmt.Fprintf(c.stdout, "model: %s (%s parameters)\n", mlp.ModelName, humanize.Comma(int64(models.CountParameters[*cpu.CPUBackend](model))))
	fmt.Fprintf(c.stdout, "output shape: %v\n", out.Shape())
	fmt.Fprintf(c.stdout, "loss: %.4f\n", loss.Item())
	return nil
}

func mlpMember(set params.Set) (params.MLP, error) {
	switch s := set.(type) {
	case params.MLP:
		return s, nil
	case params.Ensemble:
		if m, ok := s.Member(params.ModelMLP); ok {
			return m.(params.MLP), nil
		}
	}
	return params.MLP{}, fmt.Errorf("preset %s has no mlp member", set.SharedParams().ModelName)
}

func openStore(ctx context.Context, kind, path string) (storage.Store, error) {
	store, err := storage.NewStore(kind, path)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, err
	}
	return store, nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: sparsecode <version|presets|show|record|runs|forward> [flags]", msg)
}
