package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/svdcomm/backend/cpu"
	"github.com/born-ml/svdcomm/svdcomm"
	"github.com/born-ml/svdcomm/tensor"
)

// benchCase is one encoder configuration in the results table.
type benchCase struct {
	Name   string
	Config svdcomm.Config
}

// benchResult aggregates encode/decode statistics over trials.
type benchResult struct {
	MeanK     float64
	MeanRatio float64
	RelError  float64
}

func runBench(args []string) {
	fs := newFlagSet("bench")
	shapeFlag := fs.String("shape", "64,32,3,3", "comma-separated gradient shape")
	signalRank := fs.Int("signal-rank", 4, "rank of the synthetic signal")
	noise := fs.Float64("noise", 0.01, "stddev of additive Gaussian noise")
	rank := fs.Int("rank", 4, "target rank for the sampled and top-k cases")
	trials := fs.Int("trials", 20, "encode/decode rounds per case")
	seed := fs.Uint64("seed", 1, "seed for the synthetic gradient and the encoders")
	essentials.Must(fs.Parse(args))

	if *trials <= 0 {
		log.Fatalf("bench: -trials must be > 0, got %d", *trials)
	}
	shape, err := parseShape(*shapeFlag)
	if err != nil {
		log.Fatalf("bench: %v", err)
	}

	src := rand.NewPCG(*seed, *seed+1)
	grad := syntheticGradient(shape, *signalRank, *noise, src)
	backend := cpu.New()

	cases := []benchCase{
		{Name: "adaptive", Config: benchConfig(0, true, *seed)},
		{Name: fmt.Sprintf("sampled-%d", *rank), Config: benchConfig(*rank, true, *seed)},
		{Name: fmt.Sprintf("top-%d", *rank), Config: benchConfig(*rank, false, *seed)},
	}

	fmt.Printf("Shape %v, signal rank %d, noise %g, %d trials\n\n", shape, *signalRank, *noise, *trials)
	fmt.Println("| Case | Mean k | Ratio | Rel. error |")
	fmt.Println("|:--|:--|:--|:--|")
	for _, c := range cases {
		res, err := benchmark(grad, backend, c.Config, *trials)
		if errors.Is(err, svdcomm.ErrSVDFailed) {
			log.Fatalf("bench %s: %v", c.Name, err)
		}
		essentials.Must(err)
		fmt.Printf("| %s | %.2f | %.2f | %.4f |\n", c.Name, res.MeanK, res.MeanRatio, res.RelError)
	}
}

func benchConfig(rank int, randomSample bool, seed uint64) svdcomm.Config {
	cfg := svdcomm.DefaultConfig()
	cfg.Rank = rank
	cfg.RandomSample = randomSample
	cfg.Seed = int64(seed >> 1)
	return cfg
}

// benchmark encodes and decodes grad trials times. RelError is the relative
// Frobenius error of the mean reconstruction, which shows the debiasing of
// sampled cases.
func benchmark(grad *tensor.RawTensor, backend tensor.Backend, cfg svdcomm.Config, trials int) (benchResult, error) {
	if trials <= 0 {
		return benchResult{}, fmt.Errorf("benchmark: trials %d (must be > 0)", trials)
	}
	enc := svdcomm.NewEncoder(cfg, backend)
	orig := grad.Float64s()
	mean := make([]float64, len(orig))

	var res benchResult
	for i := 0; i < trials; i++ {
		payload, err := enc.Encode(grad)
		if err != nil {
			return res, err
		}
		approx, err := svdcomm.Decode(payload, backend)
		if err != nil {
			return res, err
		}
		floats.Add(mean, approx.Float64s())

		if c, ok := payload.(*svdcomm.Compressed); ok {
			res.MeanK += float64(c.K())
			res.MeanRatio += c.Ratio()
		} else {
			res.MeanRatio++
		}
	}

	n := float64(trials)
	res.MeanK /= n
	res.MeanRatio /= n
	floats.Scale(1/n, mean)
	res.RelError = floats.Distance(orig, mean, 2) / floats.Norm(orig, 2)
	return res, nil
}

// syntheticGradient builds a tensor whose normalized matrix is a rank-r signal
// plus Gaussian noise.
func syntheticGradient(shape tensor.Shape, r int, noise float64, src rand.Source) *tensor.RawTensor {
	shape2D, _ := svdcomm.Normalize(shape)
	if len(shape2D) != 2 {
		log.Fatalf("bench: shape %v has rank < 2", shape)
	}
	rows, cols := shape2D[0], shape2D[1]

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	left := make([]float64, rows*r)
	right := make([]float64, cols*r)
	for i := range left {
		left[i] = normal.Rand()
	}
	for i := range right {
		right[i] = normal.Rand()
	}

	data := make([]float32, rows*cols)
	jitter := distuv.Normal{Mu: 0, Sigma: noise, Src: src}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var v float64
			for k := 0; k < r; k++ {
				// Decaying component scale gives a spectrum worth sampling.
				v += left[i*r+k] * right[j*r+k] / float64(k+1)
			}
			if noise > 0 {
				v += jitter.Rand()
			}
			data[i*cols+j] = float32(v)
		}
	}

	grad, err := tensor.FromFloat32(data, shape, tensor.CPU)
	essentials.Must(err)
	return grad
}

func parseShape(s string) (tensor.Shape, error) {
	parts := strings.Split(s, ",")
	shape := make(tensor.Shape, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse shape %q: %w", s, err)
		}
		shape = append(shape, d)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("parse shape %q: %w", s, err)
	}
	return shape, nil
}
