package optim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dartsim/internal/analysis"
	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/optim"
	"github.com/san-kum/dartsim/internal/sim"
)

var _ = Describe("GridSearch", func() {
	It("finds the maximum of a concave objective", func() {
		gs := optim.NewGridSearch(
			[]string{"a", "b"},
			[][]float64{optim.Linspace(-2, 2, 0.5), optim.Linspace(-2, 2, 0.5)},
		)
		params, best, err := gs.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
			return -(p["a"]-1)*(p["a"]-1) - (p["b"]+0.5)*(p["b"]+0.5), nil
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(best).To(BeNumerically("~", 0, 1e-12))
		Expect(params).To(HaveKeyWithValue("a", 1.0))
		Expect(params).To(HaveKeyWithValue("b", -0.5))
	})

	It("skips non-finite objective values", func() {
		gs := optim.NewGridSearch([]string{"a"}, [][]float64{{1, 2, 3}})
		params, best, err := gs.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
			if p["a"] == 3 {
				return math.Inf(1), nil
			}
			return p["a"], nil
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(best).To(Equal(2.0))
		Expect(params["a"]).To(Equal(2.0))
	})

	It("stops on objective errors", func() {
		boom := errors.New("boom")
		gs := optim.NewGridSearch([]string{"a"}, [][]float64{{1, 2}})
		_, _, err := gs.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
			return 0, boom
		})
		Expect(err).To(MatchError(boom))
	})

	It("honours cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		gs := optim.NewGridSearch([]string{"a"}, [][]float64{{1, 2}})
		_, _, err := gs.Search(ctx, func(context.Context, map[string]float64) (float64, error) {
			return 1, nil
		})
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Linspace", func() {
	It("includes both ends", func() {
		Expect(optim.Linspace(0, 1, 0.25)).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
	})

	It("is empty for a bad step", func() {
		Expect(optim.Linspace(0, 1, 0)).To(BeEmpty())
		Expect(optim.Linspace(1, 0, 0.1)).To(BeEmpty())
	})
})

var _ = Describe("BestAim", func() {
	It("picks the treble 20 for an accurate thrower", func() {
		aim, score, err := optim.BestAim(context.Background(),
			optim.AimSearch{Dispersion: 1, Spacing: 5},
			optim.AnalyticScorer(analysis.Options{Step: 0.5}),
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(board.ScoreAt(aim.Point)).To(Equal(60))
		Expect(score).To(BeNumerically(">", 55))
	})

	It("drifts towards the middle for a wild thrower", func() {
		aim, _, err := optim.BestAim(context.Background(),
			optim.AimSearch{Dispersion: 60, Spacing: 20},
			optim.AnalyticScorer(analysis.Options{Step: 3}),
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(aim.Point.Radius()).To(BeNumerically("<", 80))
	})

	It("works with a simulated scorer", func() {
		s := sim.New(sim.Config{Seed: 5})
		aim, score, err := optim.BestAim(context.Background(),
			optim.AimSearch{Dispersion: 0, Spacing: 10, Radius: 110},
			optim.SimulatedScorer(s, 10),
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(score).To(Equal(60.0))
		Expect(board.ScoreAt(aim.Point)).To(Equal(60))
	})

	It("rejects a negative dispersion", func() {
		_, _, err := optim.BestAim(context.Background(),
			optim.AimSearch{Dispersion: -1, Spacing: 5},
			optim.AnalyticScorer(analysis.Options{}),
		)
		Expect(err).To(HaveOccurred())
	})
})
