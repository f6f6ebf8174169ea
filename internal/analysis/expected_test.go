package analysis_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dartsim/internal/analysis"
	"github.com/san-kum/dartsim/internal/board"
	"github.com/san-kum/dartsim/internal/sim"
)

var _ = Describe("ExpectedScore", func() {
	It("is the board score when the dispersion is zero", func() {
		for _, aim := range board.AimPoints() {
			Expect(analysis.ExpectedScore(aim.Point, 0, analysis.Options{})).
				To(Equal(float64(board.ScoreAt(aim.Point))), aim.Name)
		}
	})

	It("stays at 50 for a very tight group on the bull", func() {
		Expect(analysis.ExpectedScore(board.Point{}, 0.5, analysis.Options{})).To(BeNumerically("~", 50, 1e-6))
	})

	It("is zero far off the board", func() {
		Expect(analysis.ExpectedScore(board.Point{X: 500}, 10, analysis.Options{})).To(BeNumerically("==", 0))
	})

	It("integrates out to six standard deviations by default", func() {
		// the board edge sits 5.5σ from this aim point.
		aim := board.Point{X: board.DoubleOuterRadius + 55}
		Expect(analysis.ExpectedScore(aim, 10, analysis.Options{})).To(BeNumerically(">", 0))
		Expect(analysis.ExpectedScore(aim, 10, analysis.Options{Span: 5})).To(BeNumerically("==", 0))
		Expect(analysis.ExpectedScore(aim, 10, analysis.Options{})).
			To(Equal(analysis.ExpectedScore(aim, 10, analysis.Options{Span: 6})))
	})

	It("has no spread at zero dispersion", func() {
		mean, sd := analysis.ScoreMoments(board.Point{X: 0, Y: 103}, 0, analysis.Options{})
		Expect(mean).To(Equal(60.0))
		Expect(sd).To(BeZero())
	})

	DescribeTable("agrees with the Monte Carlo simulator at the bullseye",
		func(dispersion float64) {
			want, wantSD := analysis.ScoreMoments(board.Point{}, dispersion, analysis.Options{})

			s := sim.New(sim.Config{Seed: 99})
			got, err := s.Simulate(context.Background(), 1000000, dispersion, board.Point{})
			Expect(err).NotTo(HaveOccurred())
			Expect(got.AverageScore).To(BeNumerically("~", want, 0.5))
			Expect(got.StdDev).To(BeNumerically("~", wantSD, 0.5))
		},
		Entry("tight", 5.0),
		Entry("club player", 20.0),
		Entry("beginner", 40.0),
	)
})

var _ = Describe("RingProbabilities", func() {
	rayleigh := func(r, sigma float64) float64 {
		return 1 - math.Exp(-r*r/(2*sigma*sigma))
	}

	It("sums to one", func() {
		total := 0.0
		for _, p := range analysis.RingProbabilities(board.Point{X: 0, Y: 103}, 25, analysis.Options{}) {
			total += p
		}
		Expect(total).To(BeNumerically("~", 1, 1e-9))
	})

	It("matches the Rayleigh distribution for the bulls", func() {
		const sigma = 12.0
		p := analysis.RingProbabilities(board.Point{}, sigma, analysis.Options{})

		Expect(p[board.InnerBull]).To(BeNumerically("~", rayleigh(board.InnerBullRadius, sigma), 0.01))
		Expect(p[board.OuterBull]).To(BeNumerically("~",
			rayleigh(board.OuterBullRadius, sigma)-rayleigh(board.InnerBullRadius, sigma), 0.01))
	})

	It("puts everything in one ring at zero dispersion", func() {
		p := analysis.RingProbabilities(board.Point{X: 0, Y: 165}, 0, analysis.Options{})
		Expect(p).To(HaveLen(1))
		Expect(p).To(HaveKeyWithValue(board.Double, 1.0))
	})
})
