// Package analysis computes score expectations without random sampling.
//
// The throw error is an isotropic bivariate normal, so the expected score
// at an aim point is the integral of [board.ScoreAt] against that density.
// The integral is evaluated with a midpoint rule on a square grid:
//
//   - [ExpectedScore]: mean score for an aim point and dispersion
//   - [ScoreMoments]: mean and standard deviation of the score
//   - [RingProbabilities]: probability mass landing in each ring
//
// These are the reference values the Monte Carlo simulator converges to:
//
//	ev := analysis.ExpectedScore(board.Point{}, 20, analysis.Options{})
package analysis
