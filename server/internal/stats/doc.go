// Package stats computes the descriptive statistics and ordinary least
// squares fit shown for each quartet group.
//
// Describe(values) returns the eight-row summary familiar from a dataframe
// describe(): count, mean, sample std, min, 25%, 50%, 75%, max.
// Fit(xs, ys) returns the closed-form OLS line with Pearson r and R².
//
// All functions are pure; the same input always yields the same output.
package stats
